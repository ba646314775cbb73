package monitor

import (
	"github.com/TheCacophonyProject/battery-gauge/internal/estimator"
	"github.com/TheCacophonyProject/event-reporter/v3/eventclient"
)

const directionChangedEvent = "batteryDirectionChanged"

var addEvent = eventclient.AddEvent

func reportDirectionChange(from, to estimator.Direction, r estimator.Reading) {
	err := addEvent(eventclient.Event{
		Timestamp: r.Timestamp,
		Type:      directionChangedEvent,
		Details: map[string]interface{}{
			"from":    string(from),
			"to":      string(to),
			"percent": r.Percent,
			"voltage": r.Voltage,
		},
	})
	if err != nil {
		log.Errorf("Error reporting battery direction change: %v", err)
	}
}
