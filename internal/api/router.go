package api

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/TheCacophonyProject/battery-gauge/internal/estimator"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	BatteryPath = "/api/battery"
	NoDataError = "No data yet"
)

// StateSource gives the latest estimator state without blocking on the
// device.
type StateSource interface {
	Snapshot() (estimator.Snapshot, bool)
}

// ErrorResponse is returned when there is no status to report.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewRouter(source StateSource, logger logrus.FieldLogger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logger))
	router.GET(BatteryPath, getBattery(source))
	return router
}

func getBattery(source StateSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, ok := source.Snapshot()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: NoDataError})
			return
		}
		c.JSON(http.StatusOK, BuildStatus(snapshot))
	}
}

func ginLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		latency := int(math.Ceil(float64(time.Since(start).Nanoseconds()) / 1000000.0))
		statusCode := c.Writer.Status()

		entry := logger.WithFields(logrus.Fields{
			"statusCode": statusCode,
			"latency":    latency,
			"method":     c.Request.Method,
			"path":       path,
			"client":     c.ClientIP(),
		})

		msg := fmt.Sprintf("%s %s %d (%dms)", c.Request.Method, path, statusCode, latency)
		switch {
		case statusCode >= http.StatusInternalServerError && statusCode != http.StatusServiceUnavailable:
			entry.Error(msg)
		case statusCode >= http.StatusBadRequest:
			entry.Warn(msg)
		default:
			entry.Debug(msg)
		}
	}
}
