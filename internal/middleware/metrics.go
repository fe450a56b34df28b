package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestRecorder receives per-request measurements. *metrics.Metrics satisfies it.
type RequestRecorder interface {
	RequestStarted()
	RequestFinished(method, route, status string, seconds float64)
}

// Metrics records every request under its route template so ids do not explode the label space.
// A panicking handler is recorded as a 500 before the panic continues to gin.Recovery.
func Metrics(recorder RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		recorder.RequestStarted()

		defer func() {
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			status := c.Writer.Status()
			p := recover()
			if p != nil {
				status = http.StatusInternalServerError
			}
			recorder.RequestFinished(c.Request.Method, route, strconv.Itoa(status), time.Since(start).Seconds())
			if p != nil {
				panic(p)
			}
		}()

		c.Next()
	}
}
