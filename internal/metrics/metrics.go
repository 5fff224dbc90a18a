package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/internal/apperror"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	storeOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_store_operations_total",
			Help: "Total number of JSON document store operations.",
		},
		[]string{"file", "op", "result"},
	)
	storeOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "document_store_operation_duration_seconds",
			Help:    "Time spent in JSON document store operations, including waiting for the file guard.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"file", "op"},
	)
)

// ObserveStoreOp records one store operation. Call it deferred with the
// address of the operation's named error result.
func ObserveStoreOp(file, op string, start time.Time, errp *error) {
	result := "ok"
	if errp != nil && *errp != nil {
		result = "error"
	}
	storeOpsTotal.WithLabelValues(file, op, result).Inc()
	storeOpDuration.WithLabelValues(file, op).Observe(time.Since(start).Seconds())
}

// Middleware counts requests by route pattern so path parameters do not blow
// up label cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// Ctx strings point into request buffers that fasthttp reuses.
		method := utils.CopyString(c.Method())
		path := utils.CopyString(c.Route().Path)
		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not written the response yet.
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else if appErr, ok := apperror.As(err); ok {
				status = apperror.HTTPStatus(appErr.Kind)
			}
		}

		httpRequestsTotal.WithLabelValues(strconv.Itoa(status), method, path).Inc()
		httpRequestsDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes the default registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
