package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"stayhub/infras/otel"
	"stayhub/infras/postgres"
	"stayhub/shared/constant"
	"stayhub/transport/http/response"
)

const checkTimeout = 3 * time.Second

type Checker func(ctx context.Context) error

type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	checks map[string]Checker
	otel   otel.Otel
}

func New(db *postgres.Connection, redis *goRedis.Client, otel otel.Otel) Handler {
	return newHandler(map[string]Checker{
		"postgres": db.Ping,
		"redis": func(ctx context.Context) error {
			return redis.Ping(ctx).Err()
		},
	}, otel)
}

func newHandler(checks map[string]Checker, otel otel.Otel) Handler {
	return Handler{
		checks: checks,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health/live", handler.Live)
	router.Get("/health/ready", handler.Ready)
}

// Live reports that the process is up.
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Router /health/live [get]
func (handler *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	response.WithMessage(w, http.StatusOK, "OK")
}

// Ready pings every backing store.
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Report]
// @Failure 503 {object} response.Data[Report]
// @Router /health/ready [get]
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Ready")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	report := handler.run(ctx)

	if report.Status != "ok" {
		log.Warn().Interface("checks", report.Checks).Msg("readiness check failed")

		response.WithJSON(w, http.StatusServiceUnavailable, report)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

func (handler *Handler) run(ctx context.Context) Report {
	var (
		mu     sync.Mutex
		group  errgroup.Group
		report = Report{Status: "ok", Checks: make(map[string]string, len(handler.checks))}
	)

	for name, check := range handler.checks {
		group.Go(func() error {
			status := "ok"
			if err := check(ctx); err != nil {
				status = err.Error()
			}

			mu.Lock()
			defer mu.Unlock()

			report.Checks[name] = status
			if status != "ok" {
				report.Status = "unavailable"
			}

			return nil
		})
	}

	_ = group.Wait()

	return report
}
