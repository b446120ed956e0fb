package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker probes the backing stores the login flow depends on.
type HealthChecker struct {
	infra Infrastructure
}

func NewHealthChecker(infra Infrastructure) *HealthChecker {
	return &HealthChecker{
		infra: infra,
	}
}

// check pings Postgres and Redis concurrently under one deadline and
// reports the state of each.
func (h *HealthChecker) check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	type probe struct {
		name string
		err  error
	}

	probes := make(chan probe, 2)
	go func() {
		probes <- probe{"postgres", h.infra.Postgres().Ping(ctx)}
	}()
	go func() {
		probes <- probe{"redis", h.infra.Redis().Ping(ctx)}
	}()

	checks := make(map[string]string, 2)
	for i := 0; i < 2; i++ {
		p := <-probes
		if p.err != nil {
			checks[p.name] = p.err.Error()
		} else {
			checks[p.name] = "pass"
		}
	}

	return checks
}

func (h *HealthChecker) Handler(c *gin.Context) {
	checks := h.check(c.Request.Context())

	status := http.StatusOK
	overall := "pass"
	for _, result := range checks {
		if result != "pass" {
			status = http.StatusServiceUnavailable
			overall = "fail"
		}
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
	})
}
