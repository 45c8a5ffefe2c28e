package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/yessgo/coin-terminal/api/responses"
	"github.com/yessgo/coin-terminal/pkg/config"
	pkgerrors "github.com/yessgo/coin-terminal/pkg/errors"
	"github.com/yessgo/coin-terminal/pkg/logger"
)

const envHeader = "X-CoinTerminal-Env"

// Pinger is any collaborator a readiness probe should verify.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies every wired collaborator; nil pingers (an
// unconfigured redis, for instance) are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var combined error
		for _, pinger := range pingers {
			if pinger == nil {
				continue
			}
			combined = multierr.Append(combined, pinger.Ping(ctx))
		}

		if combined != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
