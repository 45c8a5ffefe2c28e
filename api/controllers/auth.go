package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/yessgo/coin-terminal/api/middleware"
	"github.com/yessgo/coin-terminal/api/responses"
	"github.com/yessgo/coin-terminal/api/validators"
	"github.com/yessgo/coin-terminal/internal/terminal"
	pkgerrors "github.com/yessgo/coin-terminal/pkg/errors"
	"github.com/yessgo/coin-terminal/pkg/logger"
	"github.com/yessgo/coin-terminal/pkg/metrics"
)

// LoginService opens terminal sessions for validated partners.
type LoginService interface {
	Login(ctx context.Context, partnerID int64, partnerName string) (*terminal.Session, error)
	Logout(token string) error
}

type loginRequest struct {
	// the terminal keypad produces free text; numeric parsing happens here
	PartnerID   string `json:"partner_id" validate:"required,numeric"`
	PartnerName string `json:"partner_name" validate:"max=120"`
}

type loginResponse struct {
	Token       string `json:"token"`
	PartnerID   int64  `json:"partner_id"`
	PartnerName string `json:"partner_name"`
}

// AuthLogin validates a partner id against the catalog service and
// opens a session with an empty basket.
func AuthLogin(svc LoginService, m *metrics.TerminalMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "login service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			m.IncLogin("invalid")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partnerID, err := strconv.ParseInt(payload.PartnerID, 10, 64)
		if err != nil {
			m.IncLogin("invalid")
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "partner id must be numeric"))
			return
		}

		session, err := svc.Login(r.Context(), partnerID, payload.PartnerName)
		if err != nil {
			m.IncLogin("rejected")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncLogin("ok")
		ctx := logg.WithPartnerID(r.Context(), session.PartnerID())
		logg.Info(ctx, "terminal.login")

		responses.WriteSuccessStatus(w, http.StatusCreated, loginResponse{
			Token:       session.Token(),
			PartnerID:   session.PartnerID(),
			PartnerName: session.PartnerName(),
		})
	}
}

// AuthLogout discards the session; the basket goes with it.
func AuthLogout(svc LoginService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "login service unavailable"))
			return
		}

		token := middleware.BearerToken(r)
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session token required"))
			return
		}

		if err := svc.Logout(token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(r.Context(), "terminal.logout")
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
