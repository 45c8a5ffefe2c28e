package controllers

import (
	"encoding/base64"
	"net/http"

	"github.com/yessgo/coin-terminal/api/middleware"
	"github.com/yessgo/coin-terminal/api/responses"
	"github.com/yessgo/coin-terminal/internal/order"
	"github.com/yessgo/coin-terminal/pkg/logger"
	"github.com/yessgo/coin-terminal/pkg/metrics"
)

type qrResponse struct {
	Payload order.Payload `json:"payload"`
	QRPNG   string        `json:"qr_png_base64"`
	Status  string        `json:"status"`
}

// OrderGenerateQR encodes the basket into the canonical order payload
// and renders it as a base64 PNG QR code. An empty basket is rejected
// before any rendering happens.
func OrderGenerateQR(gen order.Generator, m *metrics.TerminalMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := middleware.SessionFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := session.EncodeOrder()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		png, err := gen.Generate(payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncOrderEncoded()
		ctx := logg.WithPartnerID(r.Context(), session.PartnerID())
		logg.Info(ctx, "order.qr_generated")

		responses.WriteSuccess(w, qrResponse{
			Payload: payload,
			QRPNG:   base64.StdEncoding.EncodeToString(png),
			Status:  "show the code to the customer to redeem coins",
		})
	}
}
