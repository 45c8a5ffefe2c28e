package controllers

import (
	"net/http"

	"github.com/yessgo/coin-terminal/api/middleware"
	"github.com/yessgo/coin-terminal/api/responses"
	"github.com/yessgo/coin-terminal/api/validators"
	"github.com/yessgo/coin-terminal/internal/terminal"
	pkgerrors "github.com/yessgo/coin-terminal/pkg/errors"
	"github.com/yessgo/coin-terminal/pkg/logger"
	"github.com/yessgo/coin-terminal/pkg/metrics"
)

type basketLine struct {
	ProductID int64  `json:"product_id"`
	UnitPrice string `json:"unit_price"`
	UnitCoin  string `json:"unit_coin"`
	Quantity  int    `json:"quantity"`
}

type basketTotals struct {
	Cash        string `json:"cash"`
	Coin        string `json:"coin"`
	CoinDisplay int64  `json:"coin_display"`
}

type basketResponse struct {
	Lines  []basketLine `json:"lines"`
	Totals basketTotals `json:"totals"`
}

func newBasketResponse(session *terminal.Session) basketResponse {
	lines := session.BasketLines()
	totals := session.Totals()

	out := basketResponse{
		Lines: make([]basketLine, 0, len(lines)),
		Totals: basketTotals{
			Cash:        totals.Cash.String(),
			Coin:        totals.Coin.String(),
			CoinDisplay: totals.CoinDisplay(),
		},
	}
	for _, line := range lines {
		out.Lines = append(out.Lines, basketLine{
			ProductID: line.ProductID,
			UnitPrice: line.UnitPrice.String(),
			UnitCoin:  line.UnitCoin.String(),
			Quantity:  line.Quantity,
		})
	}
	return out
}

// BasketFetch returns the current lines and running totals.
func BasketFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := middleware.SessionFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newBasketResponse(session))
	}
}

type applyDeltaRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Delta     int   `json:"delta" validate:"required"`
}

// BasketApplyDelta steps a product's quantity up or down. Zero deltas
// are rejected by validation; a line dropping to zero is removed.
func BasketApplyDelta(m *metrics.TerminalMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := middleware.SessionFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload applyDeltaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.ProductID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive"))
			return
		}

		if err := session.ApplyDelta(payload.ProductID, payload.Delta); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncBasketOp("delta")
		responses.WriteSuccess(w, newBasketResponse(session))
	}
}

// BasketClear unconditionally removes every line.
func BasketClear(m *metrics.TerminalMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := middleware.SessionFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session.ClearBasket()
		m.IncBasketOp("clear")
		responses.WriteSuccess(w, newBasketResponse(session))
	}
}
