package controllers

import (
	"net/http"

	"github.com/yessgo/coin-terminal/api/middleware"
	"github.com/yessgo/coin-terminal/api/responses"
	"github.com/yessgo/coin-terminal/internal/catalog"
	"github.com/yessgo/coin-terminal/internal/terminal"
	"github.com/yessgo/coin-terminal/pkg/logger"
	"github.com/yessgo/coin-terminal/pkg/metrics"
)

type catalogItem struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price"`
	CoinValue     string `json:"coin_value"`
	Quantity      int    `json:"quantity"`
}

type catalogResponse struct {
	Items []catalogItem `json:"items"`
}

func newCatalogResponse(products []catalog.Product, session *terminal.Session) catalogResponse {
	items := make([]catalogItem, 0, len(products))
	for _, p := range products {
		items = append(items, catalogItem{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price.String(),
			OriginalPrice: p.OriginalPrice.String(),
			CoinValue:     p.CoinValue().String(),
			Quantity:      session.Quantity(p.ID),
		})
	}
	return catalogResponse{Items: items}
}

// TerminalCatalog refreshes and returns the partner's menu annotated
// with the session's basket quantities. A failed fetch surfaces as an
// explicit dependency error; the session keeps its previous snapshot.
func TerminalCatalog(m *metrics.TerminalMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := middleware.SessionFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := session.RefreshCatalog(r.Context())
		if err != nil {
			m.IncCatalogFetch("error")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncCatalogFetch("ok")
		responses.WriteSuccess(w, newCatalogResponse(products, session))
	}
}
