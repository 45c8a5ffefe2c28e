package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is one catalog entry as served by the remote partner service.
// Prices are decimal because upstream values may be fractional.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
}

// CoinValue is the loyalty-coin worth of the product: the discount
// against the original price, floored at zero when there is none.
func (p Product) CoinValue() decimal.Decimal {
	coin := p.OriginalPrice.Sub(p.Price)
	if coin.IsNegative() {
		return decimal.Zero
	}
	return coin
}
