package order

import (
	"encoding/json"

	"github.com/yessgo/coin-terminal/internal/basket"
	pkgerrors "github.com/yessgo/coin-terminal/pkg/errors"
)

// PaymentMethodYescoin tags the redemption channel in every payload.
const PaymentMethodYescoin = "yescoin"

// Item is one product/quantity pair. Prices are deliberately omitted;
// the remote service is the pricing source of truth at redemption time.
type Item struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Payload is the immutable order snapshot embedded in the QR code.
type Payload struct {
	PartnerID     int64  `json:"partnerId"`
	PaymentMethod string `json:"paymentMethod"`
	Items         []Item `json:"items"`
}

// ErrEmptyBasket is returned when there is nothing to encode. Callers
// must not render a scannable code for an empty order.
var ErrEmptyBasket = pkgerrors.New(pkgerrors.CodeEmptyBasket, "cannot encode an empty basket")

// Encode snapshots the basket into an order payload. Items are ordered
// ascending by product id so the serialized form is reproducible.
func Encode(b *basket.Basket, partnerID int64) (Payload, error) {
	if b == nil || b.IsEmpty() {
		return Payload{}, ErrEmptyBasket
	}

	lines := b.Lines()
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, Item{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	return Payload{
		PartnerID:     partnerID,
		PaymentMethod: PaymentMethodYescoin,
		Items:         items,
	}, nil
}

// MarshalCanonical renders the payload as compact JSON with a fixed
// field order, ready to hand to the QR generator.
func (p Payload) MarshalCanonical() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal order payload")
	}
	return data, nil
}
