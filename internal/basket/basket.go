package basket

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/yessgo/coin-terminal/internal/catalog"
)

// Line is one product's share of the order. Price and coin value are
// snapshotted when the line is first added; later catalog refreshes do
// not touch them, so a built order totals deterministically.
type Line struct {
	ProductID int64
	UnitPrice decimal.Decimal
	UnitCoin  decimal.Decimal
	Quantity  int
}

// Basket maps product ids to lines. Invariant: every retained line has
// Quantity >= 1; a line dropping to zero or below is removed outright.
type Basket struct {
	lines map[int64]*Line
}

func New() *Basket {
	return &Basket{lines: map[int64]*Line{}}
}

// ApplyDelta adjusts the quantity for the product by delta. A positive
// delta on an absent product creates the line with a fresh price/coin
// snapshot; a negative delta on an absent product is a no-op.
func (b *Basket) ApplyDelta(product catalog.Product, delta int) {
	line, ok := b.lines[product.ID]
	if !ok {
		if delta <= 0 {
			return
		}
		line = &Line{
			ProductID: product.ID,
			UnitPrice: product.Price,
			UnitCoin:  product.CoinValue(),
		}
		b.lines[product.ID] = line
	}

	line.Quantity += delta
	if line.Quantity <= 0 {
		delete(b.lines, product.ID)
	}
}

// Clear drops every line.
func (b *Basket) Clear() {
	b.lines = map[int64]*Line{}
}

// Len returns the number of distinct lines.
func (b *Basket) Len() int {
	return len(b.lines)
}

// IsEmpty reports whether the basket holds no lines.
func (b *Basket) IsEmpty() bool {
	return len(b.lines) == 0
}

// Quantity returns the held quantity for the product, zero if absent.
func (b *Basket) Quantity(productID int64) int {
	if line, ok := b.lines[productID]; ok {
		return line.Quantity
	}
	return 0
}

// Lines returns copies of every line, ordered ascending by product id.
func (b *Basket) Lines() []Line {
	out := make([]Line, 0, len(b.lines))
	for _, line := range b.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// Totals are the cash and coin sums across every line. Coin stays
// exact; truncation to integer coins happens only at display time.
type Totals struct {
	Cash decimal.Decimal
	Coin decimal.Decimal
}

// CoinDisplay is the coin total truncated toward zero for display.
func (t Totals) CoinDisplay() int64 {
	return t.Coin.IntPart()
}

// Totals sums unit price and unit coin across all lines, weighted by
// quantity. An empty basket totals to zero.
func (b *Basket) Totals() Totals {
	totals := Totals{Cash: decimal.Zero, Coin: decimal.Zero}
	for _, line := range b.lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		totals.Cash = totals.Cash.Add(line.UnitPrice.Mul(qty))
		totals.Coin = totals.Coin.Add(line.UnitCoin.Mul(qty))
	}
	return totals
}
