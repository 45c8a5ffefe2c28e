package basket

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/yessgo/coin-terminal/internal/catalog"
)

func product(id int64, price, originalPrice int64) catalog.Product {
	return catalog.Product{
		ID:            id,
		Name:          "test",
		Price:         decimal.NewFromInt(price),
		OriginalPrice: decimal.NewFromInt(originalPrice),
	}
}

func TestApplyDeltaCreatesLineWithSnapshot(t *testing.T) {
	b := New()
	b.ApplyDelta(product(5, 100, 120), 1)

	lines := b.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	line := lines[0]
	if line.ProductID != 5 || line.Quantity != 1 {
		t.Fatalf("unexpected line: %+v", line)
	}
	if !line.UnitPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected unit price: %s", line.UnitPrice)
	}
	if !line.UnitCoin.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("unexpected unit coin: %s", line.UnitCoin)
	}

	totals := b.Totals()
	if !totals.Cash.Equal(decimal.NewFromInt(100)) || !totals.Coin.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestApplyDeltaAccumulatesQuantity(t *testing.T) {
	b := New()
	b.ApplyDelta(product(5, 100, 120), 1)
	b.ApplyDelta(product(5, 100, 120), 2)

	if qty := b.Quantity(5); qty != 3 {
		t.Fatalf("expected quantity 3, got %d", qty)
	}
	totals := b.Totals()
	if !totals.Cash.Equal(decimal.NewFromInt(300)) || !totals.Coin.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestApplyDeltaRemovesLineAtZero(t *testing.T) {
	b := New()
	b.ApplyDelta(product(5, 100, 120), 3)
	b.ApplyDelta(product(5, 100, 120), -3)

	if !b.IsEmpty() {
		t.Fatalf("expected empty basket, got %d lines", b.Len())
	}
	totals := b.Totals()
	if !totals.Cash.IsZero() || !totals.Coin.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestApplyDeltaNegativeOnAbsentProductIsNoop(t *testing.T) {
	b := New()
	b.ApplyDelta(product(5, 100, 120), -1)

	if !b.IsEmpty() {
		t.Fatal("negative delta on absent product must not create a line")
	}
}

func TestApplyDeltaPlusThenMinusRestoresBasket(t *testing.T) {
	b := New()
	b.ApplyDelta(product(7, 50, 60), 2)

	b.ApplyDelta(product(5, 100, 120), 1)
	b.ApplyDelta(product(5, 100, 120), -1)

	if b.Len() != 1 || b.Quantity(7) != 2 {
		t.Fatalf("expected only the original line to remain, got %+v", b.Lines())
	}
	if b.Quantity(5) != 0 {
		t.Fatal("cancelled line must be removed, not retained at zero")
	}
}

func TestSnapshotSurvivesPriceChange(t *testing.T) {
	b := New()
	b.ApplyDelta(product(5, 100, 120), 1)

	// same product at a new catalog price; the line keeps its snapshot
	b.ApplyDelta(product(5, 80, 120), 1)

	lines := b.Lines()
	if !lines[0].UnitPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("snapshot price must not change, got %s", lines[0].UnitPrice)
	}
	if !b.Totals().Cash.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("unexpected cash total: %s", b.Totals().Cash)
	}
}

func TestTotalsAreLinearAcrossLines(t *testing.T) {
	b := New()
	b.ApplyDelta(product(5, 100, 120), 2)
	before := b.Totals()

	b.ApplyDelta(product(7, 40, 45), 3)
	after := b.Totals()

	if !after.Cash.Equal(before.Cash.Add(decimal.NewFromInt(120))) {
		t.Fatalf("cash total not linear: %s", after.Cash)
	}
	if !after.Coin.Equal(before.Coin.Add(decimal.NewFromInt(15))) {
		t.Fatalf("coin total not linear: %s", after.Coin)
	}
}

func TestCoinDisplayTruncatesFractionalSum(t *testing.T) {
	b := New()
	b.ApplyDelta(catalog.Product{
		ID:            9,
		Price:         decimal.RequireFromString("99.40"),
		OriginalPrice: decimal.RequireFromString("110.15"),
	}, 1)

	totals := b.Totals()
	if !totals.Coin.Equal(decimal.RequireFromString("10.75")) {
		t.Fatalf("expected exact coin total 10.75, got %s", totals.Coin)
	}
	if totals.CoinDisplay() != 10 {
		t.Fatalf("expected display truncation to 10, got %d", totals.CoinDisplay())
	}
}

func TestClearDropsEverything(t *testing.T) {
	b := New()
	b.ApplyDelta(product(5, 100, 120), 2)
	b.ApplyDelta(product(7, 40, 45), 1)

	b.Clear()
	if !b.IsEmpty() {
		t.Fatal("expected empty basket after clear")
	}
	totals := b.Totals()
	if !totals.Cash.IsZero() || !totals.Coin.IsZero() {
		t.Fatalf("expected zero totals after clear, got %+v", totals)
	}
}

func TestCoinValueNeverNegative(t *testing.T) {
	p := product(5, 120, 100) // price above original price
	if !p.CoinValue().IsZero() {
		t.Fatalf("expected zero coin value, got %s", p.CoinValue())
	}

	b := New()
	b.ApplyDelta(p, 1)
	if !b.Totals().Coin.IsZero() {
		t.Fatalf("expected zero coin total, got %s", b.Totals().Coin)
	}
}

func TestLinesOrderedByProductID(t *testing.T) {
	b := New()
	b.ApplyDelta(product(12, 10, 10), 1)
	b.ApplyDelta(product(3, 10, 10), 1)
	b.ApplyDelta(product(7, 10, 10), 1)

	lines := b.Lines()
	for i := 1; i < len(lines); i++ {
		if lines[i-1].ProductID >= lines[i].ProductID {
			t.Fatalf("lines not ordered: %+v", lines)
		}
	}
}
