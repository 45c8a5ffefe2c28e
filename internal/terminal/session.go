package terminal

import (
	"context"
	"sync"

	"github.com/yessgo/coin-terminal/internal/basket"
	"github.com/yessgo/coin-terminal/internal/catalog"
	"github.com/yessgo/coin-terminal/internal/order"
	pkgerrors "github.com/yessgo/coin-terminal/pkg/errors"
)

// ProductFetcher is the catalog surface a session depends on.
type ProductFetcher interface {
	FetchProducts(ctx context.Context, partnerID int64) ([]catalog.Product, error)
}

// Session is one staff login at one terminal: the partner identity, the
// basket, and the last successfully fetched catalog. Every mutation
// runs under the session mutex, so a catalog refresh can never
// interleave with an in-flight quantity edit.
type Session struct {
	mu sync.Mutex

	token       string
	partnerID   int64
	partnerName string

	fetcher ProductFetcher
	basket  *basket.Basket

	products  []catalog.Product
	productBy map[int64]catalog.Product
}

func newSession(token string, partnerID int64, partnerName string, fetcher ProductFetcher) *Session {
	return &Session{
		token:       token,
		partnerID:   partnerID,
		partnerName: partnerName,
		fetcher:     fetcher,
		basket:      basket.New(),
		productBy:   map[int64]catalog.Product{},
	}
}

func (s *Session) Token() string       { return s.token }
func (s *Session) PartnerID() int64    { return s.partnerID }
func (s *Session) PartnerName() string { return s.partnerName }

// RefreshCatalog fetches the partner's products and replaces the
// catalog snapshot. A failed fetch leaves the previous snapshot
// untouched and is reported to the caller.
func (s *Session) RefreshCatalog(ctx context.Context) ([]catalog.Product, error) {
	products, err := s.fetcher.FetchProducts(ctx, s.partnerID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = products
	s.productBy = make(map[int64]catalog.Product, len(products))
	for _, p := range products {
		s.productBy[p.ID] = p
	}
	return s.productsLocked(), nil
}

// Products returns the last successfully fetched catalog.
func (s *Session) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productsLocked()
}

func (s *Session) productsLocked() []catalog.Product {
	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ApplyDelta adjusts the basket quantity for the product. New lines
// snapshot their price and coin value from the current catalog; a
// product absent from both catalog and basket is not found.
func (s *Session) ApplyDelta(productID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, inCatalog := s.productBy[productID]
	if !inCatalog {
		if s.basket.Quantity(productID) == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not in catalog")
		}
		// existing line: the snapshot carries the pricing, only the id matters
		product = catalog.Product{ID: productID}
	}

	s.basket.ApplyDelta(product, delta)
	return nil
}

// ClearBasket drops every line.
func (s *Session) ClearBasket() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.basket.Clear()
}

// BasketLines returns the current lines ordered by product id.
func (s *Session) BasketLines() []basket.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.Lines()
}

// Totals returns the running cash and coin totals.
func (s *Session) Totals() basket.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.Totals()
}

// Quantity returns the basket quantity for the product, zero if absent.
func (s *Session) Quantity(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.Quantity(productID)
}

// EncodeOrder snapshots the basket into an order payload.
func (s *Session) EncodeOrder() (order.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return order.Encode(s.basket, s.partnerID)
}
