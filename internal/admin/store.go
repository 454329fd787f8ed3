package admin

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/marishandmade/storefront/internal/cart"
	"github.com/marishandmade/storefront/internal/catalog"
)

// Mirror is the remote persistence collaborator. Calls are best-effort: the
// store never rolls back a local mutation because a mirror call failed, and
// never retries. Failures are logged and otherwise invisible.
type Mirror interface {
	FetchProducts(ctx context.Context) ([]catalog.Product, error)
	FetchOrders(ctx context.Context) ([]Order, error)
	CreateProduct(ctx context.Context, p catalog.Product) error
	UpdateProduct(ctx context.Context, p catalog.Product) error
	DeleteProduct(ctx context.Context, id string) error
	CreateOrder(ctx context.Context, o Order) error
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error
}

// Store owns the canonical product catalog, the order history, and the site
// configuration. Mutations apply to local in-memory state synchronously and
// unconditionally, are written through to the local snapshot, and are then
// mirrored remotely in a detached goroutine when a Mirror is configured.
// Local state is the source of truth for the session; the remote store is an
// eventually-consistent best-effort copy.
type Store struct {
	mu       sync.Mutex
	products []catalog.Product
	orders   []Order
	site     SiteConfig
	loading  bool

	snapshots *SnapshotFile
	mirror    Mirror
}

// NewStore builds the store from seed data, then rehydrates from the local
// snapshot if a compatible one exists. Remote hydration is separate and
// explicit: call Hydrate once after startup.
func NewStore(seed []catalog.Product, site SiteConfig, snapshots *SnapshotFile, mirror Mirror) *Store {
	s := &Store{
		products:  append([]catalog.Product(nil), seed...),
		site:      site,
		snapshots: snapshots,
		mirror:    mirror,
	}

	if snapshots != nil {
		st, ok, err := snapshots.Load()
		if err != nil {
			log.Warn().Err(err).Msg("failed to read local snapshot, starting from seed data")
		} else if ok {
			s.products = st.Products
			s.orders = st.Orders
			s.site = st.SiteConfig
		}
	}

	return s
}

// SyncEnabled reports whether remote mirroring is configured. The check is
// made once at construction; there is no runtime renegotiation.
func (s *Store) SyncEnabled() bool {
	return s.mirror != nil
}

// Loading reports whether the one-shot remote hydration is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Products returns a copy of the catalog, most recently added first.
func (s *Store) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product returns the catalog entry with the given id, if present.
func (s *Store) Product(id string) (catalog.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// Orders returns a copy of the order history, newest first.
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = copyOrder(o)
	}
	return out
}

// SiteConfig returns the current image slot configuration.
func (s *Store) SiteConfig() SiteConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.site
}

// AddProduct prepends a product to the catalog and mirrors the create.
func (s *Store) AddProduct(p catalog.Product) {
	s.mu.Lock()
	s.products = append([]catalog.Product{p}, s.products...)
	s.persistLocked()
	s.mu.Unlock()

	s.mirrorAsync("create product", func(ctx context.Context) error {
		return s.mirror.CreateProduct(ctx, p)
	})
}

// UpdateProduct merges the patch into the matching product and mirrors the
// full merged row. Unknown ids are a silent no-op.
func (s *Store) UpdateProduct(id string, patch ProductPatch) {
	s.mu.Lock()
	var merged catalog.Product
	found := false
	for i := range s.products {
		if s.products[i].ID == id {
			patch.apply(&s.products[i])
			merged = s.products[i]
			found = true
			break
		}
	}
	if found {
		s.persistLocked()
	}
	s.mu.Unlock()

	if !found {
		return
	}
	s.mirrorAsync("update product", func(ctx context.Context) error {
		return s.mirror.UpdateProduct(ctx, merged)
	})
}

// RemoveProduct deletes the matching product and mirrors the delete. Unknown
// ids are a silent no-op.
func (s *Store) RemoveProduct(id string) {
	s.mu.Lock()
	kept := s.products[:0]
	removed := false
	for _, p := range s.products {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	s.products = kept
	if removed {
		s.persistLocked()
	}
	s.mu.Unlock()

	if !removed {
		return
	}
	s.mirrorAsync("delete product", func(ctx context.Context) error {
		return s.mirror.DeleteProduct(ctx, id)
	})
}

// AddOrder prepends an order to the history and mirrors the create. The item
// snapshot is copied so later catalog edits cannot reach into the record.
func (s *Store) AddOrder(o Order) {
	o = copyOrder(o)

	s.mu.Lock()
	s.orders = append([]Order{o}, s.orders...)
	s.persistLocked()
	s.mu.Unlock()

	s.mirrorAsync("create order", func(ctx context.Context) error {
		return s.mirror.CreateOrder(ctx, o)
	})
}

// UpdateOrderStatus moves the matching order through the status state
// machine and mirrors the change. Unknown ids are a silent no-op; an illegal
// transition is rejected before any state changes.
func (s *Store) UpdateOrderStatus(id string, status OrderStatus) error {
	s.mu.Lock()
	found := false
	for i := range s.orders {
		if s.orders[i].ID == id {
			if !allowedTransitions[s.orders[i].Status][status] {
				s.mu.Unlock()
				return ErrInvalidStatusTransition
			}
			s.orders[i].Status = status
			found = true
			break
		}
	}
	if found {
		s.persistLocked()
	}
	s.mu.Unlock()

	if !found {
		return nil
	}
	s.mirrorAsync("update order status", func(ctx context.Context) error {
		return s.mirror.UpdateOrderStatus(ctx, id, status)
	})
	return nil
}

// UpdateSiteConfig merges the patch into the site configuration. Site config
// is local-only: there is no remote schema for it, so nothing is mirrored.
func (s *Store) UpdateSiteConfig(patch SiteConfigPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patch.apply(&s.site)
	s.persistLocked()
}

// Hydrate performs the one-shot boot-time remote load. A successful,
// non-empty product fetch replaces the local catalog exactly once; an empty
// result or a failure keeps the seed/local data. Orders are adopted from the
// remote store only when the local history is empty, so local records are
// never clobbered. Hydrate is called at most once per process.
func (s *Store) Hydrate(ctx context.Context) {
	if s.mirror == nil {
		return
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	products, err := s.mirror.FetchProducts(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("remote product hydration failed, keeping local catalog")
	} else if len(products) > 0 {
		s.mu.Lock()
		s.products = products
		s.persistLocked()
		s.mu.Unlock()
		log.Info().Int("count", len(products)).Msg("catalog hydrated from remote store")
	}

	orders, err := s.mirror.FetchOrders(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("remote order hydration failed, keeping local history")
		return
	}
	if len(orders) == 0 {
		return
	}
	s.mu.Lock()
	if len(s.orders) == 0 {
		s.orders = orders
		s.persistLocked()
		log.Info().Int("count", len(orders)).Msg("order history hydrated from remote store")
	}
	s.mu.Unlock()
}

// persistLocked writes the full state triple through to the local snapshot.
// Persistence failures degrade to in-memory-only operation.
func (s *Store) persistLocked() {
	if s.snapshots == nil {
		return
	}
	st := State{
		Version:    SnapshotVersion,
		Products:   append([]catalog.Product(nil), s.products...),
		Orders:     append([]Order(nil), s.orders...),
		SiteConfig: s.site,
	}
	if err := s.snapshots.Save(st); err != nil {
		log.Error().Err(err).Msg("failed to write local snapshot")
	}
}

// mirrorAsync runs a mirroring call detached from the mutation that caused
// it. The caller never waits on it and never sees its failure.
func (s *Store) mirrorAsync(op string, fn func(ctx context.Context) error) {
	if s.mirror == nil {
		return
	}
	go func() {
		if err := fn(context.Background()); err != nil {
			log.Error().Err(err).Str("op", op).Msg("remote mirror call failed, local state unchanged")
		}
	}()
}

func copyOrder(o Order) Order {
	out := o
	out.Items = append([]cart.Item(nil), o.Items...)
	return out
}
