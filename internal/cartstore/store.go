// Package cartstore owns the customer's cart: an ordered item list
// persisted to a durable key-value store after every mutation and
// reloaded on first touch of a session.
package cartstore

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/example/medovik/internal/models"
)

const keyPrefix = "medovik:cart:"

// Store manages per-session carts. Persistence is best-effort: a
// failing KV never blocks a mutation, the in-memory copy stays
// authoritative for the session.
type Store struct {
	kv KV

	mu    sync.Mutex
	carts map[string]models.Cart
}

// New creates a Store backed by the given KV.
func New(kv KV) *Store {
	return &Store{
		kv:    kv,
		carts: map[string]models.Cart{},
	}
}

// Items returns a copy of the session's cart in display order.
func (s *Store) Items(ctx context.Context, session string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.load(ctx, session)
	out := make(models.Cart, len(cart))
	copy(out, cart)
	return out
}

// Add puts a product (optionally a weight variant of it) into the
// cart. The price source is resolved once, here: the variant's price
// when a variant is chosen, the product's base price otherwise. An
// existing product+variant line has its quantity bumped instead of
// duplicating the line.
func (s *Store) Add(ctx context.Context, session string, product models.Product, variant *models.WeightPrice) models.CartItem {
	weight := ""
	price := product.BasePrice
	variantTag := "default"
	if variant != nil {
		weight = variant.Weight
		price = variant.Price
		variantTag = variant.Weight
	}

	item := models.CartItem{
		ID:        product.ID.String() + "-" + variantTag,
		ProductID: product.ID.String(),
		Name:      product.Name,
		Image:     product.Image,
		Weight:    weight,
		UnitPrice: price,
		Quantity:  1,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.load(ctx, session)

	merged := false
	for i := range cart {
		if cart[i].ID == item.ID {
			cart[i].Quantity++
			item = cart[i]
			merged = true
			break
		}
	}
	if !merged {
		cart = append(cart, item)
	}

	s.save(ctx, session, cart)
	return item
}

// Remove deletes the item with the given id; unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, session, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.load(ctx, session)

	kept := cart[:0]
	for _, item := range cart {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.save(ctx, session, kept)
}

// UpdateQuantity adds delta to the item's quantity. A result of zero
// or less removes the item; unknown ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, session, itemID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.load(ctx, session)

	kept := cart[:0]
	for _, item := range cart {
		if item.ID == itemID {
			item.Quantity += delta
			if item.Quantity <= 0 {
				continue
			}
		}
		kept = append(kept, item)
	}
	s.save(ctx, session, kept)
}

// Clear empties the session's cart.
func (s *Store) Clear(ctx context.Context, session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[session] = models.Cart{}
	if err := s.kv.Delete(ctx, keyPrefix+session); err != nil {
		log.Printf("[Cart] failed to delete persisted cart for %s: %v", session, err)
	}
}

// load returns the session's cart, fetching it from the KV the first
// time the session is seen. Absent or unreadable data degrades to an
// empty cart; startup never fails on a broken blob.
func (s *Store) load(ctx context.Context, session string) models.Cart {
	if cart, ok := s.carts[session]; ok {
		return cart
	}

	cart := models.Cart{}
	value, err := s.kv.Get(ctx, keyPrefix+session)
	switch {
	case err == ErrNotFound:
	case err != nil:
		log.Printf("[Cart] failed to load cart for %s: %v", session, err)
	default:
		if err := json.Unmarshal(value, &cart); err != nil {
			log.Printf("[Cart] discarding unreadable cart for %s: %v", session, err)
			cart = models.Cart{}
		}
	}

	s.carts[session] = cart
	return cart
}

func (s *Store) save(ctx context.Context, session string, cart models.Cart) {
	s.carts[session] = cart

	value, err := json.Marshal(cart)
	if err != nil {
		log.Printf("[Cart] failed to marshal cart for %s: %v", session, err)
		return
	}
	if err := s.kv.Set(ctx, keyPrefix+session, value); err != nil {
		log.Printf("[Cart] failed to persist cart for %s: %v", session, err)
	}
}
