package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// loadTimeout bounds a shared cache-miss load, which outlives the request
// that started it.
const loadTimeout = 5 * time.Second

type Service struct {
	repo  Repository
	cache Cache
	log   *zap.Logger
	sfg   singleflight.Group

	// mu orders cache fills against invalidations; gen counts invalidations.
	mu  sync.Mutex
	gen uint64
}

func NewService(repo Repository, cache Cache, log *zap.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, cache: cache, log: log}
}

// ForUser returns the cart of userID, creating it on first use.
func (s *Service) ForUser(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	gen := s.generation()
	c, err := s.repo.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.fill(c, gen)
	return c, nil
}

// Get reads a cart through the cache. Concurrent misses for the same cart
// share one repository read, which does not stop when the first caller
// goes away.
func (s *Service) Get(ctx context.Context, cartID uuid.UUID) (*Cart, error) {
	v, err, _ := s.sfg.Do(cartID.String(), func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		c, err := s.cache.Get(ctx, cartID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("cart cache get failed", zap.Stringer("cart_id", cartID), zap.Error(err))
		}

		gen := s.generation()
		c, err = s.repo.Get(ctx, cartID)
		if err != nil {
			return nil, err
		}
		s.fill(c, gen)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Cart), nil
}

func (s *Service) AddItem(ctx context.Context, cartID, vehicleID uuid.UUID, quantity int) (*Item, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	it, err := s.repo.AddItem(ctx, cartID, vehicleID, quantity)
	if err != nil {
		s.log.Debug("add item failed", zap.Stringer("cart_id", cartID), zap.Error(err))
		return nil, err
	}
	s.Invalidate(cartID)
	return it, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*Item, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	it, err := s.repo.UpdateQuantity(ctx, itemID, quantity)
	if err != nil {
		return nil, err
	}
	s.Invalidate(it.CartID)
	return it, nil
}

// RemoveItem is idempotent: removing an absent item succeeds.
func (s *Service) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	cartID, err := s.repo.RemoveItem(ctx, itemID)
	if err != nil {
		return err
	}
	if cartID != uuid.Nil {
		s.Invalidate(cartID)
	}
	return nil
}

func (s *Service) Clear(ctx context.Context, cartID uuid.UUID) error {
	if err := s.repo.Clear(ctx, cartID); err != nil {
		return err
	}
	s.Invalidate(cartID)
	return nil
}

// Invalidate drops the cached copy of a cart. Cache errors are logged only.
func (s *Service) Invalidate(cartID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if err := s.cache.Delete(ctx, cartID); err != nil {
		s.log.Warn("cart cache invalidate failed", zap.Stringer("cart_id", cartID), zap.Error(err))
	}
}

func (s *Service) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// fill caches c unless an invalidation ran since gen was read: c may then
// predate a write whose delete already happened.
func (s *Service) fill(c *Cart, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.store(c)
}

func (s *Service) store(c *Cart) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Set(ctx, c); err != nil {
		s.log.Warn("cart cache set failed", zap.Stringer("cart_id", c.ID), zap.Error(err))
	}
}
