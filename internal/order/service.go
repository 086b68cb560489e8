package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/evstore/storefront/internal/apperr"
	"github.com/evstore/storefront/internal/cart"
)

// maxNumberAttempts bounds checkout retries after an order number collision.
const maxNumberAttempts = 3

type VehicleResolver interface {
	Vehicle(ctx context.Context, id uuid.UUID) (*VehicleSnapshot, error)
}

type UserValidator interface {
	ValidateUser(ctx context.Context, id uuid.UUID) (bool, error)
}

type CartInvalidator interface {
	Invalidate(cartID uuid.UUID)
}

type Service struct {
	repo    Repository
	catalog VehicleResolver
	tax     TaxPolicy
	users   UserValidator
	carts   CartInvalidator
	log     *zap.Logger

	Now       func() time.Time
	NewNumber func(time.Time) string
}

func NewService(repo Repository, catalog VehicleResolver, tax TaxPolicy, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		catalog:   catalog,
		tax:       tax,
		log:       log,
		Now:       time.Now,
		NewNumber: NewOrderNumber,
	}
}

// WithUsers makes checkout reject unknown users.
func (s *Service) WithUsers(u UserValidator) *Service {
	s.users = u
	return s
}

// WithCarts drops cached carts after a successful checkout.
func (s *Service) WithCarts(c CartInvalidator) *Service {
	s.carts = c
	return s
}

// CreateOrder checks out cartID for userID. Items, totals and the cart clear
// are committed in one transaction; on any error nothing is written.
func (s *Service) CreateOrder(ctx context.Context, userID, cartID uuid.UUID, billing BillingInfo, shipping ShippingInfo, payment PaymentInfo) (*PurchaseOrder, error) {
	if err := ValidateCheckout(billing, shipping, payment); err != nil {
		return nil, err
	}
	if s.users != nil {
		ok, err := s.users.ValidateUser(ctx, userID)
		if err != nil {
			return nil, apperr.Storage("validate user", err)
		}
		if !ok {
			return nil, apperr.NotFound("user", userID.String())
		}
	}

	build := func(ctx context.Context, items []cart.Item) (*PurchaseOrder, error) {
		return s.build(ctx, userID, items, billing, shipping, payment)
	}

	for attempt := 1; ; attempt++ {
		o, err := s.repo.Checkout(ctx, userID, cartID, build)
		if errors.Is(err, apperr.ErrConflict) && attempt < maxNumberAttempts {
			s.log.Warn("order number collision, retrying", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}
		if err != nil {
			return nil, err
		}
		if s.carts != nil {
			s.carts.Invalidate(cartID)
		}
		s.log.Info("order created",
			zap.Stringer("order_id", o.ID),
			zap.String("order_number", o.OrderNumber),
			zap.Stringer("user_id", userID),
			zap.String("total", o.TotalAmount.StringFixed(2)))
		return o, nil
	}
}

// build prices the locked cart items against the current catalog.
func (s *Service) build(ctx context.Context, userID uuid.UUID, items []cart.Item, billing BillingInfo, shipping ShippingInfo, payment PaymentInfo) (*PurchaseOrder, error) {
	if len(items) == 0 {
		return nil, apperr.ErrEmptyCart
	}
	now := s.Now().UTC()
	o := &PurchaseOrder{
		ID:           uuid.New(),
		UserID:       userID,
		OrderNumber:  s.NewNumber(now),
		Status:       StatusPending,
		Billing:      billing,
		Shipping:     shipping,
		CardType:     payment.CardType,
		CardLastFour: payment.CardLastFour,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	subtotal := decimal.Zero
	for _, ci := range items {
		v, err := s.catalog.Vehicle(ctx, ci.VehicleID)
		if err != nil {
			return nil, apperr.Storage("resolve vehicle "+ci.VehicleID.String(), err)
		}
		it, err := NewOrderItem(o.ID, *v, ci.Quantity)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
		subtotal = subtotal.Add(it.TotalPrice)
	}

	o.Subtotal = subtotal
	o.TaxAmount = s.tax.Tax(subtotal)
	o.TotalAmount = o.Subtotal.Add(o.TaxAmount)
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus moves an order along its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to Status) (*PurchaseOrder, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := Transition(o.Lifecycle(), to, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateLifecycle(ctx, id, o.Status, next); err != nil {
		return nil, err
	}
	s.log.Info("order status changed",
		zap.Stringer("order_id", id),
		zap.Stringer("from", o.Status),
		zap.Stringer("to", to))
	o.apply(next)
	return o, nil
}

// SetAdminNotes replaces the internal notes of an order. An empty string
// clears them.
func (s *Service) SetAdminNotes(ctx context.Context, id uuid.UUID, notes string) (*PurchaseOrder, error) {
	var p *string
	if notes != "" {
		p = &notes
	}
	if err := s.repo.SetAdminNotes(ctx, id, p); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*PurchaseOrder, error) {
	return s.repo.GetByNumber(ctx, number)
}

func (s *Service) Items(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	return s.repo.GetItems(ctx, orderID)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]PurchaseOrder, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
