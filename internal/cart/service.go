package cart

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/angelmondragon/storefront-core/pkg/db"
	"github.com/angelmondragon/storefront-core/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-core/pkg/errors"
	"github.com/angelmondragon/storefront-core/pkg/logger"
)

// View is what callers render: the ordered lines and the derived totals.
type View struct {
	Items  []LineItem `json:"items"`
	Totals Totals     `json:"totals"`
}

// AddItemInput describes one add-to-cart request.
type AddItemInput struct {
	Product  Product
	Color    string
	Size     string
	Quantity int
}

// Service exposes session-scoped cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*View, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*View, error)
	UpdateQuantity(ctx context.Context, sessionID string, key LineKey, quantity int) (*View, error)
	RemoveItem(ctx context.Context, sessionID string, key LineKey) (*View, error)
	ApplyPromo(ctx context.Context, sessionID, code string) (*View, error)
	RemovePromo(ctx context.Context, sessionID string) (*View, error)
	Clear(ctx context.Context, sessionID string) (*View, error)
	Promos() []PromoCode
	CreatePromo(ctx context.Context, promo PromoCode) (*PromoCode, error)
	ReloadPromos(ctx context.Context) error
}

// ServiceParams wires a cart service. Promos and Metrics are optional.
type ServiceParams struct {
	Store   SessionStore
	Promos  PromoSource
	Rules   PricingRules
	Logger  *logger.Logger
	Metrics MetricsRecorder
}

type service struct {
	store   SessionStore
	source  PromoSource
	rules   PricingRules
	logg    *logger.Logger
	metrics MetricsRecorder

	table atomic.Pointer[PromoTable]

	locksMu sync.Mutex
	locks   map[string]*sessionLock
}

// sessionLock serializes one session's calls. It is dropped once no caller holds
// or waits on it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewService builds a cart service. When a promo source is configured the active
// promo table is loaded from it before returning.
func NewService(ctx context.Context, params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	svc := &service{
		store:   params.Store,
		source:  params.Promos,
		rules:   params.Rules,
		logg:    params.Logger,
		metrics: params.Metrics,
		locks:   make(map[string]*sessionLock),
	}
	if svc.metrics == nil {
		svc.metrics = noopMetrics{}
	}
	svc.table.Store(DefaultPromoTable())
	if svc.source != nil {
		if err := svc.ReloadPromos(ctx); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*View, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	engine, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return viewOf(engine), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*View, error) {
	return s.mutate(ctx, sessionID, "add_item", func(e *Engine) error {
		return e.AddItem(input.Product, input.Color, input.Size, input.Quantity)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, key LineKey, quantity int) (*View, error) {
	return s.mutate(ctx, sessionID, "update_quantity", func(e *Engine) error {
		if quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		if !e.UpdateQuantity(key, quantity) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, key LineKey) (*View, error) {
	return s.mutate(ctx, sessionID, "remove_item", func(e *Engine) error {
		e.RemoveItem(key)
		return nil
	})
}

func (s *service) ApplyPromo(ctx context.Context, sessionID, code string) (*View, error) {
	return s.mutate(ctx, sessionID, "apply_promo", func(e *Engine) error {
		res := e.ApplyPromoCode(code)
		s.metrics.IncPromoResult(res.Result.String())
		switch res.Result {
		case enums.PromoApplied:
			return nil
		case enums.PromoMinimumNotMet:
			return pkgerrors.New(pkgerrors.CodePromoMinimum, "cart subtotal is below the promo minimum").
				WithDetails(map[string]any{
					"code":             res.Promo.Code,
					"minimum_subtotal": res.Promo.MinimumSubtotal,
					"subtotal":         e.Totals().Subtotal,
				})
		default:
			return pkgerrors.New(pkgerrors.CodeNotFound, "promo code not found").
				WithDetails(map[string]any{"code": NormalizeCode(code)})
		}
	})
}

func (s *service) RemovePromo(ctx context.Context, sessionID string) (*View, error) {
	return s.mutate(ctx, sessionID, "remove_promo", func(e *Engine) error {
		e.RemovePromoCode()
		return nil
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) (*View, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to clear cart")
	}
	s.metrics.IncMutation("clear")
	s.logg.Info(ctx, "cart cleared")
	return viewOf(NewEngine(s.rules, s.table.Load())), nil
}

func (s *service) Promos() []PromoCode {
	return s.table.Load().Codes()
}

func (s *service) CreatePromo(ctx context.Context, promo PromoCode) (*PromoCode, error) {
	if s.source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "promo storage is not configured")
	}
	if err := promo.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	}
	row := promoToModel(promo)
	if _, err := s.source.Create(ctx, &row); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "promo code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create promo code")
	}
	if err := s.ReloadPromos(ctx); err != nil {
		return nil, err
	}
	created := promoFromModel(row)
	return &created, nil
}

// ReloadPromos swaps in a fresh table from the promo source. Carts restored after the
// swap resolve their promo against the new table.
func (s *service) ReloadPromos(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	table, err := s.source.LoadPromoTable(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load promo codes")
	}
	s.table.Store(table)
	s.logg.Info(s.logg.WithField(ctx, "promo_count", table.Len()), "promo table loaded")
	return nil
}

func (s *service) mutate(ctx context.Context, sessionID, op string, fn func(*Engine) error) (*View, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	engine, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(engine); err != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"op": op, "reason": err.Error()}), "cart mutation rejected")
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, engine.Snapshot()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to save cart")
	}
	s.metrics.IncMutation(op)
	s.logg.Debug(s.logg.WithField(ctx, "op", op), "cart updated")
	return viewOf(engine), nil
}

func (s *service) load(ctx context.Context, sessionID string) (*Engine, error) {
	snap, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load cart")
	}
	if snap == nil {
		return NewEngine(s.rules, s.table.Load()), nil
	}
	return RestoreEngine(*snap, s.rules, s.table.Load()), nil
}

func (s *service) lock(sessionID string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.locksMu.Unlock()
	}
}

func viewOf(e *Engine) *View {
	return &View{Items: e.Items(), Totals: e.Totals()}
}
