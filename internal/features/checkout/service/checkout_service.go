package service

import (
	"context"
	"fmt"

	"bakery-storefront/internal/core/apiclient"
	"bakery-storefront/internal/core/logger"
	"bakery-storefront/internal/core/metrics"
	"bakery-storefront/internal/features/checkout/domain"
	"bakery-storefront/internal/features/checkout/ports"
	orders "bakery-storefront/internal/features/orders/domain"
	session "bakery-storefront/internal/features/session/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService drives the checkout flow of each visitor and submits orders.
type CheckoutService struct {
	flows   ports.FlowRepository
	cart    ports.Cart
	orders  ports.OrderCreator
	pricing domain.Pricing
	newKey  func() string
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(flows ports.FlowRepository, cart ports.Cart, orders ports.OrderCreator, pricing domain.Pricing) *CheckoutService {
	return &CheckoutService{
		flows:   flows,
		cart:    cart,
		orders:  orders,
		pricing: pricing,
		newKey:  uuid.NewString,
	}
}

// State returns the current checkout state.
func (s *CheckoutService) State(ctx context.Context, sess *session.Session) (*domain.View, error) {
	flow, err := s.flows.Load(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return s.view(ctx, flow)
}

// Proceed leaves the cart for checkout, or for the login gate when anonymous.
func (s *CheckoutService) Proceed(ctx context.Context, sess *session.Session) (*domain.View, error) {
	c, err := s.cart.Get(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	return s.step(ctx, sess.ID, func(f *domain.Flow) error {
		return f.Proceed(c.IsEmpty(), sess.IsAuthenticated)
	})
}

// OnLogin resumes a checkout interrupted by the login gate. Admins do not
// check out, so their flow goes back to the cart instead.
func (s *CheckoutService) OnLogin(ctx context.Context, sess *session.Session) error {
	flow, err := s.flows.Load(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}

	from := flow.Step
	if sess.IsAdmin() {
		if from == domain.StepCart {
			return nil
		}
		flow.Reset()
	} else if !flow.Authenticated() {
		return nil
	}
	if err := s.flows.Save(ctx, flow); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	record(from, flow.Step)
	return nil
}

// OnLogout drops the checkout details of the leaving user. The cart stays.
func (s *CheckoutService) OnLogout(ctx context.Context, sessionID string) error {
	flow, err := s.flows.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}

	from := flow.Step
	flow.Reset()
	if err := s.flows.Save(ctx, flow); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	record(from, flow.Step)
	return nil
}

// Continue records the fulfillment, pre-filled from the profile, and moves to confirmation.
func (s *CheckoutService) Continue(ctx context.Context, sess *session.Session, ful domain.Fulfillment) (*domain.View, error) {
	if !sess.IsAuthenticated {
		return nil, domain.ErrLoginRequired
	}
	ful.PrefillFrom(sess.User)

	return s.step(ctx, sess.ID, func(f *domain.Flow) error {
		return f.Continue(ful, s.newKey())
	})
}

// Back goes one step back.
func (s *CheckoutService) Back(ctx context.Context, sess *session.Session) (*domain.View, error) {
	return s.step(ctx, sess.ID, func(f *domain.Flow) error {
		return f.Back()
	})
}

// Close abandons the flow, or dismisses a completed one.
func (s *CheckoutService) Close(ctx context.Context, sess *session.Session) (*domain.View, error) {
	return s.step(ctx, sess.ID, func(f *domain.Flow) error {
		clearCart, err := f.Close()
		if err != nil {
			return err
		}
		if clearCart {
			return s.cart.Clear(ctx, sess.ID)
		}
		return nil
	})
}

// Finalize submits the order. A failed submission keeps the cart and the
// confirmation step so the visitor can retry with the same idempotency key.
func (s *CheckoutService) Finalize(ctx context.Context, sess *session.Session, pm orders.PaymentMethod) (*domain.View, error) {
	if !sess.IsAuthenticated {
		return nil, domain.ErrLoginRequired
	}

	locked, err := s.flows.Lock(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if !locked {
		return nil, domain.ErrSubmissionInFlight
	}
	defer func() {
		if err := s.flows.Unlock(context.WithoutCancel(ctx), sess.ID); err != nil {
			logger.Named("checkout").Error("Failed to release submission lock", zap.Error(err))
		}
	}()

	// read under the lock so a submission that just finished is seen
	flow, err := s.flows.Load(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := flow.ReadyToSubmit(pm); err != nil {
		return nil, err
	}

	c, err := s.cart.Get(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if c.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	order := domain.BuildOrder(c, sess.UserID(), *flow.Fulfillment, pm, s.pricing)
	l := logger.Named("checkout").With(
		zap.Int("user_id", order.UserID),
		zap.String("idempotency_key", flow.IdempotencyKey),
	)

	created, err := s.orders.Create(ctx, order, flow.IdempotencyKey)
	if err != nil {
		metrics.OrdersSubmitted.WithLabelValues("failure").Inc()
		l.Warn("Order submission failed", zap.Error(err))

		flow.Fail(apiclient.UserMessage(err))
		if saveErr := s.flows.Save(ctx, flow); saveErr != nil {
			l.Error("Failed to save checkout flow", zap.Error(saveErr))
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, err)
	}

	metrics.OrdersSubmitted.WithLabelValues("success").Inc()
	l.Info("Order submitted",
		zap.Int("order_id", created.ID),
		zap.String("total", order.Total.StringFixed(2)),
	)

	if err := s.cart.Clear(ctx, sess.ID); err != nil {
		l.Error("Failed to clear cart after order submission", zap.Error(err))
	}

	flow.Complete(created.ID, domain.Totals{
		Subtotal:     order.Subtotal,
		ShippingCost: order.ShippingCost,
		Total:        order.Total,
	})
	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	record(domain.StepConfirmation, domain.StepComplete)

	return s.view(ctx, flow)
}

// step loads the flow, applies op and saves the result.
func (s *CheckoutService) step(ctx context.Context, sessionID string, op func(*domain.Flow) error) (*domain.View, error) {
	flow, err := s.flows.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	from := flow.Step
	if err := op(flow); err != nil {
		return nil, err
	}
	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	record(from, flow.Step)

	return s.view(ctx, flow)
}

func (s *CheckoutService) view(ctx context.Context, flow *domain.Flow) (*domain.View, error) {
	c, err := s.cart.Get(ctx, flow.SessionID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	v := domain.NewView(flow, c, s.pricing)
	return &v, nil
}

func record(from, to domain.Step) {
	if from == to {
		return
	}
	metrics.CheckoutTransitions.WithLabelValues(string(from), string(to)).Inc()
	logger.Named("checkout").Debug("Checkout step changed",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
}
