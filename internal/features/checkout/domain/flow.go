package domain

import (
	"errors"

	orders "bakery-storefront/internal/features/orders/domain"
)

var (
	// ErrEmptyCart is returned when checkout starts or finalizes with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidTransition is returned when an action is not allowed in the current step.
	ErrInvalidTransition = errors.New("invalid checkout transition")
	// ErrInvalidFulfillment is returned when shipping details are incomplete.
	ErrInvalidFulfillment = errors.New("invalid fulfillment")
	// ErrInvalidPayment is returned for an unknown payment method.
	ErrInvalidPayment = errors.New("invalid payment method")
	// ErrLoginRequired is returned when a step needs an authenticated visitor.
	ErrLoginRequired = errors.New("login required")
	// ErrSubmissionInFlight is returned when an order submission is already running.
	ErrSubmissionInFlight = errors.New("order submission already in progress")
	// ErrSubmissionFailed wraps the backend error of a rejected order submission.
	ErrSubmissionFailed = errors.New("order submission failed")
)

// Step is a checkout stage.
type Step string

const (
	StepCart         Step = "cart"
	StepAuth         Step = "auth"
	StepCheckout     Step = "checkout"
	StepConfirmation Step = "confirmation"
	StepComplete     Step = "complete"
)

// Flow is the checkout progress of one visitor.
type Flow struct {
	SessionID string `json:"-"`
	Step      Step   `json:"step"`
	// ResumeCheckout is set when the visitor was sent to log in from the cart.
	ResumeCheckout bool                 `json:"resumeCheckout"`
	Fulfillment    *Fulfillment         `json:"fulfillment,omitempty"`
	PaymentMethod  orders.PaymentMethod `json:"paymentMethod,omitempty"`
	// IdempotencyKey is minted on entering confirmation and reused by every
	// submission attempt of that confirmation.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
	OrderID        int    `json:"orderId,omitempty"`
	// Placed holds the totals of the submitted order once complete.
	Placed    *Totals `json:"placed,omitempty"`
	LastError string  `json:"lastError,omitempty"`
}

// NewFlow returns a flow at the cart step.
func NewFlow(sessionID string) *Flow {
	return &Flow{SessionID: sessionID, Step: StepCart}
}

// Proceed leaves the cart, to checkout when authenticated and to the login gate otherwise.
func (f *Flow) Proceed(cartEmpty, authenticated bool) error {
	if f.Step != StepCart {
		return ErrInvalidTransition
	}
	if cartEmpty {
		return ErrEmptyCart
	}

	f.LastError = ""
	if authenticated {
		f.Step = StepCheckout
		f.ResumeCheckout = false
		return nil
	}
	f.Step = StepAuth
	f.ResumeCheckout = true
	return nil
}

// Authenticated resumes a checkout interrupted by the login gate. It reports
// whether the flow moved.
func (f *Flow) Authenticated() bool {
	if f.Step != StepAuth || !f.ResumeCheckout {
		return false
	}
	f.Step = StepCheckout
	f.ResumeCheckout = false
	return true
}

// Continue records the fulfillment and moves to confirmation.
func (f *Flow) Continue(ful Fulfillment, idempotencyKey string) error {
	if f.Step != StepCheckout {
		return ErrInvalidTransition
	}
	if err := ful.Validate(); err != nil {
		return err
	}

	f.Fulfillment = &ful
	f.IdempotencyKey = idempotencyKey
	f.LastError = ""
	f.Step = StepConfirmation
	return nil
}

// Back goes one step back: confirmation to checkout, checkout to cart.
func (f *Flow) Back() error {
	switch f.Step {
	case StepConfirmation:
		f.Step = StepCheckout
		f.IdempotencyKey = ""
		f.PaymentMethod = ""
	case StepCheckout:
		f.Step = StepCart
	default:
		return ErrInvalidTransition
	}
	f.LastError = ""
	return nil
}

// ReadyToSubmit checks that an order can be submitted with pm.
func (f *Flow) ReadyToSubmit(pm orders.PaymentMethod) error {
	if f.Step != StepConfirmation || f.Fulfillment == nil {
		return ErrInvalidTransition
	}
	if !pm.Valid() {
		return ErrInvalidPayment
	}
	f.PaymentMethod = pm
	return nil
}

// Complete records the created order.
func (f *Flow) Complete(orderID int, totals Totals) {
	f.Step = StepComplete
	f.OrderID = orderID
	f.Placed = &totals
	f.LastError = ""
	f.ResumeCheckout = false
}

// Fail records a submission error and stays in confirmation.
func (f *Flow) Fail(message string) {
	f.LastError = message
}

// Close abandons or dismisses the flow. It reports whether the cart must be
// cleared, which happens only when dismissing a completed order.
func (f *Flow) Close() (clearCart bool, err error) {
	switch f.Step {
	case StepAuth:
		return false, ErrInvalidTransition
	case StepComplete:
		clearCart = true
	}
	f.Reset()
	return clearCart, nil
}

// Reset drops every checkout detail and returns to the cart step.
func (f *Flow) Reset() {
	*f = Flow{SessionID: f.SessionID, Step: StepCart}
}
