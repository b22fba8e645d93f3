// Package checkout drives the three step checkout sequence: contact info,
// delivery method, payment confirmation. Steps are an explicit enumeration
// and transitions are validated; there is no arithmetic on step values.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dulces-storefront/internal/domain"
	"dulces-storefront/internal/storage"
)

const storageKey = "checkout"

// Step identifies a checkout flow state.
type Step string

const (
	StepContact  Step = "contact"
	StepDelivery Step = "delivery"
	StepPayment  Step = "payment"
	StepSuccess  Step = "success"
)

// Flat shipping fees in Chilean pesos.
var shippingCosts = map[domain.DeliveryMethod]int64{
	domain.DeliveryPickup: 0,
	domain.DeliveryBranch: 3500,
	domain.DeliveryHome:   5000,
}

// ShippingCost returns the flat fee for a delivery method.
func ShippingCost(m domain.DeliveryMethod) int64 {
	return shippingCosts[m]
}

var (
	// ErrEmptyCart blocks checkout while the cart has no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrContactRequired is returned when advancing past the contact step
	// with a missing required field.
	ErrContactRequired = errors.New("contact fields required")
	// ErrAddressRequired is returned when advancing past the delivery step
	// with a non-pickup method and an incomplete address.
	ErrAddressRequired = errors.New("delivery address required")
	// ErrInvalidTransition is returned for any transition the step table
	// does not permit.
	ErrInvalidTransition = errors.New("invalid step transition")
	// ErrExit is returned when backing out of the first step; the caller
	// leaves checkout and returns to the catalog.
	ErrExit = errors.New("exited checkout")
	// ErrUnknownDeliveryMethod rejects methods outside the enumeration.
	ErrUnknownDeliveryMethod = errors.New("unknown delivery method")
)

type cartStore interface {
	Items() []domain.CartItem
	Total() int64
	Clear(ctx context.Context)
}

type identityProvider interface {
	Current(ctx context.Context) (*domain.User, error)
}

// ContactInput carries the step one form fields.
type ContactInput struct {
	Name  string `json:"name"`
	RUT   string `json:"rut"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AddressInput carries the step two shipping address fields.
type AddressInput struct {
	Region  string `json:"region"`
	Commune string `json:"commune"`
	Address string `json:"address"`
	Message string `json:"message"`
}

// Summary is the derived pricing shown alongside every step.
type Summary struct {
	Items          []domain.CartItem     `json:"items"`
	Subtotal       int64                 `json:"subtotal"`
	ShippingCost   int64                 `json:"shippingCost"`
	Total          int64                 `json:"total"`
	DeliveryMethod domain.DeliveryMethod `json:"deliveryMethod"`
}

// Flow owns checkout progress for the current session. Collected data is
// persisted across step navigation; the step itself is session state.
type Flow struct {
	mu       sync.Mutex
	step     Step
	data     domain.CheckoutData
	cart     cartStore
	identity identityProvider
	storage  storage.Store
	logger   *zap.SugaredLogger
}

// New builds a Flow, rehydrating persisted checkout data. An authenticated
// non-guest identity pre-fills the contact fields and starts the flow at the
// delivery step; that skip is a shortcut, not a correctness requirement.
func New(ctx context.Context, cart cartStore, identity identityProvider, st storage.Store, logger *zap.SugaredLogger) *Flow {
	f := &Flow{
		cart:     cart,
		identity: identity,
		storage:  st,
		logger:   logger,
	}
	raw, err := st.Get(ctx, storageKey)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		logger.Warnw("load checkout data from storage", "error", err)
	default:
		if err := json.Unmarshal(raw, &f.data); err != nil {
			logger.Warnw("failed to parse checkout data from storage, starting empty", "error", err)
			f.data = domain.CheckoutData{}
		}
	}
	if !f.data.DeliveryMethod.Valid() {
		f.data.DeliveryMethod = domain.DeliveryPickup
	}
	f.step = StepContact
	f.prefillLocked(ctx)
	return f
}

// Current returns the step the flow is on.
func (f *Flow) Current() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Data returns the collected checkout data.
func (f *Flow) Data() domain.CheckoutData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

// SetContact updates the contact fields, preserving delivery data.
func (f *Flow) SetContact(ctx context.Context, in ContactInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.Name = in.Name
	f.data.RUT = in.RUT
	f.data.Email = in.Email
	f.data.Phone = in.Phone
	f.persistLocked(ctx)
}

// SetDeliveryAddress updates the shipping address fields.
func (f *Flow) SetDeliveryAddress(ctx context.Context, in AddressInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.Region = in.Region
	f.data.Commune = in.Commune
	f.data.Address = in.Address
	f.data.Message = in.Message
	f.persistLocked(ctx)
}

// UseSavedAddress copies a saved profile address into the shipping fields.
func (f *Flow) UseSavedAddress(ctx context.Context, addr domain.Address) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.Region = addr.Region
	f.data.Commune = addr.Commune
	f.data.Address = addr.Address
	f.persistLocked(ctx)
}

// SetDeliveryMethod selects the delivery method; shipping cost and final
// total are derived from it on every read.
func (f *Flow) SetDeliveryMethod(ctx context.Context, m domain.DeliveryMethod) error {
	if !m.Valid() {
		return ErrUnknownDeliveryMethod
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.DeliveryMethod = m
	f.persistLocked(ctx)
	return nil
}

// Summary computes subtotal, shipping and total from the current cart and
// delivery method. Never cached.
func (f *Flow) Summary() Summary {
	f.mu.Lock()
	method := f.data.DeliveryMethod
	f.mu.Unlock()

	subtotal := f.cart.Total()
	shipping := shippingCosts[method]
	return Summary{
		Items:          f.cart.Items(),
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		Total:          subtotal + shipping,
		DeliveryMethod: method,
	}
}

// CanCheckout reports whether the flow may be shown at all: an empty cart
// refuses checkout unless the flow already reached success.
func (f *Flow) CanCheckout() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guardCartLocked()
}

// Next advances one step. Leaving the contact step requires name, RUT, email
// and phone; leaving the delivery step with a non-pickup method requires a
// complete address. The payment step only advances through Submit.
func (f *Flow) Next(ctx context.Context) (Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.guardCartLocked(); err != nil {
		return f.step, err
	}
	switch f.step {
	case StepContact:
		if !f.data.ContactComplete() {
			return f.step, ErrContactRequired
		}
		f.step = StepDelivery
	case StepDelivery:
		if f.data.DeliveryMethod != domain.DeliveryPickup && !f.data.AddressComplete() {
			return f.step, ErrAddressRequired
		}
		f.step = StepPayment
	default:
		return f.step, ErrInvalidTransition
	}
	return f.step, nil
}

// Back returns to the previous step without losing entered data. Backing out
// of the contact step yields ErrExit; success is terminal.
func (f *Flow) Back(ctx context.Context) (Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.step {
	case StepContact:
		return f.step, ErrExit
	case StepDelivery:
		f.step = StepContact
	case StepPayment:
		f.step = StepDelivery
	default:
		return f.step, ErrInvalidTransition
	}
	return f.step, nil
}

// Submit confirms the order from the payment step: it composes the order
// snapshot, logs it (the system's delivery boundary), clears the cart and
// moves the flow to its terminal success state.
func (f *Flow) Submit(ctx context.Context) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPayment {
		return nil, ErrInvalidTransition
	}
	if err := f.guardCartLocked(); err != nil {
		return nil, err
	}

	items := f.cart.Items()
	subtotal := f.cart.Total()
	shipping := shippingCosts[f.data.DeliveryMethod]
	order := &domain.Order{
		ID:             uuid.NewString(),
		Items:          items,
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		Total:          subtotal + shipping,
		DeliveryMethod: f.data.DeliveryMethod,
		Customer:       f.data,
		CreatedAt:      time.Now().UTC(),
	}
	if f.identity != nil {
		if user, err := f.identity.Current(ctx); err == nil {
			order.User = user
		}
	}

	f.logger.Infow("order received",
		"orderId", order.ID,
		"items", len(order.Items),
		"subtotal", order.Subtotal,
		"shippingCost", order.ShippingCost,
		"total", order.Total,
		"deliveryMethod", order.DeliveryMethod,
		"customer", order.Customer.Name,
	)

	f.cart.Clear(ctx)
	f.step = StepSuccess
	return order, nil
}

// Reset starts a fresh checkout session: collected data is cleared and the
// initial step is recomputed from the current identity.
func (f *Flow) Reset(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = domain.CheckoutData{DeliveryMethod: domain.DeliveryPickup}
	f.step = StepContact
	f.prefillLocked(ctx)
	f.persistLocked(ctx)
}

func (f *Flow) guardCartLocked() error {
	if f.step == StepSuccess {
		return nil
	}
	if len(f.cart.Items()) == 0 {
		return ErrEmptyCart
	}
	return nil
}

func (f *Flow) prefillLocked(ctx context.Context) {
	if f.identity == nil {
		return
	}
	user, err := f.identity.Current(ctx)
	if err != nil || user == nil || user.IsGuest {
		return
	}
	if user.Name != "" {
		f.data.Name = user.Name
	}
	if user.Email != "" {
		f.data.Email = user.Email
	}
	if user.Phone != "" {
		f.data.Phone = user.Phone
	}
	f.step = StepDelivery
}

func (f *Flow) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(f.data)
	if err != nil {
		f.logger.Warnw("encode checkout data", "error", err)
		return
	}
	if err := f.storage.Put(ctx, storageKey, raw); err != nil {
		f.logger.Warnw("persist checkout data", "error", err)
	}
}
