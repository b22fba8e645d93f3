package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authsvc "dulces-storefront/internal/service/auth"
	cartsvc "dulces-storefront/internal/service/cart"

	"dulces-storefront/internal/domain"
	"dulces-storefront/internal/storage"
)

type stubIdentity struct {
	user *domain.User
}

func (s *stubIdentity) Current(_ context.Context) (*domain.User, error) {
	if s.user == nil {
		return nil, authsvc.ErrNotAuthenticated
	}
	return s.user, nil
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func alfajores() domain.Product {
	return domain.Product{ID: "2", Name: "Alfajores de Maicena", Price: 8000, Category: domain.CategoryAlfajores}
}

func validContact() ContactInput {
	return ContactInput{Name: "Ana", RUT: "11.111.111-1", Email: "a@a.com", Phone: "+56911111111"}
}

func newTestFlow(t *testing.T, ctx context.Context, identity identityProvider) (*Flow, *cartsvc.Store) {
	t.Helper()
	st := storage.NewMemory()
	cart := cartsvc.New(ctx, st, testLogger())
	return New(ctx, cart, identity, st, testLogger()), cart
}

func TestShippingCosts(t *testing.T) {
	assert.EqualValues(t, 0, ShippingCost(domain.DeliveryPickup))
	assert.EqualValues(t, 3500, ShippingCost(domain.DeliveryBranch))
	assert.EqualValues(t, 5000, ShippingCost(domain.DeliveryHome))
}

func TestStartsAtContactStep(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFlow(t, ctx, &stubIdentity{})
	assert.Equal(t, StepContact, f.Current())
	assert.Equal(t, domain.DeliveryPickup, f.Data().DeliveryMethod)
}

func TestEmptyCartBlocksCheckout(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFlow(t, ctx, &stubIdentity{})

	assert.ErrorIs(t, f.CanCheckout(), ErrEmptyCart)

	_, err := f.Next(ctx)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestContactGating(t *testing.T) {
	ctx := context.Background()
	f, cart := newTestFlow(t, ctx, &stubIdentity{})
	cart.Add(ctx, alfajores())

	_, err := f.Next(ctx)
	assert.ErrorIs(t, err, ErrContactRequired)

	// Every required field must be present, not just some.
	partials := []ContactInput{
		{RUT: "1-9", Email: "a@a.com", Phone: "+569"},
		{Name: "Ana", Email: "a@a.com", Phone: "+569"},
		{Name: "Ana", RUT: "1-9", Phone: "+569"},
		{Name: "Ana", RUT: "1-9", Email: "a@a.com"},
	}
	for _, in := range partials {
		f.SetContact(ctx, in)
		_, err := f.Next(ctx)
		assert.ErrorIs(t, err, ErrContactRequired, "input %+v", in)
	}

	f.SetContact(ctx, validContact())
	step, err := f.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepDelivery, step)
}

func TestAddressGatingForNonPickup(t *testing.T) {
	ctx := context.Background()
	f, cart := newTestFlow(t, ctx, &stubIdentity{})
	cart.Add(ctx, alfajores())
	f.SetContact(ctx, validContact())
	_, err := f.Next(ctx)
	require.NoError(t, err)

	require.NoError(t, f.SetDeliveryMethod(ctx, domain.DeliveryHome))
	_, err = f.Next(ctx)
	assert.ErrorIs(t, err, ErrAddressRequired)

	f.SetDeliveryAddress(ctx, AddressInput{Region: "Metropolitana", Commune: "Santiago", Address: "Av. Siempre Viva 742"})
	step, err := f.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepPayment, step)
}

func TestPickupSkipsAddressGate(t *testing.T) {
	ctx := context.Background()
	f, cart := newTestFlow(t, ctx, &stubIdentity{})
	cart.Add(ctx, alfajores())
	f.SetContact(ctx, validContact())
	_, err := f.Next(ctx)
	require.NoError(t, err)

	step, err := f.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepPayment, step)
}

func TestBackPreservesData(t *testing.T) {
	ctx := context.Background()
	f, cart := newTestFlow(t, ctx, &stubIdentity{})
	cart.Add(ctx, alfajores())
	f.SetContact(ctx, validContact())
	_, err := f.Next(ctx)
	require.NoError(t, err)

	step, err := f.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepContact, step)
	assert.Equal(t, "Ana", f.Data().Name)
	assert.Equal(t, "11.111.111-1", f.Data().RUT)

	// Backing out of the first step exits checkout.
	_, err = f.Back(ctx)
	assert.ErrorIs(t, err, ErrExit)
}

func TestSummaryRecomputedOnMethodChange(t *testing.T) {
	ctx := context.Background()
	f, cart := newTestFlow(t, ctx, &stubIdentity{})
	cart.Add(ctx, alfajores())
	cart.Add(ctx, alfajores())

	sum := f.Summary()
	assert.EqualValues(t, 16000, sum.Subtotal)
	assert.EqualValues(t, 0, sum.ShippingCost)
	assert.EqualValues(t, 16000, sum.Total)

	require.NoError(t, f.SetDeliveryMethod(ctx, domain.DeliveryBranch))
	sum = f.Summary()
	assert.EqualValues(t, 3500, sum.ShippingCost)
	assert.EqualValues(t, 19500, sum.Total)

	require.NoError(t, f.SetDeliveryMethod(ctx, domain.DeliveryHome))
	sum = f.Summary()
	assert.EqualValues(t, 5000, sum.ShippingCost)
	assert.EqualValues(t, 21000, sum.Total)
}

func TestUnknownDeliveryMethodRejected(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFlow(t, ctx, &stubIdentity{})
	assert.ErrorIs(t, f.SetDeliveryMethod(ctx, "carrier-pigeon"), ErrUnknownDeliveryMethod)
}

func TestSubmitOnlyFromPaymentStep(t *testing.T) {
	ctx := context.Background()
	f, cart := newTestFlow(t, ctx, &stubIdentity{})
	cart.Add(ctx, alfajores())

	_, err := f.Submit(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	cart := cartsvc.New(ctx, st, testLogger())
	f := New(ctx, cart, &stubIdentity{}, st, testLogger())

	cart.Add(ctx, alfajores())
	cart.Add(ctx, alfajores())

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.EqualValues(t, 16000, cart.Total())
	assert.Equal(t, 2, cart.Count())

	// Blocked at step one until contact data is complete.
	_, err := f.Next(ctx)
	require.ErrorIs(t, err, ErrContactRequired)

	f.SetContact(ctx, validContact())
	step, err := f.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, StepDelivery, step)

	require.NoError(t, f.SetDeliveryMethod(ctx, domain.DeliveryHome))
	f.SetDeliveryAddress(ctx, AddressInput{Region: "Metropolitana", Commune: "Santiago", Address: "Av. Siempre Viva 742"})

	sum := f.Summary()
	assert.EqualValues(t, 5000, sum.ShippingCost)
	assert.EqualValues(t, 21000, sum.Total)

	step, err = f.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, StepPayment, step)

	order, err := f.Submit(ctx)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEmpty(t, order.ID)
	assert.EqualValues(t, 16000, order.Subtotal)
	assert.EqualValues(t, 5000, order.ShippingCost)
	assert.EqualValues(t, 21000, order.Total)
	assert.Equal(t, domain.DeliveryHome, order.DeliveryMethod)
	assert.Equal(t, "Ana", order.Customer.Name)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Empty(t, cart.Items())
	assert.Equal(t, StepSuccess, f.Current())

	// Success is terminal.
	_, err = f.Next(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.Back(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.Submit(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAuthenticatedUserSkipsContactStep(t *testing.T) {
	ctx := context.Background()
	identity := &stubIdentity{user: &domain.User{
		Email: "ana@example.com",
		Name:  "Ana",
		Phone: "+56911111111",
	}}
	f, _ := newTestFlow(t, ctx, identity)

	assert.Equal(t, StepDelivery, f.Current())
	data := f.Data()
	assert.Equal(t, "Ana", data.Name)
	assert.Equal(t, "ana@example.com", data.Email)
	assert.Equal(t, "+56911111111", data.Phone)
}

func TestGuestDoesNotSkipContactStep(t *testing.T) {
	ctx := context.Background()
	identity := &stubIdentity{user: &domain.User{Email: "guest@example.com", IsGuest: true}}
	f, _ := newTestFlow(t, ctx, identity)

	assert.Equal(t, StepContact, f.Current())
	assert.Empty(t, f.Data().Name)
}

func TestUseSavedAddress(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFlow(t, ctx, &stubIdentity{})

	f.UseSavedAddress(ctx, domain.Address{
		Title:   "Casa",
		Region:  "Metropolitana",
		Commune: "Santiago",
		Address: "Av. Siempre Viva 742",
	})

	data := f.Data()
	assert.Equal(t, "Metropolitana", data.Region)
	assert.Equal(t, "Santiago", data.Commune)
	assert.Equal(t, "Av. Siempre Viva 742", data.Address)
}

func TestCheckoutDataPersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	cart := cartsvc.New(ctx, st, testLogger())

	f := New(ctx, cart, &stubIdentity{}, st, testLogger())
	f.SetContact(ctx, validContact())
	require.NoError(t, f.SetDeliveryMethod(ctx, domain.DeliveryBranch))

	restored := New(ctx, cart, &stubIdentity{}, st, testLogger())
	data := restored.Data()
	assert.Equal(t, "Ana", data.Name)
	assert.Equal(t, domain.DeliveryBranch, data.DeliveryMethod)
}

func TestCorruptCheckoutDataFallsBackEmpty(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	cart := cartsvc.New(ctx, st, testLogger())
	require.NoError(t, st.Put(ctx, "checkout", []byte("not json")))

	f := New(ctx, cart, &stubIdentity{}, st, testLogger())
	assert.Empty(t, f.Data().Name)
	assert.Equal(t, domain.DeliveryPickup, f.Data().DeliveryMethod)
}

func TestResetClearsDataAndStep(t *testing.T) {
	ctx := context.Background()
	f, cart := newTestFlow(t, ctx, &stubIdentity{})
	cart.Add(ctx, alfajores())
	f.SetContact(ctx, validContact())
	require.NoError(t, f.SetDeliveryMethod(ctx, domain.DeliveryHome))
	_, err := f.Next(ctx)
	require.NoError(t, err)

	f.Reset(ctx)

	assert.Equal(t, StepContact, f.Current())
	assert.Empty(t, f.Data().Name)
	assert.Equal(t, domain.DeliveryPickup, f.Data().DeliveryMethod)
}
