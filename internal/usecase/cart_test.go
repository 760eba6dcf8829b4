package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/repository/memory"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (*CartService, *memory.Store, *MockPublisher) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Sweets().Create(ctx, &domain.Sweet{ID: "X", Name: "Brigadeiro", Price: 2.5}))
	require.NoError(t, store.Sweets().Create(ctx, &domain.Sweet{ID: "Y", Name: "Bolo", Price: 40}))
	store.PutUser(domain.User{ID: "U1", FullName: "Ana Silva", Email: "ana@example.com", Phone: "11 99999-0000"})
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := NewCartService(store.Carts(), store.Sweets(), store.Orders(), store.Users(), pub, nil, logger.NewNop())
	svc.now = func() time.Time { return baseTime }
	return svc, store, pub
}

func TestCartService_PlaceOrder(t *testing.T) {
	svc, store, pub := newCartFixture(t)
	ctx := context.Background()
	_, err := svc.AddToCart(ctx, "U1", "X", 4)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "U1", "Y", 1)
	require.NoError(t, err)

	order, err := svc.PlaceOrder(ctx, &domain.Principal{UserID: "U1"})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 50.0, order.TotalPrice)
	assert.Equal(t, "Ana Silva", order.UserName)
	assert.Equal(t, "ana@example.com", order.UserEmail)
	assert.Equal(t, baseTime, order.CreatedAt)
	assert.Len(t, order.Items, 2)

	stored, err := store.Orders().GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Items, stored.Items)

	cart, err := svc.GetCart(ctx, "U1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	pub.AssertCalled(t, "Publish", mock.Anything, SubjectOrderPlaced, mock.Anything)
}

func TestCartService_PlaceOrder_EmptyCart(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	_, err := svc.PlaceOrder(context.Background(), &domain.Principal{UserID: "U1"})

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCartService_AddToCart_Validation(t *testing.T) {
	svc, _, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "U1", "X", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AddToCart(ctx, "U1", "nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
