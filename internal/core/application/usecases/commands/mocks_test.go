package commands_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockTokenRepository struct{ mock.Mock }

func (m *MockTokenRepository) Upsert(ctx context.Context, t *notification.Token) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTokenRepository) ListAll(ctx context.Context) ([]*notification.Token, error) {
	args := m.Called(ctx)
	tokens, _ := args.Get(0).([]*notification.Token)
	return tokens, args.Error(1)
}

func (m *MockTokenRepository) ListByUser(ctx context.Context, userID kernel.UUID) ([]*notification.Token, error) {
	args := m.Called(ctx, userID)
	tokens, _ := args.Get(0).([]*notification.Token)
	return tokens, args.Error(1)
}

func (m *MockTokenRepository) DeleteByTokens(ctx context.Context, values []string) (int64, error) {
	args := m.Called(ctx, values)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockPushSender struct{ mock.Mock }

func (m *MockPushSender) Send(ctx context.Context, token string, msg notification.Message) (notification.Outcome, error) {
	args := m.Called(ctx, token, msg)
	return args.Get(0).(notification.Outcome), args.Error(1)
}

type MockDeduper struct{ mock.Mock }

func (m *MockDeduper) Claim(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeduper) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// memoryDeduper is a TransitionDeduper over a map, for tests that replay
// deliveries.
type memoryDeduper struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newMemoryDeduper() *memoryDeduper {
	return &memoryDeduper{keys: make(map[string]struct{})}
}

func (d *memoryDeduper) Claim(_ context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.keys[key]; ok {
		return false, nil
	}
	d.keys[key] = struct{}{}
	return true, nil
}

func (d *memoryDeduper) Release(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.keys, key)
	return nil
}

type MockChangeNotifier struct{ mock.Mock }

func (m *MockChangeNotifier) Notify(ctx context.Context, change ports.OrderChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTokenUoW struct{ mock.Mock }

func (m *MockTokenUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTokenUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTokenUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTokenUoW) TokenRepository() ports.TokenRepository {
	args := m.Called()
	return args.Get(0).(ports.TokenRepository)
}

type MockTokenUoWFactory struct{ mock.Mock }

func (m *MockTokenUoWFactory) Create() commands.TokenUoW {
	args := m.Called()
	return args.Get(0).(commands.TokenUoW)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

var createdAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func restoreOrder(t *testing.T, rec order.Record) *order.Order {
	t.Helper()
	if rec.ID == "" {
		rec.ID = "42"
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = createdAt
	}
	o, err := order.Restore(rec)
	require.NoError(t, err)
	return o
}

func registeredTokens(t *testing.T, values ...string) []*notification.Token {
	t.Helper()
	out := make([]*notification.Token, 0, len(values))
	for _, v := range values {
		tok, err := notification.RestoreToken(kernel.NewUUID(), v, kernel.NewUUID(), nil, createdAt)
		require.NoError(t, err)
		out = append(out, tok)
	}
	return out
}
