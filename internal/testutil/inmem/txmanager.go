package inmem

import (
	"context"
	"sync"
)

type txKey struct{}

// TxManager откатывает Store к снимку, если fn вернула ошибку.
// Транзакции сериализуются одним мьютексом, вложенный вызов присоединяется к внешнему
type TxManager struct {
	store *Store
	mu    sync.Mutex

	lockMu sync.Mutex
	Locks  []string
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) AdvisoryLock(_ context.Context, key string) error {
	m.lockMu.Lock()
	defer m.lockMu.Unlock()
	m.Locks = append(m.Locks, key)
	return nil
}
