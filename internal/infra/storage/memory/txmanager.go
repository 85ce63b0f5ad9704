package memory

import (
	"context"
	"sync"
)

// TxManager сериализует функции под мьютексом.
// Заменяет транзакции PostgreSQL для хранилища в памяти.
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager создает менеджер транзакций для хранилища в памяти
func NewTxManager() *TxManager {
	return &TxManager{}
}

// DoSerializable выполняет fn эксклюзивно
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(ctx)
}
