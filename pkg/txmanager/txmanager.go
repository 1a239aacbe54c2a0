package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/salonbw/SBW-SchedulingService/pkg/dbmetrics"
)

var (
	// ErrSerializationFailure возвращается, когда сериализуемая транзакция
	// не смогла завершиться после всех повторов из-за конкурентных изменений
	ErrSerializationFailure = errors.New("txmanager: serialization failure after retries")

	// ErrBeginTx возвращается при ошибке начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке коммита транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

const (
	maxRetries     = 3
	retryBaseDelay = 10 * time.Millisecond
)

// Postgres-коды ошибок сериализации и дедлоков
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// TransactionManager выполняет функции внутри сериализуемых транзакций
// с повторами при конфликтах сериализации
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает менеджер транзакций поверх обёртки с метриками
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри транзакции с уровнем изоляции SERIALIZABLE
// Транзакция передается в fn через контекст; репозитории достают её через dbmetrics.GetExecutor
// При конфликте сериализации (40001) или дедлоке (40P01) повторяет до maxRetries раз
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			if c := m.db.Collector(); c != nil {
				c.TxSerializationRetries.Inc()
			}
			select {
			case <-time.After(retryBaseDelay << uint(attempt-1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !IsSerializationError(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %v", ErrSerializationFailure, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsSerializationError(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

// IsSerializationError распознает ошибки сериализации и дедлоков Postgres
func IsSerializationError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure || string(pqErr.Code) == pgDeadlockDetected
	}
	return false
}
