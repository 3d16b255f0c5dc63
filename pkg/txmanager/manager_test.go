package txmanager_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/AgendaLite-BookingService/pkg/dbmetrics"
	"github.com/m04kA/AgendaLite-BookingService/pkg/txmanager"
)

type fakeTx struct {
	commits   int
	rollbacks int
	commitErr error
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error   { t.commits++; return t.commitErr }
func (t *fakeTx) Rollback() error { t.rollbacks++; return nil }

type fakeBeginner struct {
	begins int
	lastTx *fakeTx

	// очередь ошибок COMMIT: по одной на каждую открытую транзакцию
	commitErrs []error
}

func (b *fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	tx := &fakeTx{}
	if len(b.commitErrs) > 0 {
		tx.commitErr = b.commitErrs[0]
		b.commitErrs = b.commitErrs[1:]
	}
	b.lastTx = tx
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializableCommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{}
	mgr := txmanager.NewTransactionManager(db)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, db.begins)
	assert.Equal(t, 1, db.lastTx.commits)
	assert.Equal(t, 0, db.lastTx.rollbacks)
}

func TestDoSerializableRollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	mgr := txmanager.NewTransactionManager(db)

	wantErr := errors.New("business rule violated")
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	// Бизнес-ошибка не повторяется
	assert.Equal(t, 1, db.begins)
	assert.Equal(t, 0, db.lastTx.commits)
	assert.Equal(t, 1, db.lastTx.rollbacks)
}

func TestDoSerializableRetriesOnSerializationFailure(t *testing.T) {
	db := &fakeBeginner{}
	mgr := txmanager.NewTransactionManager(db)

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("query failed: %w", serializationFailure())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, db.begins)
}

func TestDoSerializableRetriesCommitConflict(t *testing.T) {
	// Под SERIALIZABLE конфликт сериализации нередко приходит только
	// на COMMIT — он должен повторяться так же, как конфликт в запросе
	db := &fakeBeginner{commitErrs: []error{serializationFailure()}}
	mgr := txmanager.NewTransactionManager(db)

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, db.begins)
	assert.Equal(t, 1, db.lastTx.commits)
}

func TestDoSerializableCommitConflictExhausted(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{
		serializationFailure(),
		serializationFailure(),
		serializationFailure(),
		serializationFailure(),
	}}
	mgr := txmanager.NewTransactionManager(db)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.ErrorIs(t, err, txmanager.ErrTxFailed)
	assert.Equal(t, 4, db.begins) // первая попытка + 3 повтора
}

func TestDoSerializableRetriesConflictWrappedByRepository(t *testing.T) {
	// Репозитории заворачивают ошибку драйвера в свои сентинелы; код
	// 40001 должен оставаться видимым сквозь эти обёртки
	repoSentinel := errors.New("repository: failed to execute query")

	db := &fakeBeginner{}
	mgr := txmanager.NewTransactionManager(db)

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return fmt.Errorf("%w: updateStatus - execute update: %w", repoSentinel, serializationFailure())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializableRetriesExhausted(t *testing.T) {
	db := &fakeBeginner{}
	mgr := txmanager.NewTransactionManager(db)

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return serializationFailure()
	})
	require.ErrorIs(t, err, txmanager.ErrTxFailed)
	assert.Equal(t, 4, attempts) // первая попытка + 3 повтора
}

func TestDoSerializableReusesOuterTransaction(t *testing.T) {
	db := &fakeBeginner{}
	mgr := txmanager.NewTransactionManager(db)

	err := mgr.DoSerializable(context.Background(), func(outerCtx context.Context) error {
		return mgr.DoSerializable(outerCtx, func(ctx context.Context) error {
			return nil
		})
	})
	require.NoError(t, err)

	// Вложенный вызов не открывает вторую транзакцию
	assert.Equal(t, 1, db.begins)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, txmanager.IsRetryable(&pq.Error{Code: "40001"}))
	assert.True(t, txmanager.IsRetryable(&pq.Error{Code: "40P01"}))
	assert.True(t, txmanager.IsRetryable(fmt.Errorf("wrapped: %w", &pq.Error{Code: "40001"})))
	assert.False(t, txmanager.IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, txmanager.IsRetryable(errors.New("plain error")))
	assert.False(t, txmanager.IsRetryable(nil))
}
