package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDriver supports serializable transactions that always commit cleanly,
// leaving the outcome entirely to the wrapped function.
type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return &stubConn{}, nil
}

type stubConn struct{}

func (*stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not supported")
}

func (*stubConn) Close() error { return nil }

func (*stubConn) Begin() (driver.Tx, error) {
	return stubTx{}, nil
}

func (*stubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return stubTx{}, nil
}

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

var stubDriverSeq atomic.Int64

func newStubDB(t *testing.T) *sql.DB {
	t.Helper()

	name := fmt.Sprintf("txmanager-stub-%d", stubDriverSeq.Add(1))
	sql.Register(name, stubDriver{})

	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

// A serialization failure wrapped the way repositories and usecases wrap
// errors must still be retried, not surfaced after the first attempt.
func TestDoSerializableRetriesWrappedSerializationFailure(t *testing.T) {
	manager := NewTransactionManager(newStubDB(t))

	repoErr := fmt.Errorf("%w: Create - execute insert: %w",
		errors.New("appointment.repository: execute query"), &pq.Error{Code: "40001"})
	usecaseErr := fmt.Errorf("%w: failed to create appointment: %w",
		errors.New("internal error"), repoErr)

	attempts := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return usecaseErr
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoSerializableGivesUpAfterMaxRetries(t *testing.T) {
	manager := NewTransactionManager(newStubDB(t))

	serializationErr := &pq.Error{Code: "40001"}

	attempts := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return serializationErr
	})

	require.Error(t, err)
	assert.Equal(t, maxSerializableRetries, attempts)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "40001", string(pqErr.Code))
}

func TestDoSerializableDoesNotRetryOtherErrors(t *testing.T) {
	manager := NewTransactionManager(newStubDB(t))

	attempts := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return errors.New("validation failed")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
