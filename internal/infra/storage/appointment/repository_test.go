package appointment

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubtracker/scheduling-service/internal/domain"
)

// captureDriver is a minimal database/sql driver that records every query
// with its arguments and answers inserts with a canned RETURNING row.
type captureDriver struct {
	conn *captureConn
}

func (d *captureDriver) Open(string) (driver.Conn, error) {
	return d.conn, nil
}

type capturedQuery struct {
	query string
	args  []driver.NamedValue
}

type captureConn struct {
	queries []capturedQuery
}

func (c *captureConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not supported")
}

func (c *captureConn) Close() error { return nil }

func (c *captureConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions are not supported")
}

func (c *captureConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.queries = append(c.queries, capturedQuery{query: query, args: args})
	return &returningRow{}, nil
}

// returningRow serves a single row shaped like RETURNING id, created_at, updated_at.
type returningRow struct {
	served bool
}

func (r *returningRow) Columns() []string {
	return []string{"id", "created_at", "updated_at"}
}

func (r *returningRow) Close() error { return nil }

func (r *returningRow) Next(dest []driver.Value) error {
	if r.served {
		return io.EOF
	}
	r.served = true
	now := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)
	dest[0] = int64(1)
	dest[1] = now
	dest[2] = now
	return nil
}

var captureDriverSeq atomic.Int64

func newCaptureDB(t *testing.T) (*sql.DB, *captureConn) {
	t.Helper()

	conn := &captureConn{}
	name := fmt.Sprintf("appointment-capture-%d", captureDriverSeq.Add(1))
	sql.Register(name, &captureDriver{conn: conn})

	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, conn
}

// The purpose and notes columns are NOT NULL DEFAULT '': an appointment
// created without them must reach the driver as empty strings, never as NULL.
func TestCreateStoresOmittedTextFieldsAsEmptyStrings(t *testing.T) {
	db, conn := newCaptureDB(t)
	repo := NewRepository(db)

	created, err := repo.Create(context.Background(), &domain.Appointment{
		EquipmentID: 1,
		UserID:      7,
		StartTime:   time.Date(2026, time.March, 4, 13, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, time.March, 4, 14, 0, 0, 0, time.UTC),
		Status:      domain.StatusApproved,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(1), created.ID)

	require.Len(t, conn.queries, 1)
	args := conn.queries[0].args
	require.Len(t, args, 7)

	// Insert column order: equipment_id, user_id, start_time, end_time, status, purpose, notes.
	assert.Equal(t, "", args[5].Value)
	assert.Equal(t, "", args[6].Value)
}

func TestCreateForwardsProvidedTextFields(t *testing.T) {
	db, conn := newCaptureDB(t)
	repo := NewRepository(db)

	purpose := "PCR run"
	notes := "needs the cold block"
	_, err := repo.Create(context.Background(), &domain.Appointment{
		EquipmentID: 1,
		UserID:      7,
		StartTime:   time.Date(2026, time.March, 4, 13, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, time.March, 4, 14, 0, 0, 0, time.UTC),
		Status:      domain.StatusApproved,
		Purpose:     &purpose,
		Notes:       &notes,
	})
	require.NoError(t, err)

	require.Len(t, conn.queries, 1)
	args := conn.queries[0].args
	require.Len(t, args, 7)
	assert.Equal(t, "PCR run", args[5].Value)
	assert.Equal(t, "needs the cold block", args[6].Value)
}

// failingExecutor returns the configured error from every statement.
type failingExecutor struct {
	err error
}

func (f *failingExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *failingExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, f.err
}

func (f *failingExecutor) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, f.err
}

// Driver errors must stay reachable through errors.As after wrapping, so a
// serialization failure inside a transaction can still trigger a retry.
func TestRepositoryErrorsKeepDriverErrorInChain(t *testing.T) {
	serializationErr := &pq.Error{Code: "40001"}
	repo := NewRepository(&failingExecutor{err: serializationErr})

	err := repo.UpdateStatus(context.Background(), 1, domain.StatusApproved)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "40001", string(pqErr.Code))
}
