package schedule

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubtracker/scheduling-service/internal/domain"
)

// captureDriver records every query with its arguments and answers inserts
// with a canned RETURNING row.
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
	name := fmt.Sprintf("schedule-capture-%d", captureDriverSeq.Add(1))
	sql.Register(name, &captureDriver{conn: conn})

	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, conn
}

// The reason column is NOT NULL DEFAULT '': a blocked date created without a
// reason must reach the driver as an empty string, never as NULL.
func TestCreateBlockedDateStoresOmittedReasonAsEmptyString(t *testing.T) {
	db, conn := newCaptureDB(t)
	repo := NewRepository(db)

	created, err := repo.CreateBlockedDate(context.Background(), &domain.BlockedDate{
		Date: time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(1), created.ID)

	require.Len(t, conn.queries, 1)
	args := conn.queries[0].args
	require.Len(t, args, 3)

	// Insert column order: blocked_date, reason, is_annual_recurring.
	assert.Equal(t, "", args[1].Value)
}

func TestCreateBlockedDateForwardsProvidedReason(t *testing.T) {
	db, conn := newCaptureDB(t)
	repo := NewRepository(db)

	reason := "annual maintenance"
	_, err := repo.CreateBlockedDate(context.Background(), &domain.BlockedDate{
		Date:   time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC),
		Reason: &reason,
	})
	require.NoError(t, err)

	require.Len(t, conn.queries, 1)
	args := conn.queries[0].args
	require.Len(t, args, 3)
	assert.Equal(t, "annual maintenance", args[1].Value)
}
