package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
)

type fakeExecer struct {
	sql  string
	args []any
	err  error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql, f.args = sql, args
	return pgconn.NewCommandTag("INSERT 0 1"), f.err
}

func TestAuditRepository_Record(t *testing.T) {
	db := &fakeExecer{}
	r := NewAuditRepository(db)

	err := r.Record(context.Background(), entity.AuditEvent{
		UserID:   "u1",
		Action:   "login_failed",
		IP:       "10.0.0.1",
		Metadata: map[string]any{"reason": "bad_credentials"},
	})
	require.NoError(t, err)

	assert.Contains(t, db.sql, "INSERT INTO audit_logs")
	require.Len(t, db.args, 7)
	assert.Equal(t, "u1", db.args[0])
	assert.Nil(t, db.args[1])
	assert.Equal(t, "login_failed", db.args[2])
	assert.Equal(t, "10.0.0.1", db.args[3])
	assert.Nil(t, db.args[4])

	var md map[string]any
	require.NoError(t, json.Unmarshal(db.args[5].([]byte), &md))
	assert.Equal(t, "bad_credentials", md["reason"])
	assert.NotZero(t, db.args[6])
}

func TestAuditRepository_EmptyMetadataIsObject(t *testing.T) {
	db := &fakeExecer{}
	require.NoError(t, NewAuditRepository(db).Record(context.Background(), entity.AuditEvent{Action: "logout"}))
	assert.Equal(t, []byte("{}"), db.args[5])
}

func TestAuditRepository_WrapsFailures(t *testing.T) {
	db := &fakeExecer{err: errors.New("conn refused")}
	err := NewAuditRepository(db).Record(context.Background(), entity.AuditEvent{Action: "x"})
	assert.ErrorIs(t, err, repo.ErrUnavailable)
}
