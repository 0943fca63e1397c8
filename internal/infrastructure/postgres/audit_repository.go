package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
)

// Execer is satisfied by *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const insertAuditLog = `INSERT INTO audit_logs (user_id, email, action, ip, user_agent, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

type AuditRepository struct {
	db Execer
}

func NewAuditRepository(db Execer) *AuditRepository {
	return &AuditRepository{db: db}
}

var _ repo.AuditRepository = (*AuditRepository)(nil)

func (r *AuditRepository) Record(ctx context.Context, e entity.AuditEvent) error {
	md := []byte("{}")
	if len(e.Metadata) > 0 {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("audit metadata: %w", err)
		}
		md = b
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, insertAuditLog,
		nullable(e.UserID), nullable(e.Email), e.Action, nullable(e.IP), nullable(e.UserAgent), md, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: %w", repo.ErrUnavailable, err)
	}
	return nil
}

// nullable maps "" to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
