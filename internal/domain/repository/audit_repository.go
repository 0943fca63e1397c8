package repository

import (
	"context"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
)

type AuditRepository interface {
	Record(ctx context.Context, e entity.AuditEvent) error
}
