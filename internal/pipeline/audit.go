package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the subset of a pgx pool the audit store needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AuditEntry records one submission attempt for a processed message.
type AuditEntry struct {
	UnitID     uuid.UUID
	ObjectType string
	Outcome    string
	RecordID   string
	Detail     string
	CreatedAt  time.Time
}

// AuditStore persists per-payload submission outcomes.
type AuditStore interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// PGAuditStore writes audit rows to Postgres.
type PGAuditStore struct {
	pool Execer
}

// NewPGAuditStore creates the store, or nil when no pool is configured.
func NewPGAuditStore(pool Execer) *PGAuditStore {
	if pool == nil {
		return nil
	}
	return &PGAuditStore{pool: pool}
}

func (s *PGAuditStore) Record(ctx context.Context, entry AuditEntry) error {
	if entry.UnitID == uuid.Nil {
		entry.UnitID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
        INSERT INTO submission_audit (unit_id, object_type, outcome, record_id, detail, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.UnitID, entry.ObjectType, entry.Outcome, entry.RecordID, entry.Detail, entry.CreatedAt,
	)
	return err
}
