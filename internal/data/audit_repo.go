package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	apperrors "github.com/target/penuel-portal/internal/errors"
	"github.com/target/penuel-portal/internal/ports"
)

var _ ports.AuditRecorder = (*AuditRepo)(nil)

// DefaultAuditListLimit and MaxAuditListLimit bound AuditRepo.List.
const (
	DefaultAuditListLimit = 20
	MaxAuditListLimit     = 1000
)

// AuditRepo persists authentication audit events in Postgres.
type AuditRepo struct {
	DB *sql.DB
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{DB: db}
}

// Record appends ev to the auth_audit table.
func (r *AuditRepo) Record(ctx context.Context, ev ports.AuditEvent) error {
	if ev.Outcome == "" {
		return apperrors.ValidationField("outcome", "audit outcome is required")
	}
	const q = `INSERT INTO auth_audit (outcome, subject, role, department, occurred_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))`

	var occurredAt sql.NullTime
	if !ev.OccurredAt.IsZero() {
		occurredAt = sql.NullTime{Time: ev.OccurredAt, Valid: true}
	}
	if _, err := r.DB.ExecContext(ctx, q,
		string(ev.Outcome), ev.Subject, string(ev.Role), string(ev.Department), occurredAt,
	); err != nil {
		return fmt.Errorf("insert audit event: %w", apperrors.MapDBError(err))
	}
	return nil
}

// List returns the most recent events, newest first.
func (r *AuditRepo) List(ctx context.Context, limit int) ([]ports.AuditEvent, error) {
	switch {
	case limit <= 0:
		limit = DefaultAuditListLimit
	case limit > MaxAuditListLimit:
		limit = MaxAuditListLimit
	}

	const q = `SELECT outcome, subject, role, department, occurred_at
		FROM auth_audit ORDER BY occurred_at DESC, id DESC LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", apperrors.MapDBError(err))
	}
	defer func() { _ = rows.Close() }()

	out := make([]ports.AuditEvent, 0, limit)
	for rows.Next() {
		var (
			ev               ports.AuditEvent
			outcome          string
			role, department string
		)
		if scanErr := rows.Scan(&outcome, &ev.Subject, &role, &department, &ev.OccurredAt); scanErr != nil {
			return nil, fmt.Errorf("scan audit event: %w", scanErr)
		}
		ev.Outcome = ports.AuditOutcome(outcome)
		ev.Role = domainauth.Role(role)
		ev.Department = domainauth.Department(department)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("iterate audit events: %w", apperrors.MapDBError(err))
	}
	return out, nil
}
