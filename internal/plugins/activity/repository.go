package activity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
	"github.com/keyxmakerx/campaignlog/internal/apperror"
)

// LogRepository defines the data access contract for campaign_logs.
type LogRepository interface {
	// Log inserts an entry for a campaign. The entry's ID must be set.
	Log(ctx context.Context, campaignID string, entry *activitylog.LogEntry) error

	// ListByCampaign returns up to limit entries for a campaign, most recent
	// first.
	ListByCampaign(ctx context.Context, campaignID string, limit int) ([]activitylog.LogEntry, error)

	// FindByID returns a single entry of a campaign, or a NotFound AppError.
	FindByID(ctx context.Context, campaignID, logID string) (*activitylog.LogEntry, error)
}

// logRepository implements LogRepository with MariaDB queries.
type logRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new repository backed by the given DB pool.
func NewLogRepository(db *sql.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Log(ctx context.Context, campaignID string, entry *activitylog.LogEntry) error {
	query := `INSERT INTO campaign_logs (id, campaign_id, action, performed_by, performer_role, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, campaignID, entry.Action,
		entry.PerformedBy, string(entry.PerformerRole), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting campaign log: %w", err)
	}
	return nil
}

// ListByCampaign orders by created_at then id so entries sharing a
// millisecond still come back in a stable order.
func (r *logRepository) ListByCampaign(ctx context.Context, campaignID string, limit int) ([]activitylog.LogEntry, error) {
	query := `SELECT id, action, performed_by, performer_role, created_at
	          FROM campaign_logs
	          WHERE campaign_id = ?
	          ORDER BY created_at DESC, id DESC
	          LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing campaign logs: %w", err)
	}
	defer rows.Close()

	var entries []activitylog.LogEntry
	for rows.Next() {
		e, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating campaign log rows: %w", err)
	}
	return entries, nil
}

func (r *logRepository) FindByID(ctx context.Context, campaignID, logID string) (*activitylog.LogEntry, error) {
	query := `SELECT id, action, performed_by, performer_role, created_at
	          FROM campaign_logs
	          WHERE campaign_id = ? AND id = ?`

	e, err := scanLog(r.db.QueryRowContext(ctx, query, campaignID, logID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("log entry not found")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanLog reads columns id, action, performed_by, performer_role, created_at.
func scanLog(row rowScanner) (activitylog.LogEntry, error) {
	var e activitylog.LogEntry
	var role string
	if err := row.Scan(&e.ID, &e.Action, &e.PerformedBy, &role, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, err
		}
		return e, fmt.Errorf("scanning campaign log: %w", err)
	}
	e.PerformerRole = activitylog.ParseRole(role)
	return e, nil
}
