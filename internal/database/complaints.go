package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/civicsetu/resolver/internal/domain"
)

// ComplaintsRepository handles database operations for complaints.
// Queries are written with ? placeholders and rebound per driver so the
// repository runs against both Postgres and the SQLite test harness.
type ComplaintsRepository struct {
	db *sqlx.DB
}

// NewComplaintsRepository creates a new complaints repository.
func NewComplaintsRepository(db *sqlx.DB) *ComplaintsRepository {
	return &ComplaintsRepository{db: db}
}

// Insert persists a new complaint. A duplicate source id is not an error:
// the insert becomes a no-op and Insert returns false, letting the caller
// surface a duplicate outcome. Transport and database faults return a
// StorageError.
func (r *ComplaintsRepository) Insert(ctx context.Context, c *domain.Complaint) (bool, error) {
	query := r.db.Rebind(`
		INSERT INTO complaints (
			id, title, description, department, department_full_name,
			urgency, confidence, status, location, latitude, longitude,
			geocoded, source_type, source_handle, source_id, source_link,
			citizen_email, citizen_phone, authority_notified, citizen_notified,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`)

	result, err := r.db.ExecContext(ctx, query,
		c.ID, c.Title, c.Description, c.Department, c.DepartmentFullName,
		c.Urgency, c.Confidence, c.Status, c.Location, c.Latitude, c.Longitude,
		c.Geocoded, c.SourceType, c.SourceHandle, c.SourceID, c.SourceLink,
		c.CitizenEmail, c.CitizenPhone, c.AuthorityNotified, c.CitizenNotified,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return false, &domain.StorageError{Op: "insert", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, &domain.StorageError{Op: "insert", Err: err}
	}

	return affected > 0, nil
}

// ExistsBySourceID reports whether a complaint already exists for the given
// external post id.
func (r *ComplaintsRepository) ExistsBySourceID(ctx context.Context, sourceID string) (bool, error) {
	if sourceID == "" {
		return false, nil
	}

	var exists int
	query := r.db.Rebind(`SELECT 1 FROM complaints WHERE source_id = ? LIMIT 1`)
	err := r.db.QueryRowContext(ctx, query, sourceID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &domain.StorageError{Op: "exists", Err: err}
	}

	return true, nil
}

// UpdateNotificationFlags records the notification fan-out result on a
// persisted complaint.
func (r *ComplaintsRepository) UpdateNotificationFlags(ctx context.Context, id string, authorityNotified, citizenNotified bool) error {
	query := r.db.Rebind(`
		UPDATE complaints
		SET authority_notified = ?, citizen_notified = ?, updated_at = ?
		WHERE id = ?
	`)

	result, err := r.db.ExecContext(ctx, query, authorityNotified, citizenNotified, time.Now().UTC(), id)
	if err != nil {
		return &domain.StorageError{Op: "update", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "update", Err: err}
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// GetByID fetches a single complaint.
func (r *ComplaintsRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	var c domain.Complaint
	query := r.db.Rebind(`SELECT * FROM complaints WHERE id = ?`)
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Err: err}
	}
	return &c, nil
}

// ListRecent returns complaints newest-first, bounded by limit.
func (r *ComplaintsRepository) ListRecent(ctx context.Context, limit int) ([]domain.Complaint, error) {
	complaints := []domain.Complaint{}
	query := r.db.Rebind(`SELECT * FROM complaints ORDER BY created_at DESC LIMIT ?`)
	if err := r.db.SelectContext(ctx, &complaints, query, limit); err != nil {
		return nil, &domain.StorageError{Op: "list", Err: err}
	}
	return complaints, nil
}
