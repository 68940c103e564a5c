package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/port"
)

type loadRepo struct {
	db *sqlx.DB
}

// NewLoadRepo creates a new PostgreSQL-backed LoadRepository.
func NewLoadRepo(db *sqlx.DB) port.LoadRepository {
	return &loadRepo{db: db}
}

func (r *loadRepo) Create(ctx context.Context, load *domain.Load) error {
	now := time.Now().UTC()
	load.CreatedAt = now
	load.UpdatedAt = now

	query := `INSERT INTO loads (
		id, user_id, file_id, load_number, pickup_date, delivery_date,
		broker_company, broker_contact, contact_phone, phone_ext,
		contact_email, invoice_email,
		origin_city, origin_state, dest_city, dest_state,
		equipment, miles, posted_rate, booked_rate, rate_per_mile,
		shipper, receiver, broker_mc, commodity, weight, notes,
		raw_line, status, created_at, updated_at
	) VALUES (
		:id, :user_id, :file_id, :load_number, :pickup_date, :delivery_date,
		:broker_company, :broker_contact, :contact_phone, :phone_ext,
		:contact_email, :invoice_email,
		:origin_city, :origin_state, :dest_city, :dest_state,
		:equipment, :miles, :posted_rate, :booked_rate, :rate_per_mile,
		:shipper, :receiver, :broker_mc, :commodity, :weight, :notes,
		:raw_line, :status, :created_at, :updated_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, load); err != nil {
		return fmt.Errorf("loadRepo.Create: %w", err)
	}
	return nil
}

func (r *loadRepo) GetByID(ctx context.Context, userID string, loadID uuid.UUID) (*domain.Load, error) {
	var load domain.Load
	err := r.db.GetContext(ctx, &load,
		"SELECT * FROM loads WHERE id = $1 AND user_id = $2", loadID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLoadNotFound
		}
		return nil, fmt.Errorf("loadRepo.GetByID: %w", err)
	}
	return &load, nil
}

func (r *loadRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Load, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM loads WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("loadRepo.ListByUser count: %w", err)
	}

	var loads []domain.Load
	err = r.db.SelectContext(ctx, &loads,
		`SELECT * FROM loads WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("loadRepo.ListByUser: %w", err)
	}
	return loads, total, nil
}

func (r *loadRepo) UpdateStatus(ctx context.Context, load *domain.Load) error {
	load.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE loads SET status = $1, updated_at = $2
		 WHERE id = $3 AND user_id = $4`,
		load.Status, load.UpdatedAt, load.ID, load.UserID)
	if err != nil {
		return fmt.Errorf("loadRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrLoadNotFound
	}
	return nil
}

func (r *loadRepo) UpdateRate(ctx context.Context, load *domain.Load) error {
	load.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE loads SET
			booked_rate = $1, posted_rate = $2, rate_per_mile = $3, updated_at = $4
		 WHERE id = $5 AND user_id = $6`,
		load.BookedRate, load.PostedRate, load.RatePerMile, load.UpdatedAt,
		load.ID, load.UserID)
	if err != nil {
		return fmt.Errorf("loadRepo.UpdateRate: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrLoadNotFound
	}
	return nil
}

func (r *loadRepo) Delete(ctx context.Context, userID string, loadID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM loads WHERE id = $1 AND user_id = $2", loadID, userID)
	if err != nil {
		return fmt.Errorf("loadRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrLoadNotFound
	}
	return nil
}
