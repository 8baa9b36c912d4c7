package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/tourbook/internal/model"
)

const reservationColumns = `
	id,
	type,
	status,
	product_name,
	user_id,
	customer_name,
	email,
	phone,
	date,
	headcount,
	total_people,
	total_amount,
	deposit,
	deposit_status,
	balance,
	balance_status,
	assigned_guide,
	daily_accommodations,
	history,
	are_assignments_visible_to_user,
	created_at,
	updated_at`

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, rec *ReservationRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// Get returns gorm.ErrRecordNotFound when no row matches.
func (r *ReservationRepository) Get(ctx context.Context, id uuid.UUID) (*ReservationRecord, error) {
	var rec ReservationRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT`+reservationColumns+`
		FROM reservations
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &rec, nil
}

// List returns rows newest first. A nil ownerID lists every reservation; a
// zero page limit returns everything.
func (r *ReservationRepository) List(ctx context.Context, ownerID *uuid.UUID, page model.Page) ([]ReservationRecord, error) {
	query := r.db.WithContext(ctx).Model(&ReservationRecord{})
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	query = query.Order("created_at DESC")
	if page.Limit > 0 {
		query = query.Limit(page.Limit).Offset(page.Offset)
	}

	var rows []ReservationRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update writes columns to the row. A non-empty fromStatus additionally
// requires the row to still hold that status; the result reports whether a
// row matched.
func (r *ReservationRepository) Update(ctx context.Context, id uuid.UUID, fromStatus model.ReservationStatus, columns map[string]interface{}) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&ReservationRecord{}).
		Where("id = ?", id)
	if fromStatus != "" {
		query = query.Where("status = ?", string(fromStatus))
	}

	result := query.Updates(columns)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM reservations WHERE id = ?
	`, id).Error
}
