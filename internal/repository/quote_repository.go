package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/tourbook/internal/model"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) GetQuote(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	var quote model.Quote
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			status,
			destination,
			travel_dates,
			travelers,
			customer_name,
			email,
			phone,
			confirmed_price,
			deposit,
			admin_note,
			estimate_url,
			created_at,
			updated_at
		FROM quotes
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&quote).Error
	if err != nil {
		return nil, err
	}
	if quote.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &quote, nil
}

func (r *QuoteRepository) UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status model.QuoteStatus) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE quotes
		SET status = ?, updated_at = ?
		WHERE id = ?
	`, string(status), time.Now().UTC(), id).Error
}
