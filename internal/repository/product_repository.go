package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/tourbook/internal/model"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProduct loads a product with its tiers and options split per category.
func (r *ProductRepository) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var row struct {
		ID          uuid.UUID
		Name        string
		Description string
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, description
		FROM products
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	product := model.Product{ID: row.ID, Name: row.Name, Description: row.Description}

	if err := r.db.WithContext(ctx).Raw(`
		SELECT people_count, price_per_person, deposit_per_person, local_payment_per_person
		FROM pricing_tiers
		WHERE product_id = ?
	`, id).Scan(&product.Tiers).Error; err != nil {
		return nil, err
	}

	var options []model.Option
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, category, name, description, price_modifier, is_default, image_url
		FROM product_options
		WHERE product_id = ?
		ORDER BY category, sort_order, name
	`, id).Scan(&options).Error; err != nil {
		return nil, err
	}

	product.Accommodations = []model.Option{}
	product.Vehicles = []model.Option{}
	for _, option := range options {
		switch option.Category {
		case model.OptionCategoryAccommodation:
			product.Accommodations = append(product.Accommodations, option)
		case model.OptionCategoryVehicle:
			product.Vehicles = append(product.Vehicles, option)
		}
	}
	return &product, nil
}

// SetDefaultOption flags optionID as default and clears every sibling of the
// same product and category in one statement.
func (r *ProductRepository) SetDefaultOption(ctx context.Context, productID uuid.UUID, category model.OptionCategory, optionID string) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE product_options
		SET is_default = (id = ?)
		WHERE product_id = ? AND category = ?
	`, optionID, productID, string(category)).Error
}
