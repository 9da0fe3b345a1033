package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	itemDomain "supplytrack-backend/internal/domain/item"
)

type ItemRepository struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) *ItemRepository { return &ItemRepository{db: db} }

func (r *ItemRepository) Create(ctx context.Context, it *itemDomain.Item) error {
	err := r.db.WithContext(ctx).Create(it).Error
	// Unique index backstop for the window between BarcodeExists and the insert.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return itemDomain.ErrBarcodeTaken
	}
	return err
}

func (r *ItemRepository) Save(ctx context.Context, it *itemDomain.Item) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *ItemRepository) Delete(ctx context.Context, itemID uint64) error {
	// soft delete; zero rows affected is fine (idempotent)
	return r.db.WithContext(ctx).Delete(&itemDomain.Item{}, itemID).Error
}

func (r *ItemRepository) GetByID(ctx context.Context, itemID uint64) (*itemDomain.Item, error) {
	var out itemDomain.Item
	res := r.db.WithContext(ctx).First(&out, itemID)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, itemDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ItemRepository) GetByBarcode(ctx context.Context, barcode string) (*itemDomain.Item, error) {
	var out itemDomain.Item
	res := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, itemDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ItemRepository) List(ctx context.Context) ([]itemDomain.Item, error) {
	var out []itemDomain.Item
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *ItemRepository) BarcodeExists(ctx context.Context, barcode string) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&itemDomain.Item{}).
		Where("barcode = ?", barcode).
		Count(&n)
	return n > 0, res.Error
}

// DecrementQuantity is the conditional write behind AdjustStock. The version
// guard makes two concurrent decrements against the same read serialize: the
// second one misses and gets ErrConflict instead of overwriting.
func (r *ItemRepository) DecrementQuantity(ctx context.Context, itemID uint64, version int64, delta int64) error {
	res := r.db.WithContext(ctx).Model(&itemDomain.Item{}).
		Where("id = ? AND version = ? AND quantity >= ?", itemID, version, delta).
		Updates(map[string]any{
			"quantity": gorm.Expr("quantity - ?", delta),
			"version":  gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return itemDomain.ErrConflict
	}
	return nil
}

func (r *ItemRepository) DeleteVersioned(ctx context.Context, itemID uint64, version int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", itemID, version).
		Delete(&itemDomain.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return itemDomain.ErrConflict
	}
	return nil
}
