package itemmock

import (
	"context"

	domain "supplytrack-backend/internal/domain/item"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled getters return ErrNotFound.
type Repo struct {
	CreateFn            func(ctx context.Context, it *domain.Item) error
	SaveFn              func(ctx context.Context, it *domain.Item) error
	DeleteFn            func(ctx context.Context, itemID uint64) error
	GetByIDFn           func(ctx context.Context, itemID uint64) (*domain.Item, error)
	GetByBarcodeFn      func(ctx context.Context, barcode string) (*domain.Item, error)
	ListFn              func(ctx context.Context) ([]domain.Item, error)
	BarcodeExistsFn     func(ctx context.Context, barcode string) (bool, error)
	DecrementQuantityFn func(ctx context.Context, itemID uint64, version int64, delta int64) error
	DeleteVersionedFn   func(ctx context.Context, itemID uint64, version int64) error
}

func (m *Repo) Create(ctx context.Context, it *domain.Item) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, it)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, it *domain.Item) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, it)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, itemID uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, itemID)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, itemID uint64) (*domain.Item, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, itemID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByBarcode(ctx context.Context, barcode string) (*domain.Item, error) {
	if m.GetByBarcodeFn != nil {
		return m.GetByBarcodeFn(ctx, barcode)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Item, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) BarcodeExists(ctx context.Context, barcode string) (bool, error) {
	if m.BarcodeExistsFn != nil {
		return m.BarcodeExistsFn(ctx, barcode)
	}
	return false, nil
}

func (m *Repo) DecrementQuantity(ctx context.Context, itemID uint64, version int64, delta int64) error {
	if m.DecrementQuantityFn != nil {
		return m.DecrementQuantityFn(ctx, itemID, version, delta)
	}
	return nil
}

func (m *Repo) DeleteVersioned(ctx context.Context, itemID uint64, version int64) error {
	if m.DeleteVersionedFn != nil {
		return m.DeleteVersionedFn(ctx, itemID, version)
	}
	return nil
}
