package item

import "context"

type Repository interface {
	Create(ctx context.Context, it *Item) error
	Save(ctx context.Context, it *Item) error
	Delete(ctx context.Context, itemID uint64) error
	GetByID(ctx context.Context, itemID uint64) (*Item, error)
	GetByBarcode(ctx context.Context, barcode string) (*Item, error)
	List(ctx context.Context) ([]Item, error)
	// BarcodeExists reports whether any live item carries the barcode.
	BarcodeExists(ctx context.Context, barcode string) (bool, error)
	// DecrementQuantity applies quantity -= delta as a conditional write guarded
	// by the item's version column. Returns ErrConflict when the guard misses.
	DecrementQuantity(ctx context.Context, itemID uint64, version int64, delta int64) error
	// DeleteVersioned removes the item only if the version still matches.
	DeleteVersioned(ctx context.Context, itemID uint64, version int64) error
}
