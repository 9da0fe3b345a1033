package request

import "context"

type Repository interface {
	Create(ctx context.Context, pr *PurchaseRequest) error
	Save(ctx context.Context, pr *PurchaseRequest) error
	Delete(ctx context.Context, requestID uint64) error
	GetByID(ctx context.Context, requestID uint64) (*PurchaseRequest, error)
	// GetByIDForUpdate locks the row for the duration of the surrounding tx.
	GetByIDForUpdate(ctx context.Context, requestID uint64) (*PurchaseRequest, error)
	List(ctx context.Context) ([]PurchaseRequest, error)
	// RequestNumberExists reports whether any live request other than excludeID
	// carries the number. excludeID 0 excludes nothing.
	RequestNumberExists(ctx context.Context, number string, excludeID uint64) (bool, error)
}
