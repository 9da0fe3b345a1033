package requestmock

import (
	"context"

	domain "supplytrack-backend/internal/domain/request"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, pr *domain.PurchaseRequest) error
	SaveFn                func(ctx context.Context, pr *domain.PurchaseRequest) error
	DeleteFn              func(ctx context.Context, requestID uint64) error
	GetByIDFn             func(ctx context.Context, requestID uint64) (*domain.PurchaseRequest, error)
	GetByIDForUpdateFn    func(ctx context.Context, requestID uint64) (*domain.PurchaseRequest, error)
	ListFn                func(ctx context.Context) ([]domain.PurchaseRequest, error)
	RequestNumberExistsFn func(ctx context.Context, number string, excludeID uint64) (bool, error)
}

func (m *Repo) Create(ctx context.Context, pr *domain.PurchaseRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, pr)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, pr *domain.PurchaseRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, pr)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, requestID uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, requestID)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, requestID uint64) (*domain.PurchaseRequest, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, requestID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, requestID uint64) (*domain.PurchaseRequest, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, requestID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.PurchaseRequest, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) RequestNumberExists(ctx context.Context, number string, excludeID uint64) (bool, error) {
	if m.RequestNumberExistsFn != nil {
		return m.RequestNumberExistsFn(ctx, number, excludeID)
	}
	return false, nil
}
