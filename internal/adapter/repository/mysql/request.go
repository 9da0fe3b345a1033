package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	requestDomain "supplytrack-backend/internal/domain/request"
)

type RequestRepository struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) *RequestRepository { return &RequestRepository{db: db} }

func (r *RequestRepository) Create(ctx context.Context, pr *requestDomain.PurchaseRequest) error {
	err := r.db.WithContext(ctx).Create(pr).Error
	// Unique index backstop for the window between the duplicate check and the insert.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return requestDomain.ErrDuplicateRequestNumber
	}
	return err
}

func (r *RequestRepository) Save(ctx context.Context, pr *requestDomain.PurchaseRequest) error {
	err := r.db.WithContext(ctx).Save(pr).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return requestDomain.ErrDuplicateRequestNumber
	}
	return err
}

func (r *RequestRepository) Delete(ctx context.Context, requestID uint64) error {
	return r.db.WithContext(ctx).Delete(&requestDomain.PurchaseRequest{}, requestID).Error
}

func (r *RequestRepository) GetByID(ctx context.Context, requestID uint64) (*requestDomain.PurchaseRequest, error) {
	var out requestDomain.PurchaseRequest
	res := r.db.WithContext(ctx).First(&out, requestID)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, requestDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *RequestRepository) GetByIDForUpdate(ctx context.Context, requestID uint64) (*requestDomain.PurchaseRequest, error) {
	var out requestDomain.PurchaseRequest
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&out, requestID)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, requestDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *RequestRepository) List(ctx context.Context) ([]requestDomain.PurchaseRequest, error) {
	var out []requestDomain.PurchaseRequest
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *RequestRepository) RequestNumberExists(ctx context.Context, number string, excludeID uint64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&requestDomain.PurchaseRequest{}).
		Where("request_number = ?", number)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	res := q.Count(&n)
	return n > 0, res.Error
}
