package mysql

import (
	"context"

	"gorm.io/gorm"

	"supplytrack-backend/internal/domain/request"
	"supplytrack-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Items:    &ItemRepository{db: tx},
			Requests: &RequestRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinRequestTx(ctx context.Context, requestID uint64, fn func(r uow.Repos, pr *request.PurchaseRequest) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Items:    &ItemRepository{db: tx},
			Requests: &RequestRepository{db: tx},
		}
		// lock the request row up-front to prevent races
		pr, err := r.Requests.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		return fn(r, pr)
	})
}
