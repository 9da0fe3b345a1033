package uow

import (
	"context"

	"supplytrack-backend/internal/domain/item"
	"supplytrack-backend/internal/domain/request"
)

type Repos struct {
	Items    item.Repository
	Requests request.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the request row first, then pass it in
	WithinRequestTx(ctx context.Context, requestID uint64, fn func(r Repos, pr *request.PurchaseRequest) error) error
}
