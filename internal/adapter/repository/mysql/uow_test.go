package mysql

import (
	"context"
	"errors"
	"testing"

	itemDomain "supplytrack-backend/internal/domain/item"
	requestDomain "supplytrack-backend/internal/domain/request"
	"supplytrack-backend/internal/domain/uow"
	"supplytrack-backend/pkg/id"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	itemRepo := NewItemRepository(db)
	requestRepo := NewRequestRepository(db)

	barcode := id.NewBarcode()
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Items.Create(ctx, makeItem(barcode, 3)); err != nil {
			return err
		}
		return r.Requests.Create(ctx, makeRequest("REQ-TX"))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Verify post-commit visibility
	if _, err := itemRepo.GetByBarcode(ctx, barcode); err != nil {
		t.Fatalf("item not visible after commit: %v", err)
	}
	ok, err := requestRepo.RequestNumberExists(ctx, "REQ-TX", 0)
	if err != nil || !ok {
		t.Fatalf("request not visible after commit: %v, %v", ok, err)
	}
}

func TestGormUoW_WithinTx_RollbackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	itemRepo := NewItemRepository(db)

	barcode := id.NewBarcode()
	boom := errors.New("boom")
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Items.Create(ctx, makeItem(barcode, 3)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	// Nothing from the failed tx may be visible
	if _, err := itemRepo.GetByBarcode(ctx, barcode); !errors.Is(err, itemDomain.ErrNotFound) {
		t.Fatalf("item leaked out of rolled-back tx: %v", err)
	}
}

func TestGormUoW_WithinRequestTx_NotFound(t *testing.T) {
	// sqlite has no SELECT ... FOR UPDATE, so only the miss path runs here;
	// the locked happy path is covered through the usecase with uowmock.
	db := openTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinRequestTx(context.Background(), 987654,
		func(r uow.Repos, pr *requestDomain.PurchaseRequest) error { return nil })
	if err == nil {
		t.Fatal("want error for absent request")
	}
}
