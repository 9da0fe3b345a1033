package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	domain "supplytrack-backend/internal/domain/item"
	"supplytrack-backend/internal/testutil/itemmock"
	itemUC "supplytrack-backend/internal/usecase/item"
	"supplytrack-backend/internal/usecase/scan"
)

func scanHandlerOver(repo *itemmock.Repo) *ScanHandler {
	return NewScanHandler(scan.NewResolver(itemUC.NewUsecase(repo, nil)), nil)
}

func stockedRepo(quantity int64) *itemmock.Repo {
	return &itemmock.Repo{
		GetByBarcodeFn: func(ctx context.Context, barcode string) (*domain.Item, error) {
			if barcode != "ITEM-abc12345" {
				return nil, domain.ErrNotFound
			}
			return &domain.Item{ID: 1, Barcode: barcode, DisplayName: "gloves", Quantity: quantity}, nil
		},
	}
}

func scanBody(barcode string, quantity int64) string {
	return fmt.Sprintf(`{"barcode": %q, "quantity": %d}`, barcode, quantity)
}

func TestSubmitScan_Decrements(t *testing.T) {
	h := scanHandlerOver(stockedRepo(5))

	c, rec := jsonCtx(newEcho(), http.MethodPost, "/scan", scanBody("ITEM-abc12345", 2))
	if err := h.SubmitScan(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp scanResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome != "updated" || resp.NewQuantity != 3 {
		t.Fatalf("resp: %+v", resp)
	}
	if resp.Message != "Updated item 'gloves'. New quantity: 3." {
		t.Fatalf("message: %q", resp.Message)
	}
}

func TestSubmitScan_RemovesAtZero(t *testing.T) {
	h := scanHandlerOver(stockedRepo(2))

	c, rec := jsonCtx(newEcho(), http.MethodPost, "/scan", scanBody("ITEM-abc12345", 2))
	if err := h.SubmitScan(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp scanResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome != "removed" || resp.NewQuantity != 0 {
		t.Fatalf("resp: %+v", resp)
	}
	if resp.Message != "Item 'gloves' deleted as quantity is now zero." {
		t.Fatalf("message: %q", resp.Message)
	}
}

func TestSubmitScan_UnknownBarcode(t *testing.T) {
	h := scanHandlerOver(&itemmock.Repo{})

	c, rec := jsonCtx(newEcho(), http.MethodPost, "/scan", scanBody("ITEM-ffffffff", 1))
	if err := h.SubmitScan(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "Item not found. Please check the barcode and try again." {
		t.Fatalf("error message: %q", resp.Error)
	}
}

func TestSubmitScan_RejectsMalformedBarcode(t *testing.T) {
	h := scanHandlerOver(&itemmock.Repo{})

	for _, barcode := range []string{"", "abc12345", "ITEM-XYZ", "ITEM-abc1234"} {
		c, rec := jsonCtx(newEcho(), http.MethodPost, "/scan", scanBody(barcode, 1))
		if err := h.SubmitScan(c); err != nil {
			t.Fatalf("handler err: %v", err)
		}
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("barcode %q: status = %d", barcode, rec.Code)
		}
	}
}

func TestSubmitScan_RejectsNonPositiveQuantity(t *testing.T) {
	h := scanHandlerOver(stockedRepo(5))

	for _, quantity := range []int64{0, -1} {
		c, rec := jsonCtx(newEcho(), http.MethodPost, "/scan", scanBody("ITEM-abc12345", quantity))
		if err := h.SubmitScan(c); err != nil {
			t.Fatalf("handler err: %v", err)
		}
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("quantity %d: status = %d", quantity, rec.Code)
		}
	}
}

func TestSubmitScan_ConflictAfterRetries(t *testing.T) {
	repo := stockedRepo(5)
	repo.DecrementQuantityFn = func(ctx context.Context, itemID uint64, version int64, delta int64) error {
		return domain.ErrConflict
	}
	h := scanHandlerOver(repo)

	c, rec := jsonCtx(newEcho(), http.MethodPost, "/scan", scanBody("ITEM-abc12345", 1))
	if err := h.SubmitScan(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestSearchScan(t *testing.T) {
	h := scanHandlerOver(stockedRepo(5))

	c, rec := jsonCtx(newEcho(), http.MethodGet, "/scan/ITEM-abc12345", "")
	c.SetParamNames("barcode")
	c.SetParamValues("ITEM-abc12345")
	if err := h.SearchScan(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var dto itemUC.ItemDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// a search never decrements
	if dto.Quantity != 5 {
		t.Fatalf("dto: %+v", dto)
	}
}
