package item

import (
	"time"

	domain "supplytrack-backend/internal/domain/item"
)

type CreateItemInput struct {
	DisplayName   string    `json:"display_name"`
	College       string    `json:"college"`
	Category      string    `json:"category"`
	Quantity      int64     `json:"quantity"`
	Supplier      string    `json:"supplier"`
	RequestedDate time.Time `json:"requested_date"`
	// Raw image bytes; uploaded to the blob store before the record is persisted.
	Image []byte `json:"-"`
}

type EditItemInput struct {
	DisplayName   string    `json:"display_name"`
	College       string    `json:"college"`
	Category      string    `json:"category"`
	Quantity      int64     `json:"quantity"`
	Supplier      string    `json:"supplier"`
	RequestedDate time.Time `json:"requested_date"`
	Image         []byte    `json:"-"`
}

type ItemDTO struct {
	ItemID        uint64    `json:"item_id"`
	Barcode       string    `json:"barcode"`
	DisplayName   string    `json:"display_name"`
	College       string    `json:"college"`
	Category      string    `json:"category"`
	Quantity      int64     `json:"quantity"`
	Supplier      string    `json:"supplier"`
	RequestedDate time.Time `json:"requested_date"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type AdjustmentOutcome string

const (
	OutcomeUpdated AdjustmentOutcome = "updated"
	// OutcomeRemoved: the decrement reached zero, the item is gone.
	OutcomeRemoved AdjustmentOutcome = "removed"
)

type AdjustmentResult struct {
	Outcome     AdjustmentOutcome `json:"outcome"`
	Barcode     string            `json:"barcode"`
	DisplayName string            `json:"display_name"`
	NewQuantity int64             `json:"new_quantity"`
}

func toDTO(it *domain.Item) *ItemDTO {
	return &ItemDTO{
		ItemID:        it.ID,
		Barcode:       it.Barcode,
		DisplayName:   it.DisplayName,
		College:       string(it.College),
		Category:      string(it.Category),
		Quantity:      it.Quantity,
		Supplier:      it.Supplier,
		RequestedDate: it.RequestedDate,
		ImageURL:      it.ImageURL,
		CreatedAt:     it.CreatedAt,
	}
}
