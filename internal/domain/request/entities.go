package request

import (
	"errors"
	"time"

	"gorm.io/plugin/soft_delete"

	"supplytrack-backend/internal/domain/item"
)

var (
	ErrNotFound               = errors.New("purchase request not found")
	ErrDuplicateRequestNumber = errors.New("request number already in use")
	ErrAlreadyApproved        = errors.New("purchase request already approved")
)

// Table: purchase_requests
type PurchaseRequest struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Operator-supplied public identifier, unique among live requests
	RequestNumber  string        `gorm:"column:request_number;size:32;not null;uniqueIndex:ux_requests_number_active"`
	Purpose        string        `gorm:"column:purpose;type:text;not null"`
	College        item.College  `gorm:"column:college;type:enum('engineering','science','business','education','nursing');not null"`
	Category       item.Category `gorm:"column:category;type:enum('equipment','supplies','furniture','electronics','consumable');not null"`
	Quantity       int64         `gorm:"column:quantity;not null"`
	RequestDate    time.Time     `gorm:"column:request_date;type:date;not null"`
	ImageURL       string        `gorm:"column:image_url;type:text"`
	RequestorEmail string        `gorm:"column:requestor_email;size:255;not null"`
	Approved       bool          `gorm:"column:approved;not null;default:false"`
	// Set iff Approved; the pair moves together.
	ApprovalDate *time.Time `gorm:"column:approval_date;type:date"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	// Unix-seconds tombstone, 0 while live. Part of the request-number unique
	// index so a deleted request frees its number for reuse.
	DeletedAt soft_delete.DeletedAt `gorm:"column:deleted_at;uniqueIndex:ux_requests_number_active"`
}

func (PurchaseRequest) TableName() string { return "purchase_requests" }
