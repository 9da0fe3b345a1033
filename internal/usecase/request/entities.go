package request

import (
	"time"

	domain "supplytrack-backend/internal/domain/request"
)

type SubmitRequestInput struct {
	RequestNumber  string    `json:"request_number"`
	Purpose        string    `json:"purpose"`
	College        string    `json:"college"`
	Category       string    `json:"category"`
	Quantity       int64     `json:"quantity"`
	RequestDate    time.Time `json:"request_date"`
	RequestorEmail string    `json:"requestor_email"`
	Image          []byte    `json:"-"`
}

type RequestDTO struct {
	RequestID      uint64     `json:"request_id"`
	RequestNumber  string     `json:"request_number"`
	Purpose        string     `json:"purpose"`
	College        string     `json:"college"`
	Category       string     `json:"category"`
	Quantity       int64      `json:"quantity"`
	RequestDate    time.Time  `json:"request_date"`
	ImageURL       string     `json:"image_url,omitempty"`
	RequestorEmail string     `json:"requestor_email"`
	Approved       bool       `json:"approved"`
	ApprovalDate   *time.Time `json:"approval_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toDTO(pr *domain.PurchaseRequest) *RequestDTO {
	return &RequestDTO{
		RequestID:      pr.ID,
		RequestNumber:  pr.RequestNumber,
		Purpose:        pr.Purpose,
		College:        string(pr.College),
		Category:       string(pr.Category),
		Quantity:       pr.Quantity,
		RequestDate:    pr.RequestDate,
		ImageURL:       pr.ImageURL,
		RequestorEmail: pr.RequestorEmail,
		Approved:       pr.Approved,
		ApprovalDate:   pr.ApprovalDate,
		CreatedAt:      pr.CreatedAt,
	}
}
