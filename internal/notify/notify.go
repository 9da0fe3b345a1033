package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TemplateParams mirrors the fields of the external approval-email template.
type TemplateParams struct {
	RequestNumber string `json:"request_number"`
	Purpose       string `json:"purpose"`
	College       string `json:"college"`
	Category      string `json:"category"`
	RequestDate   string `json:"request_date"`
	ApprovalDate  string `json:"approval_date"`
	ToEmail       string `json:"to_email"`
}

// Dispatcher delivers the approval notification. Errors are for logging only;
// callers must never let a failed send undo an approval.
type Dispatcher interface {
	Notify(ctx context.Context, recipient string, p TemplateParams) error
}

// EmailDispatcher posts to an EmailJS-style template endpoint.
type EmailDispatcher struct {
	endpoint   string
	serviceID  string
	templateID string
	userID     string
	client     *http.Client
}

func NewEmailDispatcher(endpoint, serviceID, templateID, userID string) *EmailDispatcher {
	return &EmailDispatcher{
		endpoint:   endpoint,
		serviceID:  serviceID,
		templateID: templateID,
		userID:     userID,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type sendPayload struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams TemplateParams `json:"template_params"`
}

func (d *EmailDispatcher) Notify(ctx context.Context, recipient string, p TemplateParams) error {
	p.ToEmail = recipient
	body, err := json.Marshal(sendPayload{
		ServiceID:      d.serviceID,
		TemplateID:     d.templateID,
		UserID:         d.userID,
		TemplateParams: p,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification service returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}
