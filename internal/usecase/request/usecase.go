package request

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	itemDomain "supplytrack-backend/internal/domain/item"
	domain "supplytrack-backend/internal/domain/request"
	"supplytrack-backend/internal/domain/uow"
	"supplytrack-backend/internal/infrastructure/blob"
	"supplytrack-backend/internal/metrics"
	"supplytrack-backend/internal/notify"
)

var ErrInvalidInput = errors.New("invalid input")

const notifyTimeout = 15 * time.Second

type Usecase struct {
	repo       domain.Repository
	uow        uow.UnitOfWork
	dispatcher notify.Dispatcher
	blobs      blob.Store
}

// NewUsecase: the dispatcher may be nil in read-only deployments; Approve then
// skips the notification but still commits.
func NewUsecase(r domain.Repository, tx uow.UnitOfWork, d notify.Dispatcher, blobs blob.Store) *Usecase {
	return &Usecase{repo: r, uow: tx, dispatcher: d, blobs: blobs}
}

func (u *Usecase) Submit(ctx context.Context, in SubmitRequestInput) (*RequestDTO, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	taken, err := u.repo.RequestNumberExists(ctx, in.RequestNumber, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateRequestNumber
	}

	imageURL, err := u.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	pr := &domain.PurchaseRequest{
		RequestNumber:  in.RequestNumber,
		Purpose:        in.Purpose,
		College:        itemDomain.College(in.College),
		Category:       itemDomain.Category(in.Category),
		Quantity:       in.Quantity,
		RequestDate:    in.RequestDate.UTC(),
		ImageURL:       imageURL,
		RequestorEmail: in.RequestorEmail,
		Approved:       false,
	}
	if err := u.repo.Create(ctx, pr); err != nil {
		return nil, err
	}
	return toDTO(pr), nil
}

// Update replaces all editable fields in place. Approved requests are
// terminal and reject edits.
func (u *Usecase) Update(ctx context.Context, requestID uint64, in SubmitRequestInput) (*RequestDTO, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	pr, err := u.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if pr.Approved {
		return nil, domain.ErrAlreadyApproved
	}

	// Duplicate check excludes the record being edited.
	taken, err := u.repo.RequestNumberExists(ctx, in.RequestNumber, requestID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateRequestNumber
	}

	imageURL, err := u.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}
	if imageURL != "" {
		pr.ImageURL = imageURL
	}

	pr.RequestNumber = in.RequestNumber
	pr.Purpose = in.Purpose
	pr.College = itemDomain.College(in.College)
	pr.Category = itemDomain.Category(in.Category)
	pr.Quantity = in.Quantity
	pr.RequestDate = in.RequestDate.UTC()
	pr.RequestorEmail = in.RequestorEmail

	if err := u.repo.Save(ctx, pr); err != nil {
		return nil, err
	}
	return toDTO(pr), nil
}

// Approve is the one-way Pending -> Approved transition. The state change
// commits inside a transaction with the row locked; the notification runs
// afterwards, outside the transactional boundary, and its failure only logs.
func (u *Usecase) Approve(ctx context.Context, requestID uint64, approvalDate time.Time) (*RequestDTO, error) {
	if u.uow == nil {
		return nil, domain.ErrNotFound
	}

	var dto *RequestDTO
	err := u.uow.WithinRequestTx(ctx, requestID, func(r uow.Repos, pr *domain.PurchaseRequest) error {
		if pr.Approved {
			return domain.ErrAlreadyApproved
		}
		date := approvalDate.UTC()
		pr.Approved = true
		pr.ApprovalDate = &date
		if err := r.Requests.Save(ctx, pr); err != nil {
			return err
		}
		dto = toDTO(pr)
		return nil
	})
	if err != nil {
		metrics.RequestApprove.WithLabelValues(metrics.ResultFail).Inc()
		return nil, err
	}
	metrics.RequestApprove.WithLabelValues(metrics.ResultOK).Inc()

	if u.dispatcher != nil {
		go u.sendNotification(*dto)
	}
	return dto, nil
}

// sendNotification runs detached from the approve call; the approval is
// already committed by the time this fires.
func (u *Usecase) sendNotification(dto RequestDTO) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	approvalDate := ""
	if dto.ApprovalDate != nil {
		approvalDate = dto.ApprovalDate.Format("2006-01-02")
	}
	err := u.dispatcher.Notify(ctx, dto.RequestorEmail, notify.TemplateParams{
		RequestNumber: dto.RequestNumber,
		Purpose:       dto.Purpose,
		College:       dto.College,
		Category:      dto.Category,
		RequestDate:   dto.RequestDate.Format("2006-01-02"),
		ApprovalDate:  approvalDate,
	})
	if err != nil {
		metrics.NotifySend.WithLabelValues(metrics.ResultFail).Inc()
		log.Printf("approval notification for %s failed: %v", dto.RequestNumber, err)
		return
	}
	metrics.NotifySend.WithLabelValues(metrics.ResultOK).Inc()
}

func (u *Usecase) Delete(ctx context.Context, requestID uint64) error {
	return u.repo.Delete(ctx, requestID)
}

func (u *Usecase) Get(ctx context.Context, requestID uint64) (*RequestDTO, error) {
	pr, err := u.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return toDTO(pr), nil
}

func (u *Usecase) List(ctx context.Context) ([]RequestDTO, error) {
	prs, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RequestDTO, 0, len(prs))
	for i := range prs {
		out = append(out, *toDTO(&prs[i]))
	}
	return out, nil
}

func validateInput(in SubmitRequestInput) error {
	if in.RequestNumber == "" || in.Purpose == "" || in.College == "" ||
		in.Category == "" || in.RequestorEmail == "" {
		return fmt.Errorf("%w: missing required field", ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	return nil
}

func (u *Usecase) uploadImage(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if u.blobs == nil {
		return "", fmt.Errorf("%w: image given but no blob store configured", ErrInvalidInput)
	}
	url, err := u.blobs.Upload(ctx, data)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}
