package request

import (
	"context"
	"errors"
	"testing"
	"time"

	itemDomain "supplytrack-backend/internal/domain/item"
	domain "supplytrack-backend/internal/domain/request"
	"supplytrack-backend/internal/domain/uow"
	"supplytrack-backend/internal/testutil/notifymock"
	"supplytrack-backend/internal/testutil/requestmock"
	"supplytrack-backend/internal/testutil/uowmock"
)

func validInput() SubmitRequestInput {
	return SubmitRequestInput{
		RequestNumber:  "PR-2025-0042",
		Purpose:        "replacement microscopes",
		College:        "science",
		Category:       "equipment",
		Quantity:       4,
		RequestDate:    time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		RequestorEmail: "lab@campus.edu",
	}
}

func pending(id uint64, number string) *domain.PurchaseRequest {
	return &domain.PurchaseRequest{
		ID:             id,
		RequestNumber:  number,
		Purpose:        "replacement microscopes",
		College:        itemDomain.CollegeScience,
		Category:       itemDomain.CategoryEquipment,
		Quantity:       4,
		RequestDate:    time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		RequestorEmail: "lab@campus.edu",
	}
}

func TestSubmit(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*SubmitRequestInput)
		taken   bool
		wantErr error
	}{
		{name: "happy path"},
		{name: "duplicate request number", taken: true, wantErr: domain.ErrDuplicateRequestNumber},
		{name: "missing number", mutate: func(in *SubmitRequestInput) { in.RequestNumber = "" }, wantErr: ErrInvalidInput},
		{name: "missing purpose", mutate: func(in *SubmitRequestInput) { in.Purpose = "" }, wantErr: ErrInvalidInput},
		{name: "missing email", mutate: func(in *SubmitRequestInput) { in.RequestorEmail = "" }, wantErr: ErrInvalidInput},
		{name: "zero quantity", mutate: func(in *SubmitRequestInput) { in.Quantity = 0 }, wantErr: ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var created *domain.PurchaseRequest
			repo := &requestmock.Repo{
				RequestNumberExistsFn: func(ctx context.Context, number string, excludeID uint64) (bool, error) {
					if excludeID != 0 {
						t.Fatalf("submit must not exclude any id, got %d", excludeID)
					}
					return tc.taken, nil
				},
				CreateFn: func(ctx context.Context, pr *domain.PurchaseRequest) error {
					created = pr
					return nil
				},
			}
			uc := NewUsecase(repo, nil, nil, nil)

			in := validInput()
			if tc.mutate != nil {
				tc.mutate(&in)
			}
			dto, err := uc.Submit(context.Background(), in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				if created != nil {
					t.Fatal("nothing must be persisted on a rejected submit")
				}
				return
			}
			if err != nil {
				t.Fatalf("Submit err: %v", err)
			}
			if dto.Approved || dto.ApprovalDate != nil {
				t.Fatalf("a new request must start pending: %+v", dto)
			}
			if created == nil || created.RequestNumber != in.RequestNumber {
				t.Fatalf("persisted record mismatch: %+v", created)
			}
		})
	}
}

func TestUpdate_ExcludesSelfFromDuplicateCheck(t *testing.T) {
	repo := &requestmock.Repo{
		GetByIDFn: func(ctx context.Context, requestID uint64) (*domain.PurchaseRequest, error) {
			return pending(9, "PR-2025-0042"), nil
		},
		RequestNumberExistsFn: func(ctx context.Context, number string, excludeID uint64) (bool, error) {
			if excludeID != 9 {
				t.Fatalf("duplicate check must exclude the edited record, got excludeID=%d", excludeID)
			}
			return false, nil
		},
	}
	uc := NewUsecase(repo, nil, nil, nil)

	// keeping its own number is not a duplicate
	dto, err := uc.Update(context.Background(), 9, validInput())
	if err != nil {
		t.Fatalf("Update err: %v", err)
	}
	if dto.RequestNumber != "PR-2025-0042" {
		t.Fatalf("dto: %+v", dto)
	}
}

func TestUpdate_DuplicateNumberOfOtherRecord(t *testing.T) {
	repo := &requestmock.Repo{
		GetByIDFn: func(ctx context.Context, requestID uint64) (*domain.PurchaseRequest, error) {
			return pending(9, "PR-2025-0001"), nil
		},
		RequestNumberExistsFn: func(ctx context.Context, number string, excludeID uint64) (bool, error) {
			return true, nil
		},
	}
	uc := NewUsecase(repo, nil, nil, nil)

	if _, err := uc.Update(context.Background(), 9, validInput()); !errors.Is(err, domain.ErrDuplicateRequestNumber) {
		t.Fatalf("want ErrDuplicateRequestNumber, got %v", err)
	}
}

func TestUpdate_RejectsApprovedRequest(t *testing.T) {
	approvedAt := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	repo := &requestmock.Repo{
		GetByIDFn: func(ctx context.Context, requestID uint64) (*domain.PurchaseRequest, error) {
			pr := pending(9, "PR-2025-0042")
			pr.Approved = true
			pr.ApprovalDate = &approvedAt
			return pr, nil
		},
		SaveFn: func(ctx context.Context, pr *domain.PurchaseRequest) error {
			t.Fatal("an approved request must not be saved over")
			return nil
		},
	}
	uc := NewUsecase(repo, nil, nil, nil)

	if _, err := uc.Update(context.Background(), 9, validInput()); !errors.Is(err, domain.ErrAlreadyApproved) {
		t.Fatalf("want ErrAlreadyApproved, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	uc := NewUsecase(&requestmock.Repo{}, nil, nil, nil)
	if _, err := uc.Update(context.Background(), 404, validInput()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// requestTx wires the uowmock to a single in-memory record, mimicking the
// locked read-modify-write the real unit of work performs.
func requestTx(repo *requestmock.Repo, pr *domain.PurchaseRequest) *uowmock.UoW {
	m := uowmock.New()
	m.WithinRequestTxFn = func(ctx context.Context, requestID uint64, fn func(r uow.Repos, pr *domain.PurchaseRequest) error) error {
		if pr == nil || pr.ID != requestID {
			return domain.ErrNotFound
		}
		return fn(uow.Repos{Requests: repo}, pr)
	}
	return m
}

func TestApprove(t *testing.T) {
	var saved *domain.PurchaseRequest
	repo := &requestmock.Repo{
		SaveFn: func(ctx context.Context, pr *domain.PurchaseRequest) error {
			saved = pr
			return nil
		},
	}
	pr := pending(5, "PR-2025-0042")
	dispatcher := notifymock.New()
	uc := NewUsecase(repo, requestTx(repo, pr), dispatcher, nil)

	approvalDate := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	dto, err := uc.Approve(context.Background(), 5, approvalDate)
	if err != nil {
		t.Fatalf("Approve err: %v", err)
	}
	if !dto.Approved || dto.ApprovalDate == nil || !dto.ApprovalDate.Equal(approvalDate) {
		t.Fatalf("dto: %+v", dto)
	}
	if saved == nil || !saved.Approved {
		t.Fatalf("approval not persisted: %+v", saved)
	}

	select {
	case call := <-dispatcher.Calls:
		if call.Recipient != "lab@campus.edu" {
			t.Fatalf("recipient: %q", call.Recipient)
		}
		if call.Params.RequestNumber != "PR-2025-0042" || call.Params.ApprovalDate != "2025-08-25" {
			t.Fatalf("params: %+v", call.Params)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification dispatched after approval")
	}
}

func TestApprove_SecondApproveRejected(t *testing.T) {
	repo := &requestmock.Repo{}
	pr := pending(5, "PR-2025-0042")
	dispatcher := notifymock.New()
	uc := NewUsecase(repo, requestTx(repo, pr), dispatcher, nil)

	if _, err := uc.Approve(context.Background(), 5, time.Now()); err != nil {
		t.Fatalf("first Approve err: %v", err)
	}
	<-dispatcher.Calls // drain the first notification

	_, err := uc.Approve(context.Background(), 5, time.Now())
	if !errors.Is(err, domain.ErrAlreadyApproved) {
		t.Fatalf("want ErrAlreadyApproved, got %v", err)
	}
	select {
	case <-dispatcher.Calls:
		t.Fatal("a rejected approve must not notify")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestApprove_NotificationFailureDoesNotBlockApproval(t *testing.T) {
	repo := &requestmock.Repo{}
	pr := pending(5, "PR-2025-0042")
	dispatcher := notifymock.New()
	dispatcher.Err = errors.New("mail service down")
	uc := NewUsecase(repo, requestTx(repo, pr), dispatcher, nil)

	dto, err := uc.Approve(context.Background(), 5, time.Now())
	if err != nil {
		t.Fatalf("Approve err: %v", err)
	}
	if !dto.Approved {
		t.Fatalf("dto: %+v", dto)
	}
	// the send still happened, it just failed
	select {
	case <-dispatcher.Calls:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never attempted")
	}
}

func TestApprove_SaveFailureRollsBack(t *testing.T) {
	dbErr := errors.New("write failed")
	repo := &requestmock.Repo{
		SaveFn: func(ctx context.Context, pr *domain.PurchaseRequest) error { return dbErr },
	}
	pr := pending(5, "PR-2025-0042")
	dispatcher := notifymock.New()
	uc := NewUsecase(repo, requestTx(repo, pr), dispatcher, nil)

	if _, err := uc.Approve(context.Background(), 5, time.Now()); !errors.Is(err, dbErr) {
		t.Fatalf("want %v, got %v", dbErr, err)
	}
	select {
	case <-dispatcher.Calls:
		t.Fatal("must not notify when the approval did not commit")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestApprove_NotFound(t *testing.T) {
	repo := &requestmock.Repo{}
	uc := NewUsecase(repo, requestTx(repo, nil), notifymock.New(), nil)
	if _, err := uc.Approve(context.Background(), 404, time.Now()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestApprove_NilDispatcherStillCommits(t *testing.T) {
	repo := &requestmock.Repo{}
	pr := pending(5, "PR-2025-0042")
	uc := NewUsecase(repo, requestTx(repo, pr), nil, nil)

	dto, err := uc.Approve(context.Background(), 5, time.Now())
	if err != nil {
		t.Fatalf("Approve err: %v", err)
	}
	if !dto.Approved {
		t.Fatalf("dto: %+v", dto)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	calls := 0
	repo := &requestmock.Repo{
		DeleteFn: func(ctx context.Context, requestID uint64) error {
			calls++
			return nil
		},
	}
	uc := NewUsecase(repo, nil, nil, nil)

	for i := 0; i < 2; i++ {
		if err := uc.Delete(context.Background(), 5); err != nil {
			t.Fatalf("Delete #%d: %v", i, err)
		}
	}
	if calls != 2 {
		t.Fatalf("calls = %d", calls)
	}
}
