package item

import (
	"context"
	"errors"
	"fmt"

	domain "supplytrack-backend/internal/domain/item"
	"supplytrack-backend/internal/infrastructure/blob"
	"supplytrack-backend/internal/metrics"
	"supplytrack-backend/pkg/id"
)

const (
	// How many fresh random suffixes we try before giving up on barcode generation.
	maxBarcodeAttempts = 10
	// How often a lost conditional decrement is retried before surfacing ErrConflict.
	maxAdjustRetries = 3
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct {
	repo  domain.Repository
	blobs blob.Store
}

func NewUsecase(r domain.Repository, blobs blob.Store) *Usecase {
	return &Usecase{repo: r, blobs: blobs}
}

func (u *Usecase) Create(ctx context.Context, in CreateItemInput) (*ItemDTO, error) {
	if in.DisplayName == "" || in.College == "" || in.Category == "" || in.Supplier == "" {
		return nil, fmt.Errorf("%w: missing required field", ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	// Image first: a record is never persisted without its image if one was attempted.
	imageURL, err := u.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	barcode, err := u.generateBarcode(ctx)
	if err != nil {
		return nil, err
	}

	it := &domain.Item{
		Barcode:       barcode,
		DisplayName:   in.DisplayName,
		College:       domain.College(in.College),
		Category:      domain.Category(in.Category),
		Quantity:      in.Quantity,
		Supplier:      in.Supplier,
		RequestedDate: in.RequestedDate.UTC(),
		ImageURL:      imageURL,
	}
	if err := u.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return toDTO(it), nil
}

// generateBarcode retries random suffixes until one is free of the live set.
// The unique index on items.barcode backstops the window between the check
// and the insert.
func (u *Usecase) generateBarcode(ctx context.Context) (string, error) {
	for i := 0; i < maxBarcodeAttempts; i++ {
		candidate := id.NewBarcode()
		taken, err := u.repo.BarcodeExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", domain.ErrBarcodeTaken
}

// Edit is a full-field replace; the barcode is never regenerated by an edit.
func (u *Usecase) Edit(ctx context.Context, itemID uint64, in EditItemInput) (*ItemDTO, error) {
	if in.DisplayName == "" || in.College == "" || in.Category == "" || in.Supplier == "" {
		return nil, fmt.Errorf("%w: missing required field", ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	it, err := u.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	imageURL, err := u.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}
	if imageURL != "" {
		it.ImageURL = imageURL
	}

	it.DisplayName = in.DisplayName
	it.College = domain.College(in.College)
	it.Category = domain.Category(in.Category)
	it.Quantity = in.Quantity
	it.Supplier = in.Supplier
	it.RequestedDate = in.RequestedDate.UTC()

	if err := u.repo.Save(ctx, it); err != nil {
		return nil, err
	}
	return toDTO(it), nil
}

func (u *Usecase) Delete(ctx context.Context, itemID uint64) error {
	return u.repo.Delete(ctx, itemID)
}

func (u *Usecase) Get(ctx context.Context, itemID uint64) (*ItemDTO, error) {
	it, err := u.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toDTO(it), nil
}

func (u *Usecase) GetByBarcode(ctx context.Context, barcode string) (*ItemDTO, error) {
	it, err := u.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return toDTO(it), nil
}

func (u *Usecase) List(ctx context.Context) ([]ItemDTO, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i]))
	}
	return out, nil
}

// AdjustStock decrements by delta, deleting the item when the count hits zero.
// The write is a version-guarded conditional update, so a concurrent scanner
// that raced us gets a conflict instead of a lost decrement; lost rounds are
// retried against a re-read before ErrConflict surfaces.
func (u *Usecase) AdjustStock(ctx context.Context, barcode string, delta int64) (*AdjustmentResult, error) {
	if delta <= 0 {
		return nil, fmt.Errorf("%w: delta must be a positive integer", ErrInvalidInput)
	}

	for attempt := 0; attempt < maxAdjustRetries; attempt++ {
		it, err := u.repo.GetByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}

		newQuantity := it.Quantity - delta
		if newQuantity <= 0 {
			err = u.repo.DeleteVersioned(ctx, it.ID, it.Version)
			if errors.Is(err, domain.ErrConflict) {
				metrics.ScanConflictRetries.Inc()
				continue
			}
			if err != nil {
				return nil, err
			}
			return &AdjustmentResult{
				Outcome:     OutcomeRemoved,
				Barcode:     barcode,
				DisplayName: it.DisplayName,
				NewQuantity: 0,
			}, nil
		}

		err = u.repo.DecrementQuantity(ctx, it.ID, it.Version, delta)
		if errors.Is(err, domain.ErrConflict) {
			metrics.ScanConflictRetries.Inc()
			continue
		}
		if err != nil {
			return nil, err
		}
		return &AdjustmentResult{
			Outcome:     OutcomeUpdated,
			Barcode:     barcode,
			DisplayName: it.DisplayName,
			NewQuantity: newQuantity,
		}, nil
	}
	return nil, domain.ErrConflict
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
