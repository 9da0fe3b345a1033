package scan

import (
	"context"

	"supplytrack-backend/internal/metrics"
	itemUC "supplytrack-backend/internal/usecase/item"
)

// Resolver bridges decode sources to the item registry.
type Resolver struct {
	items *itemUC.Usecase
}

func NewResolver(items *itemUC.Usecase) *Resolver { return &Resolver{items: items} }

// ResolveOnce consumes exactly one decode success, then releases the source.
// The source is closed on every exit path, matching the "stop the camera
// right after the first successful scan" contract.
func (r *Resolver) ResolveOnce(ctx context.Context, src Source) (*itemUC.ItemDTO, error) {
	defer src.Close()

	barcode, err := src.Next(ctx)
	if err != nil {
		return nil, err
	}
	return r.items.GetByBarcode(ctx, barcode)
}

// Search is the read-only "find by scan" mode: pure lookup, no mutation.
func (r *Resolver) Search(ctx context.Context, barcode string) (*itemUC.ItemDTO, error) {
	return r.items.GetByBarcode(ctx, barcode)
}

// ResolveAndAdjust is the scanner submit path: one decode, then an atomic
// stock decrement.
func (r *Resolver) ResolveAndAdjust(ctx context.Context, src Source, delta int64) (*itemUC.AdjustmentResult, error) {
	defer src.Close()

	barcode, err := src.Next(ctx)
	if err != nil {
		return nil, err
	}
	res, err := r.items.AdjustStock(ctx, barcode, delta)
	if err != nil {
		metrics.ScanAdjust.WithLabelValues(metrics.ResultFail).Inc()
		return nil, err
	}
	metrics.ScanAdjust.WithLabelValues(metrics.ResultOK).Inc()
	return res, nil
}
