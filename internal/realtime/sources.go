package realtime

import (
	"context"
	"encoding/json"

	itemUC "supplytrack-backend/internal/usecase/item"
	requestUC "supplytrack-backend/internal/usecase/request"
)

// Collection names, shared with the Notify call sites.
const (
	CollectionItems    = "items"
	CollectionRequests = "requests"
)

// ItemSource materializes the item collection for the hub.
func ItemSource(items *itemUC.Usecase) SnapshotFunc {
	return func(ctx context.Context) (Snapshot, error) {
		dtos, err := items.List(ctx)
		if err != nil {
			return nil, err
		}
		snap := make(Snapshot, len(dtos))
		for i := range dtos {
			doc, err := json.Marshal(&dtos[i])
			if err != nil {
				return nil, err
			}
			snap[dtos[i].ItemID] = doc
		}
		return snap, nil
	}
}

// RequestSource materializes the purchase-request collection for the hub.
func RequestSource(requests *requestUC.Usecase) SnapshotFunc {
	return func(ctx context.Context) (Snapshot, error) {
		dtos, err := requests.List(ctx)
		if err != nil {
			return nil, err
		}
		snap := make(Snapshot, len(dtos))
		for i := range dtos {
			doc, err := json.Marshal(&dtos[i])
			if err != nil {
				return nil, err
			}
			snap[dtos[i].RequestID] = doc
		}
		return snap, nil
	}
}
