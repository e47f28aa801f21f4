package main

import (
	"context"
	"fmt"

	"github.com/yungbote/content-intel-backend/internal/clients/dashboard"
	"github.com/yungbote/content-intel-backend/internal/domain/content"
	"github.com/yungbote/content-intel-backend/internal/modules/classification"
	"github.com/yungbote/content-intel-backend/internal/platform/envutil"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

// updateRemote logs in to a running dashboard and sends the ids in batches.
// Batches already applied stay applied when a later one fails; the partial
// result is returned with the error.
func updateRemote(ctx context.Context, opts options, req classification.UpdateRequest) (*classification.Result, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	client, err := dashboard.NewClient(log, dashboard.Config{
		BaseURL:         opts.server,
		Timeout:         opts.timeout,
		DefaultAssignor: opts.assignedBy,
	})
	if err != nil {
		return nil, err
	}
	if err := client.Login(ctx, opts.username, opts.password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	defer func() {
		if err := client.Logout(context.WithoutCancel(ctx)); err != nil {
			log.Warn("logout failed", "error", err)
		}
	}()

	out := &classification.Result{Success: true, Items: []content.InventoryItem{}}
	for _, batch := range batches(req.InventoryIDs, opts.batchSize) {
		part := req
		part.InventoryIDs = batch
		res, err := client.UpdateClassification(ctx, part)
		if err != nil {
			out.Success = false
			return out, fmt.Errorf("batch of %d: %w", len(batch), err)
		}
		out.UpdatedCount += res.UpdatedCount
		out.Items = append(out.Items, res.Items...)
		log.Debug("classification batch applied", "ids", len(batch), "updated", res.UpdatedCount)
	}
	return out, nil
}

func batches(ids classification.IDList, size int) []classification.IDList {
	if size <= 0 || size >= len(ids) {
		return []classification.IDList{ids}
	}
	out := make([]classification.IDList, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}
