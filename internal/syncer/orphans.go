package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/search"
)

// CleanupResult reports an orphan cleanup pass.
type CleanupResult struct {
	Removed int         `json:"removed"`
	Errors  []SyncError `json:"errors"`
}

// CleanupOrphans deletes documents whose relational row no longer exists,
// repairing deletions that bypassed the normal write path. It diffs the
// full id listing of each index against the table's primary keys, so it
// is O(index size + table size) per entity type and runs on its own,
// infrequent schedule.
func (o *Orchestrator) CleanupOrphans(ctx context.Context) (*CleanupResult, error) {
	if !o.search.Enabled() {
		return nil, search.ErrDisabled
	}
	if err := o.state.beginRun(); err != nil {
		return nil, err
	}
	defer o.state.endRun()

	start := time.Now()
	o.logger.Info("orphan cleanup started")

	result := &CleanupResult{}
	for _, ent := range o.entities() {
		o.state.setCurrent(ent.name)

		rowIDs, err := ent.ids(ctx)
		if err != nil {
			result.Errors = append(result.Errors, entityError(ent.name, "", err))
			continue
		}
		live := make(map[string]struct{}, len(rowIDs))
		for _, id := range rowIDs {
			live[strconv.FormatInt(id, 10)] = struct{}{}
		}

		indexIDs, err := o.listIndexIDs(ctx, ent.name)
		if err != nil {
			result.Errors = append(result.Errors, entityError(ent.name, "", err))
			continue
		}

		var orphans []string
		for _, id := range indexIDs {
			if _, ok := live[id]; !ok {
				orphans = append(orphans, id)
			}
		}
		if len(orphans) == 0 {
			continue
		}

		removed, errs := o.deleteBatch(ctx, ent.name, orphans)
		result.Removed += removed
		result.Errors = append(result.Errors, errs...)
		o.state.recordDeleted(removed)
		o.logger.Info("orphans removed", "entity", ent.name, "removed", removed)
	}

	o.logger.Info("orphan cleanup finished",
		"removed", result.Removed,
		"errors", len(result.Errors),
		"duration", time.Since(start))
	return result, nil
}

// deleteBatch removes orphaned documents in bulk batches.
func (o *Orchestrator) deleteBatch(ctx context.Context, entity string, ids []string) (int, []SyncError) {
	var removed int
	var errs []SyncError

	for len(ids) > 0 {
		n := o.cfg.PageSize
		if n > len(ids) {
			n = len(ids)
		}
		ops := make([]indexer.BulkOperation, 0, n)
		for _, id := range ids[:n] {
			ops = append(ops, indexer.BulkOperation{
				Action: indexer.ActionDelete,
				Entity: entity,
				ID:     id,
			})
		}
		ids = ids[n:]

		res, err := o.indexer.BulkIndex(ctx, ops)
		if err != nil {
			errs = append(errs, entityError(entity, "", err))
			return removed, errs
		}
		removed += res.Updated
		for _, be := range res.Errors {
			errs = append(errs, SyncError{
				Entity:    entity,
				ID:        be.ID,
				Error:     fmt.Sprintf("%s: %s", be.ErrorType, be.Reason),
				Timestamp: time.Now(),
			})
		}
	}
	return removed, errs
}

// listIndexIDs scrolls the full id listing of one entity index.
func (o *Orchestrator) listIndexIDs(ctx context.Context, entity string) ([]string, error) {
	client, err := o.search.Client()
	if err != nil {
		return nil, err
	}
	index := o.search.IndexName(entity)

	res, err := client.Search(
		client.Search.WithContext(ctx),
		client.Search.WithIndex(index),
		client.Search.WithScroll(2*time.Minute),
		client.Search.WithSize(o.cfg.OrphanPageSize),
		client.Search.WithBody(strings.NewReader(`{"query":{"match_all":{}},"_source":false}`)),
	)
	if err != nil {
		return nil, fmt.Errorf("list %s ids: %w", entity, err)
	}

	var ids []string
	scrollID := ""
	for {
		page, sid, err := decodeIDPage(res)
		if err != nil {
			return nil, fmt.Errorf("list %s ids: %w", entity, err)
		}
		scrollID = sid
		if len(page) == 0 {
			break
		}
		ids = append(ids, page...)

		res, err = client.Scroll(
			client.Scroll.WithContext(ctx),
			client.Scroll.WithScrollID(scrollID),
			client.Scroll.WithScroll(2*time.Minute),
		)
		if err != nil {
			return nil, fmt.Errorf("scroll %s ids: %w", entity, err)
		}
	}

	if scrollID != "" {
		if cres, err := client.ClearScroll(client.ClearScroll.WithScrollID(scrollID)); err == nil {
			io.Copy(io.Discard, cres.Body)
			cres.Body.Close()
		}
	}
	return ids, nil
}

func decodeIDPage(res *esapi.Response) ([]string, string, error) {
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, "", fmt.Errorf("status %d: %s", res.StatusCode, msg)
	}

	var parsed struct {
		ScrollID string `json:"_scroll_id"`
		Hits     struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, "", err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, parsed.ScrollID, nil
}
