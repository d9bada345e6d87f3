package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Bulk actions.
const (
	ActionIndex  = "index"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// BulkOperation is one action within a bulk request. Document is ignored
// for deletes.
type BulkOperation struct {
	Action   string
	Entity   string
	ID       string
	Document any
}

// BulkError captures one failed item.
type BulkError struct {
	ID        string `json:"id"`
	Index     string `json:"index"`
	ErrorType string `json:"errorType"`
	Reason    string `json:"reason"`
}

// BulkResult is the per-item breakdown of a bulk request. Deletes are
// counted as updates for reporting simplicity.
type BulkResult struct {
	Indexed int           `json:"indexed"`
	Updated int           `json:"updated"`
	Failed  int           `json:"failed"`
	Took    time.Duration `json:"took"`
	Errors  []BulkError   `json:"errors"`
}

// BulkIndex submits all operations in a single round trip and parses the
// per-item outcomes. One failing item never aborts the batch; the caller
// gets the full breakdown and decides what to do. An empty operation list
// short-circuits without a network call.
func (s *Service) BulkIndex(ctx context.Context, ops []BulkOperation) (*BulkResult, error) {
	if len(ops) == 0 {
		return &BulkResult{}, nil
	}

	client, err := s.search.Client()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, op := range ops {
		meta := map[string]map[string]string{
			op.Action: {
				"_index": s.search.IndexName(op.Entity),
				"_id":    op.ID,
			},
		}
		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return nil, fmt.Errorf("encode bulk action: %w", err)
		}
		switch op.Action {
		case ActionIndex:
			if err := json.NewEncoder(&buf).Encode(op.Document); err != nil {
				return nil, fmt.Errorf("encode bulk document %s/%s: %w", op.Entity, op.ID, err)
			}
		case ActionUpdate:
			if err := json.NewEncoder(&buf).Encode(map[string]any{"doc": op.Document, "doc_as_upsert": true}); err != nil {
				return nil, fmt.Errorf("encode bulk document %s/%s: %w", op.Entity, op.ID, err)
			}
		case ActionDelete:
			// No source line for deletes.
		default:
			return nil, fmt.Errorf("unknown bulk action %q", op.Action)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	res, err := client.Bulk(bytes.NewReader(buf.Bytes()), client.Bulk.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, &statusError{code: res.StatusCode, body: string(msg)}
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode bulk response: %w", err)
	}

	result := &BulkResult{Took: time.Duration(parsed.Took) * time.Millisecond}
	for _, item := range parsed.Items {
		outcome, kind := item.outcome()
		if outcome == nil {
			continue
		}
		switch {
		case kind == ActionDelete && outcome.Status == 404:
			// Idempotent delete: already gone counts as done.
			result.Updated++
		case outcome.Status >= 300:
			result.Failed++
			result.Errors = append(result.Errors, BulkError{
				ID:        outcome.ID,
				Index:     outcome.Index,
				ErrorType: outcome.Error.Type,
				Reason:    outcome.Error.Reason,
			})
		case outcome.Result == "created":
			result.Indexed++
		default:
			// "updated", "deleted" and "not_found" deletes all land here.
			result.Updated++
		}
	}
	return result, nil
}

type bulkResponse struct {
	Took   int        `json:"took"`
	Errors bool       `json:"errors"`
	Items  []bulkItem `json:"items"`
}

type bulkItem struct {
	Index  *bulkItemOutcome `json:"index"`
	Update *bulkItemOutcome `json:"update"`
	Delete *bulkItemOutcome `json:"delete"`
}

func (i bulkItem) outcome() (*bulkItemOutcome, string) {
	switch {
	case i.Index != nil:
		return i.Index, ActionIndex
	case i.Update != nil:
		return i.Update, ActionUpdate
	case i.Delete != nil:
		return i.Delete, ActionDelete
	}
	return nil, ""
}

type bulkItemOutcome struct {
	ID     string `json:"_id"`
	Index  string `json:"_index"`
	Status int    `json:"status"`
	Result string `json:"result"`
	Error  struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}
