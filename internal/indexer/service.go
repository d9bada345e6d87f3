// Package indexer writes documents to the search cluster: a single-document
// path with transient-failure retry for live mutation hooks, and a bulk
// path used by the sync orchestrator.
package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer/documents"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/search"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store"
)

// IndexResult describes a successful single-document write.
type IndexResult struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
	Result string `json:"result"` // created or updated
}

// Service is the single-document indexing service.
type Service struct {
	search *search.Manager
	cfg    Config
	queue  *retryQueue
	logger *slog.Logger
}

// NewService creates an indexing service.
func NewService(mgr *search.Manager, cfg Config, logger *slog.Logger) *Service {
	cfg.ApplyDefaults()
	return &Service{
		search: mgr,
		cfg:    cfg,
		queue:  newRetryQueue(cfg.RetryQueueSize),
		logger: logger.With("component", "indexer"),
	}
}

// Index writes one document. A nil result with nil error means the index
// is disabled. Retryable failures are queued for the retry worker and the
// error is returned for visibility; callers on the write path log and
// move on, they are never blocked.
func (s *Service) Index(ctx context.Context, entity, id string, doc any) (*IndexResult, error) {
	if !s.search.Enabled() {
		return nil, nil
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal %s document: %w", entity, err)
	}

	res, err := s.indexRaw(ctx, entity, id, body)
	if err == nil {
		return res, nil
	}

	var statusCode int
	var se *statusError
	if errors.As(err, &se) {
		statusCode = se.code
	}
	if IsRetryable(statusCode, unwrapStatus(err)) {
		item := &retryItem{Entity: entity, ID: id, Document: body}
		if s.queue.push(item) {
			s.logger.Warn("index failed, queued for retry",
				"entity", entity, "id", id, "error", err)
		} else {
			s.logger.Error("index failed and retry queue is full, dropping",
				"entity", entity, "id", id, "error", err)
		}
	} else {
		s.logger.Error("index failed permanently, dropping",
			"entity", entity, "id", id, "error", err)
	}
	return nil, err
}

// indexRaw performs the write without retry-queue side effects.
func (s *Service) indexRaw(ctx context.Context, entity, id string, body []byte) (*IndexResult, error) {
	client, err := s.search.Client()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	res, err := client.Index(
		s.search.IndexName(entity),
		bytes.NewReader(body),
		client.Index.WithDocumentID(id),
		client.Index.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("index %s/%s: %w", entity, id, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, &statusError{code: res.StatusCode, body: string(msg)}
	}

	var parsed struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		parsed.Result = "updated"
	}
	return &IndexResult{Entity: entity, ID: id, Result: parsed.Result}, nil
}

// DeleteDocument removes a document, treating a missing document as
// success so deletes stay idempotent. A disabled index is also a no-op
// success: the write path must never be blocked by the index.
func (s *Service) DeleteDocument(ctx context.Context, entity, id string) bool {
	client, err := s.search.Client()
	if err != nil {
		if errors.Is(err, search.ErrDisabled) {
			return true
		}
		s.logger.Warn("delete skipped, search unavailable",
			"entity", entity, "id", id, "error", err)
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	res, err := client.Delete(
		s.search.IndexName(entity),
		id,
		client.Delete.WithContext(ctx),
	)
	if err != nil {
		s.logger.Warn("delete failed", "entity", entity, "id", id, "error", err)
		return false
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return true
	}
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		s.logger.Warn("delete failed",
			"entity", entity, "id", id, "status", res.StatusCode, "response", string(msg))
		return false
	}
	return true
}

// statusError carries a non-2xx response for retry classification.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("search returned status %d: %s", e.code, e.body)
}

// unwrapStatus strips the statusError wrapper so transport errors keep
// their original type for classification.
func unwrapStatus(err error) error {
	var se *statusError
	if errors.As(err, &se) {
		return nil
	}
	return err
}

// Per-entity wrappers transform the row and write the resulting document.

func (s *Service) IndexEvent(ctx context.Context, row store.EventRow, enr documents.EventEnrichment) (*IndexResult, error) {
	doc := documents.Event(row, enr)
	return s.Index(ctx, documents.EntityEvents, doc.ID, doc)
}

func (s *Service) IndexTask(ctx context.Context, row store.TaskRow, enr documents.TaskEnrichment) (*IndexResult, error) {
	doc := documents.Task(row, enr)
	return s.Index(ctx, documents.EntityTasks, doc.ID, doc)
}

func (s *Service) IndexContact(ctx context.Context, row store.ContactRow, enr documents.ContactEnrichment) (*IndexResult, error) {
	doc := documents.Contact(row, enr)
	return s.Index(ctx, documents.EntityContacts, doc.ID, doc)
}

func (s *Service) IndexOrganization(ctx context.Context, row store.OrganizationRow, enr documents.OrganizationEnrichment) (*IndexResult, error) {
	doc := documents.Organization(row, enr)
	return s.Index(ctx, documents.EntityOrganizations, doc.ID, doc)
}

func (s *Service) IndexLead(ctx context.Context, row store.LeadRow, enr documents.LeadEnrichment) (*IndexResult, error) {
	doc := documents.Lead(row, enr)
	return s.Index(ctx, documents.EntityLeads, doc.ID, doc)
}

func (s *Service) IndexAgreement(ctx context.Context, row store.AgreementRow, enr documents.AgreementEnrichment) (*IndexResult, error) {
	doc := documents.Agreement(row, enr)
	return s.Index(ctx, documents.EntityAgreements, doc.ID, doc)
}

func (s *Service) IndexAttendee(ctx context.Context, row store.AttendeeRow, enr documents.AttendeeEnrichment) (*IndexResult, error) {
	doc := documents.Attendee(row, enr)
	return s.Index(ctx, documents.EntityAttendees, doc.ID, doc)
}

func (s *Service) IndexInvitee(ctx context.Context, row store.InviteeRow, enr documents.InviteeEnrichment) (*IndexResult, error) {
	doc := documents.Invitee(row, enr)
	return s.Index(ctx, documents.EntityInvitees, doc.ID, doc)
}

func (s *Service) IndexActivity(ctx context.Context, row store.ActivityRow, enr documents.ActivityEnrichment) (*IndexResult, error) {
	doc := documents.Activity(row, enr)
	return s.Index(ctx, documents.EntityActivities, doc.ID, doc)
}

func (s *Service) IndexInteraction(ctx context.Context, row store.InteractionRow, enr documents.InteractionEnrichment) (*IndexResult, error) {
	doc := documents.Interaction(row, enr)
	return s.Index(ctx, documents.EntityInteractions, doc.ID, doc)
}

func (s *Service) IndexDepartment(ctx context.Context, row store.DepartmentRow) (*IndexResult, error) {
	doc := documents.Department(row)
	return s.Index(ctx, documents.EntityDepartments, doc.ID, doc)
}

func (s *Service) IndexArchivedEvent(ctx context.Context, row store.ArchivedEventRow, enr documents.ArchivedEventEnrichment) (*IndexResult, error) {
	doc := documents.ArchivedEvent(row, enr)
	return s.Index(ctx, documents.EntityArchivedEvents, doc.ID, doc)
}

func (s *Service) IndexUpdate(ctx context.Context, row store.UpdateRow, enr documents.UpdateEnrichment) (*IndexResult, error) {
	doc := documents.Update(row, enr)
	return s.Index(ctx, documents.EntityUpdates, doc.ID, doc)
}
