package syncer

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/search"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store/storetest"
)

// fakeES emulates just enough of the search API for orchestrator tests:
// single-document writes, bulk requests, scrolling and forcemerge.
type fakeES struct {
	mu sync.Mutex

	// IndexIDs seeds the id listing served to scroll searches, per index
	// name.
	IndexIDs map[string][]string

	BulkCalls   int
	BulkActions []string // "<action> <index>/<id>" in request order
	DocWrites   []string // single-document writes, "<index>/<id>"
	DocDeletes  []string
	Forcemerges int
}

func (f *fakeES) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := req.URL.Path
	switch {
	case strings.HasSuffix(path, "/_bulk"):
		return f.bulk(req)
	case strings.HasSuffix(path, "/_forcemerge"):
		f.Forcemerges++
		return respond(req, 200, `{}`), nil
	case strings.HasPrefix(path, "/_search/scroll"):
		if req.Method == http.MethodDelete {
			return respond(req, 200, `{}`), nil
		}
		return respond(req, 200, `{"_scroll_id":"cursor-1","hits":{"hits":[]}}`), nil
	case strings.HasSuffix(path, "/_search"):
		index := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/_search")
		return f.search(req, index)
	case strings.Contains(path, "/_doc/"):
		return f.doc(req, path)
	}
	return respond(req, 200, `{}`), nil
}

func (f *fakeES) bulk(req *http.Request) (*http.Response, error) {
	f.BulkCalls++
	body, _ := io.ReadAll(req.Body)

	type item map[string]map[string]any
	var items []item

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	for i := 0; i < len(lines); i++ {
		var meta map[string]struct {
			Index string `json:"_index"`
			ID    string `json:"_id"`
		}
		if err := json.Unmarshal([]byte(lines[i]), &meta); err != nil {
			return respond(req, 400, `{"error":"malformed bulk"}`), nil
		}
		for action, m := range meta {
			f.BulkActions = append(f.BulkActions, action+" "+m.Index+"/"+m.ID)
			result := "created"
			if action == "delete" {
				result = "deleted"
			} else {
				i++ // consume the source line
			}
			items = append(items, item{action: {"_id": m.ID, "_index": m.Index, "status": 200, "result": result}})
		}
	}

	resp, _ := json.Marshal(map[string]any{"took": 1, "errors": false, "items": items})
	return respond(req, 200, string(resp)), nil
}

func (f *fakeES) search(req *http.Request, index string) (*http.Response, error) {
	hits := make([]map[string]string, 0)
	for _, id := range f.IndexIDs[index] {
		hits = append(hits, map[string]string{"_id": id})
	}
	resp, _ := json.Marshal(map[string]any{
		"_scroll_id": "cursor-1",
		"hits":       map[string]any{"hits": hits},
	})
	return respond(req, 200, string(resp)), nil
}

func (f *fakeES) doc(req *http.Request, path string) (*http.Response, error) {
	ref := strings.Replace(strings.TrimPrefix(path, "/"), "/_doc", "", 1)
	switch req.Method {
	case http.MethodDelete:
		f.DocDeletes = append(f.DocDeletes, ref)
		return respond(req, 200, `{"result":"deleted"}`), nil
	default:
		f.DocWrites = append(f.DocWrites, ref)
		return respond(req, 200, `{"result":"created"}`), nil
	}
}

func respond(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}, "Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Request:    req,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrchestrator(t *testing.T, st *storetest.Store, es *fakeES, cfg Config) *Orchestrator {
	t.Helper()
	searchCfg := search.Config{
		Enabled:   true,
		Addresses: []string{"http://search.test:9200"},
		Transport: es,
	}
	searchCfg.ApplyDefaults()
	mgr := search.NewManager(searchCfg, testLogger())
	idx := indexer.NewService(mgr, indexer.Config{}, testLogger())
	return New(st, idx, mgr, cfg, testLogger())
}

func newDisabledOrchestrator(t *testing.T, st *storetest.Store) *Orchestrator {
	t.Helper()
	mgr := search.NewManager(search.Config{Enabled: false}, testLogger())
	idx := indexer.NewService(mgr, indexer.Config{}, testLogger())
	return New(st, idx, mgr, Config{}, testLogger())
}
