package indexer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer/documents"
)

// indexSettings is the shared mapping skeleton. Every index carries the
// common search fields; entity-specific fields are mapped dynamically so
// documents stay schema-complete (null instead of omitted).
const indexSettings = `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 1
  },
  "mappings": {
    "dynamic": true,
    "properties": {
      "id": { "type": "keyword" },
      "searchText": { "type": "text" },
      "suggest": {
        "type": "completion",
        "contexts": [
          { "name": "category", "type": "category", "path": "suggest.contexts.category" },
          { "name": "type", "type": "category", "path": "suggest.contexts.type" }
        ]
      },
      "createdAt": { "type": "date" },
      "updatedAt": { "type": "date" }
    }
  }
}`

// EnsureIndices creates any missing per-entity indices. Existing indices
// are left untouched; mapping migrations go through full reindex into a
// fresh suffix.
func (s *Service) EnsureIndices(ctx context.Context) error {
	client, err := s.search.Client()
	if err != nil {
		return err
	}

	for _, entity := range documents.EntityTypes() {
		name := s.search.IndexName(entity)

		res, err := client.Indices.Exists([]string{name}, client.Indices.Exists.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("check index %s: %w", name, err)
		}
		io.Copy(io.Discard, res.Body)
		res.Body.Close()
		if res.StatusCode == 200 {
			continue
		}

		createRes, err := client.Indices.Create(
			name,
			client.Indices.Create.WithBody(strings.NewReader(indexSettings)),
			client.Indices.Create.WithContext(ctx),
		)
		if err != nil {
			return fmt.Errorf("create index %s: %w", name, err)
		}
		body, _ := io.ReadAll(createRes.Body)
		createRes.Body.Close()
		if createRes.IsError() {
			// Another instance may have won the race.
			if strings.Contains(string(body), "resource_already_exists_exception") {
				continue
			}
			return fmt.Errorf("create index %s: status %d: %s", name, createRes.StatusCode, body)
		}
		s.logger.Info("created index", "index", name)
	}
	return nil
}
