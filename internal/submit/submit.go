// Package submit hands assembled search documents to the search engine.
package submit

import (
	"context"

	"github.com/forgelode/indexer/internal/model"
)

// Submitter receives one run's complete document set. Implementations own
// the ingestion protocol and any batching.
type Submitter interface {
	Submit(ctx context.Context, docs []model.SearchDocument) error
}
