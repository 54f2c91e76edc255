package submit

import (
	"context"
	"sync"

	"github.com/blevesearch/bleve/v2"

	ierrors "github.com/forgelode/indexer/internal/errors"
	"github.com/forgelode/indexer/internal/model"
)

// submitBatchSize bounds the per-batch document count so cancellation is
// observed between batches.
const submitBatchSize = 500

// BleveSubmitter indexes documents into a local Bleve index. It stands in
// for a remote search engine in single-node deployments and in tests.
type BleveSubmitter struct {
	mu     sync.Mutex
	index  bleve.Index
	path   string
	closed bool
}

// Verify interface implementation at compile time
var _ Submitter = (*BleveSubmitter)(nil)

// NewBleveSubmitter opens (or creates) the index at path. An empty path
// creates an in-memory index for testing.
func NewBleveSubmitter(path string) (*BleveSubmitter, error) {
	mapping := bleve.NewIndexMapping()

	var (
		idx bleve.Index
		err error
	)
	if path == "" {
		idx, err = bleve.NewMemOnly(mapping)
	} else {
		idx, err = bleve.Open(path)
		if err == bleve.ErrorIndexPathDoesNotExist {
			idx, err = bleve.New(path, mapping)
		}
	}
	if err != nil {
		return nil, ierrors.SubmitError("failed to open search index", err)
	}

	return &BleveSubmitter{index: idx, path: path}, nil
}

// Submit indexes the whole document set, keyed by version id. Documents from
// a previous run with the same key are replaced.
func (s *BleveSubmitter) Submit(ctx context.Context, docs []model.SearchDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ierrors.New(ierrors.ErrCodeSubmitIndexClosed, "search index is closed", nil)
	}

	for start := 0; start < len(docs); start += submitBatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+submitBatchSize, len(docs))
		batch := s.index.NewBatch()
		for _, doc := range docs[start:end] {
			if err := batch.Index(doc.VersionID, doc); err != nil {
				return ierrors.SubmitError("failed to stage document", err)
			}
		}
		if err := s.index.Batch(batch); err != nil {
			return ierrors.SubmitError("failed to index document batch", err)
		}
	}
	return nil
}

// DocCount returns the number of indexed documents.
func (s *BleveSubmitter) DocCount() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.index.DocCount()
	if err != nil {
		return 0, ierrors.SubmitError("failed to count documents", err)
	}
	return count, nil
}

// Close closes the underlying index.
func (s *BleveSubmitter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.index.Close()
}
