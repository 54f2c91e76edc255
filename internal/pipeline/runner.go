// Package pipeline orchestrates one full indexing run: select the visible
// (version, project) pairs, batch-load both record kinds, assemble the
// search documents, and submit them as a whole.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/forgelode/indexer/internal/assemble"
	ierrors "github.com/forgelode/indexer/internal/errors"
	"github.com/forgelode/indexer/internal/loader"
	"github.com/forgelode/indexer/internal/model"
	"github.com/forgelode/indexer/internal/store"
	"github.com/forgelode/indexer/internal/submit"
)

// Dependencies contains the injected dependencies for a Runner.
type Dependencies struct {
	// Store provides the visibility query (required).
	Store *store.Store

	// Loader batch-resolves records cache-then-store (required).
	Loader *loader.Loader

	// Assembler merges records into search documents (required).
	Assembler *assemble.Assembler

	// Submitter receives the assembled documents (required).
	Submitter submit.Submitter
}

// Result contains the outcome of one indexing run.
type Result struct {
	// Visible is the number of (version, project) pairs selected.
	Visible int

	// Documents is the number of search documents assembled and submitted.
	Documents int

	// Skipped is the number of visible pairs whose project or version did
	// not resolve.
	Skipped int

	// Duration is the total run time.
	Duration time.Duration
}

// Runner executes indexing runs. Each run is a complete, independent
// snapshot of the currently visible entities; there is no persisted document
// identity across runs.
type Runner struct {
	deps Dependencies
}

// NewRunner creates a Runner, validating that all dependencies are present.
func NewRunner(deps Dependencies) (*Runner, error) {
	if deps.Store == nil || deps.Loader == nil || deps.Assembler == nil || deps.Submitter == nil {
		return nil, ierrors.InternalError("pipeline runner requires store, loader, assembler, and submitter", nil)
	}
	return &Runner{deps: deps}, nil
}

// Run executes one indexing run. Only store-level failures abort the run;
// per-record anomalies degrade silently. Cancelling the context discards any
// partially built documents: the unit of publication is the whole run, and
// partial results are never submitted.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	slog.Info("indexing run started")

	visible, err := r.deps.Store.AllVisibleIDs(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("selected visible entities", slog.Int("count", len(visible)))

	projectIDs, versionIDs := splitIDs(visible)

	// The two batch loads are independent and may run concurrently.
	var (
		projects map[int64]model.ProjectRecord
		versions map[int64]model.VersionRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = r.deps.Loader.Projects(gctx, projectIDs)
		return err
	})
	g.Go(func() error {
		var err error
		versions, err = r.deps.Loader.Versions(gctx, versionIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slog.Info("loaded records",
		slog.Int("projects", len(projects)),
		slog.Int("versions", len(versions)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := r.deps.Assembler.Assemble(visible, projects, versions)
	slog.Info("assembled documents", slog.Int("count", len(docs)))

	// Last cancellation check before publication; an abandoned run must
	// never submit.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.deps.Submitter.Submit(ctx, docs); err != nil {
		return nil, err
	}

	result := &Result{
		Visible:   len(visible),
		Documents: len(docs),
		Skipped:   len(visible) - len(docs),
		Duration:  time.Since(start),
	}
	slog.Info("indexing run finished",
		slog.Int("documents", result.Documents),
		slog.Int("skipped", result.Skipped),
		slog.Duration("duration", result.Duration))
	return result, nil
}

// splitIDs collects the unique project ids and version ids of the visible
// triples.
func splitIDs(visible []model.VisibleEntity) (projectIDs, versionIDs []int64) {
	seenProjects := make(map[int64]struct{}, len(visible))
	for _, e := range visible {
		if _, ok := seenProjects[e.ProjectID]; !ok {
			seenProjects[e.ProjectID] = struct{}{}
			projectIDs = append(projectIDs, e.ProjectID)
		}
		versionIDs = append(versionIDs, e.VersionID)
	}
	return projectIDs, versionIDs
}
