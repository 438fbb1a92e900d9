package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jieyouxu/modio-modcheck/internal/model"
	"github.com/jieyouxu/modio-modcheck/internal/modio"
)

// Client is the subset of the mod.io API the reconciler needs.
// *modio.Client satisfies it; tests substitute fakes.
type Client interface {
	// GetMod fetches a single mod by its numeric ID.
	GetMod(ctx context.Context, gameID, modID int64) (*model.ModRecord, error)

	// GetModsByNameID fetches mods matching a name_id slug.
	GetModsByNameID(ctx context.Context, gameID int64, nameID string) ([]model.ModRecord, error)
}

// NameStore retains the display name last observed per reference.
// It is the prior-name source for rename detection across runs.
type NameStore interface {
	// PriorName returns the name last observed for a reference, or ""
	// when the reference has never been recorded.
	PriorName(ctx context.Context, reference string) (string, error)

	// RecordName stores the name observed for a reference.
	RecordName(ctx context.Context, reference string, modID int64, name, nameID string) error
}

// ProgressFunc is called after each reference is classified.
// index is zero-based; total is the number of references in the list.
type ProgressFunc func(index, total int, entry model.Entry)

// Reconciler checks mod references against mod.io one at a time, in input
// order. Lookups are strictly sequential: there is no shared mutable state
// across requests and a per-item failure never aborts the remaining loop.
type Reconciler struct {
	client   Client
	gameID   int64
	names    NameStore
	logger   *slog.Logger
	progress ProgressFunc
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// WithNameStore enables rename detection across runs.
// Without a store, renames are only detectable from a stale name_id slug
// embedded in the reference URL.
func WithNameStore(store NameStore) Option {
	return func(r *Reconciler) {
		r.names = store
	}
}

// WithProgress registers a callback invoked after each classification.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Reconciler) {
		r.progress = fn
	}
}

// New creates a Reconciler for the given client and game.
func New(client Client, gameID int64, opts ...Option) *Reconciler {
	r := &Reconciler{
		client: client,
		gameID: gameID,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reconciles the given reference tokens and returns the report.
// Every token yields exactly one report entry, duplicates included.
// The only error Run returns is context cancellation; everything that can
// go wrong with an individual reference is recorded in its entry instead.
func (r *Reconciler) Run(ctx context.Context, modList string, tokens []string) (*model.Report, error) {
	report := model.NewReport(modList, r.gameID)

	for i, token := range tokens {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		entry := r.checkOne(ctx, token)
		report.Add(entry)

		r.logger.Debug("reference checked",
			"reference", entry.Reference,
			"status", entry.Classification.Status.String(),
		)

		if r.progress != nil {
			r.progress(i, len(tokens), entry)
		}
	}

	return report, nil
}

// checkOne looks up and classifies a single reference token.
func (r *Reconciler) checkOne(ctx context.Context, token string) model.Entry {
	entry := model.Entry{Reference: token}

	ref, err := model.NewModReference(token)
	if err != nil {
		entry.Classification = model.LookupFailed("unrecognized reference", 0)
		return entry
	}

	record, classification := r.lookup(ctx, ref)
	if record == nil {
		entry.Classification = classification
		return entry
	}

	entry.Name = record.Name
	entry.ProfileURL = record.ProfileURL
	entry.Classification = r.classify(ctx, ref, record)

	// Remember the observed name so the next run can detect renames.
	// Best effort: a storage failure must not fail the check itself.
	if r.names != nil {
		if err := r.names.RecordName(ctx, ref.String(), record.ID, record.Name, record.NameID); err != nil {
			r.logger.Warn("failed to record mod name", "reference", ref.String(), "error", err)
		}
	}

	return entry
}

// lookup fetches the mod record for a reference.
// Returns a nil record together with the final classification when no
// record is available (deleted, ambiguous, or failed lookup).
func (r *Reconciler) lookup(ctx context.Context, ref model.ModReference) (*model.ModRecord, model.Classification) {
	// References carrying a numeric mod ID get a direct by-ID lookup,
	// which still resolves after a rename changed the URL slug.
	if ref.HasModID() {
		record, err := r.client.GetMod(ctx, r.gameID, ref.ModID())
		if err != nil {
			if errors.Is(err, modio.ErrModNotFound) {
				return nil, model.Deleted()
			}
			return nil, model.LookupFailed(err.Error(), modio.StatusOf(err))
		}
		return record, model.Classification{}
	}

	records, err := r.client.GetModsByNameID(ctx, r.gameID, ref.NameID())
	if err != nil {
		return nil, model.LookupFailed(err.Error(), modio.StatusOf(err))
	}

	switch len(records) {
	case 0:
		return nil, model.Deleted()
	case 1:
		return &records[0], model.Classification{}
	default:
		return nil, model.LookupFailed(modio.ErrAmbiguousReference.Error(), 0)
	}
}

// classify compares a found record against the expected identity.
// Hidden takes precedence over Renamed and Ok.
func (r *Reconciler) classify(ctx context.Context, ref model.ModReference, record *model.ModRecord) model.Classification {
	if record.IsHidden() {
		return model.Hidden()
	}

	priorName := r.priorName(ctx, ref)

	// A stale URL slug is the primary rename signal: mod.io rewrites the
	// slug when the display name changes.
	if ref.NameID() != "" && record.NameID != ref.NameID() {
		oldName := priorName
		if oldName == "" {
			oldName = ref.NameID()
		}
		return model.Renamed(oldName, record.Name)
	}

	if priorName != "" && !namesEqual(priorName, record.Name) {
		return model.Renamed(priorName, record.Name)
	}

	return model.Ok()
}

// priorName returns the last recorded name for a reference, or "".
func (r *Reconciler) priorName(ctx context.Context, ref model.ModReference) string {
	if r.names == nil {
		return ""
	}
	name, err := r.names.PriorName(ctx, ref.String())
	if err != nil {
		r.logger.Warn("failed to load prior name", "reference", ref.String(), "error", err)
		return ""
	}
	return name
}

// namesEqual compares display names after Unicode NFC normalization, so a
// pure normalization difference is not reported as a rename.
func namesEqual(a, b string) bool {
	return norm.NFC.String(strings.TrimSpace(a)) == norm.NFC.String(strings.TrimSpace(b))
}
