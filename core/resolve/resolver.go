// Package resolve turns free-form reference text into passage content,
// consulting the local corpus first and an optional remote fetcher on miss.
package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FocuswithJustin/AcaciaBible/core/canon"
	"github.com/FocuswithJustin/AcaciaBible/core/corpus"
	"github.com/FocuswithJustin/AcaciaBible/core/errors"
	"github.com/FocuswithJustin/AcaciaBible/core/ref"
	"github.com/FocuswithJustin/AcaciaBible/internal/cache"
)

// Status tags every resolution outcome so callers can react without
// matching on error strings.
type Status string

const (
	StatusFound             Status = "found"
	StatusInvalidReference  Status = "invalid_reference"
	StatusUnknownBook       Status = "unknown_book"
	StatusNotFound          Status = "not_found"
	StatusMissingCredential Status = "missing_credential"
	StatusAPIError          Status = "api_error"
	StatusFormatError       Status = "format_error"
)

// Result is the outcome of one GetContent call. Passage is non-nil only
// when Status is StatusFound.
type Result struct {
	Status  Status          `json:"status"`
	Passage *corpus.Passage `json:"passage,omitempty"`
	Message string          `json:"message,omitempty"`
	Err     error           `json:"-"`
}

// Found reports whether the resolution produced content.
func (r Result) Found() bool { return r.Status == StatusFound }

// FetchResult is the remote fetcher's answer: the canonical form of the
// reference as the remote service understood it, plus passage text blobs
// carrying chapter:verse markers.
type FetchResult struct {
	Canonical string
	Passages  []string
}

// Fetcher retrieves passage content from a remote source. Implementations
// return ErrMissingCredential (wrapped or bare) when they have no way to
// authenticate, without attempting a network call.
type Fetcher interface {
	Fetch(ctx context.Context, reference string) (*FetchResult, error)
}

// outcome is a cached non-local resolution, positive or negative, so a
// reference is fetched at most once per TTL window.
type outcome struct {
	status  Status
	message string
}

// DefaultFetchTTL bounds how long fetch outcomes are remembered.
const DefaultFetchTTL = 15 * time.Minute

// Resolver coordinates the parser, the corpus store, and the fetcher.
type Resolver struct {
	store        *corpus.Store
	fetcher      Fetcher
	fetchEnabled bool
	outcomes     *cache.TTLCache[string, outcome]
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFetcher enables remote fallback through f.
func WithFetcher(f Fetcher) Option {
	return func(r *Resolver) {
		r.fetcher = f
		r.fetchEnabled = f != nil
	}
}

// WithFetchTTL overrides how long fetch outcomes are cached.
func WithFetchTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		r.outcomes = cache.New[string, outcome](ttl)
	}
}

// New creates a Resolver over the given store. Without WithFetcher, misses
// are final.
func New(store *corpus.Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		outcomes: cache.New[string, outcome](DefaultFetchTTL),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store exposes the underlying corpus store.
func (r *Resolver) Store() *corpus.Store { return r.store }

// FetchEnabled reports whether remote fallback is configured.
func (r *Resolver) FetchEnabled() bool { return r.fetchEnabled }

// GetContent resolves free-form reference text. The local corpus always
// wins; only a local miss consults the fetcher, and each reference is
// fetched at most once per TTL window regardless of outcome. A not_found,
// api_error, or format_error answer is therefore served from the outcome
// cache until the window (DefaultFetchTTL unless WithFetchTTL overrides it)
// expires; missing_credential is never cached, so configuring a credential
// takes effect on the next call.
func (r *Resolver) GetContent(ctx context.Context, text string) Result {
	loc := ref.Parse(text)
	if loc == nil {
		return r.classifyParseFailure(text)
	}

	if passage := r.store.Lookup(*loc); !passage.IsEmpty() {
		return Result{Status: StatusFound, Passage: passage}
	}

	key := loc.String()
	if prior, ok := r.outcomes.Get(key); ok {
		return Result{Status: prior.status, Message: prior.message}
	}

	if !r.fetchEnabled {
		return Result{
			Status:  StatusNotFound,
			Message: fmt.Sprintf("%s not in local corpus and remote fetch is disabled", key),
			Err:     errors.NewNotFound(key),
		}
	}

	return r.fetchAndMerge(ctx, *loc, key)
}

// classifyParseFailure separates structurally broken input from input whose
// book name simply is not recognized.
func (r *Resolver) classifyParseFailure(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{
			Status:  StatusInvalidReference,
			Message: "empty reference",
			Err:     errors.NewInvalidReference(text),
		}
	}
	if canon.ExtractBookPrefix(trimmed) == "" {
		return Result{
			Status:  StatusUnknownBook,
			Message: fmt.Sprintf("no recognizable book name in %q", trimmed),
			Err:     errors.NewUnknownBook(text),
		}
	}
	return Result{
		Status:  StatusInvalidReference,
		Message: fmt.Sprintf("%q is not a well-formed reference", trimmed),
		Err:     errors.NewInvalidReference(text),
	}
}

// fetchAndMerge performs the single remote attempt for a reference and
// records the outcome, success or failure, in the TTL cache.
func (r *Resolver) fetchAndMerge(ctx context.Context, loc ref.Locator, key string) Result {
	fetched, err := r.fetcher.Fetch(ctx, key)
	if err != nil {
		if errors.Is(err, errors.ErrMissingCredential) {
			// Not cached: supplying a credential should take effect
			// immediately.
			return Result{
				Status:  StatusMissingCredential,
				Message: "remote fetch requires a credential",
				Err:     err,
			}
		}
		res := Result{
			Status:  StatusAPIError,
			Message: err.Error(),
			Err:     err,
		}
		r.outcomes.Set(key, outcome{status: res.Status, message: res.Message})
		return res
	}

	converted, err := corpus.ConvertPassages(fetched.Canonical, fetched.Passages)
	if err != nil {
		res := Result{
			Status:  StatusFormatError,
			Message: err.Error(),
			Err:     err,
		}
		r.outcomes.Set(key, outcome{status: res.Status, message: res.Message})
		return res
	}

	r.store.Merge(converted)

	passage := r.store.Lookup(loc)
	if passage.IsEmpty() {
		res := Result{
			Status:  StatusNotFound,
			Message: fmt.Sprintf("remote source had no content for %s", key),
			Err:     errors.NewNotFound(key),
		}
		r.outcomes.Set(key, outcome{status: res.Status, message: res.Message})
		return res
	}

	// Success needs no cache entry: the merged content now satisfies the
	// local lookup directly.
	return Result{Status: StatusFound, Passage: passage}
}
