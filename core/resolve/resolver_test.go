package resolve

import (
	"context"
	"testing"
	"time"

	"github.com/FocuswithJustin/AcaciaBible/core/corpus"
	"github.com/FocuswithJustin/AcaciaBible/core/errors"
)

// fakeFetcher counts calls and replays a scripted response.
type fakeFetcher struct {
	calls  int
	result *FetchResult
	err    error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (*FetchResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func seededStore(t *testing.T) *corpus.Store {
	t.Helper()
	s := corpus.NewStore()
	err := s.Load([]byte(`{
		"John": {"3": {"16": "For God so loved the world."}},
		"Genesis": {"1": {"1": "In the beginning.", "2": "And the earth was without form."}}
	}`))
	if err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return s
}

func TestGetContentLocalHit(t *testing.T) {
	f := &fakeFetcher{}
	r := New(seededStore(t), WithFetcher(f))

	res := r.GetContent(context.Background(), "Jn 3:16")
	if !res.Found() {
		t.Fatalf("status = %s, want found", res.Status)
	}
	if got := res.Passage.Text(); got != "For God so loved the world." {
		t.Errorf("Text() = %q", got)
	}
	if f.calls != 0 {
		t.Errorf("fetcher called %d times on a local hit", f.calls)
	}
}

func TestGetContentParseFailures(t *testing.T) {
	r := New(seededStore(t))

	tests := []struct {
		text   string
		status Status
	}{
		{"", StatusInvalidReference},
		{"   ", StatusInvalidReference},
		{"Hezekiah 3:16", StatusUnknownBook},
		{"John 3:16:21", StatusInvalidReference},
		{"John 0:1", StatusInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := r.GetContent(context.Background(), tt.text)
			if res.Status != tt.status {
				t.Errorf("status = %s, want %s", res.Status, tt.status)
			}
			if res.Passage != nil {
				t.Error("failure result carries a passage")
			}
			if res.Err == nil {
				t.Error("failure result carries no error")
			}
		})
	}
}

func TestGetContentMissWithoutFetcher(t *testing.T) {
	r := New(seededStore(t))

	res := r.GetContent(context.Background(), "Obadiah 1")
	if res.Status != StatusNotFound {
		t.Fatalf("status = %s, want not_found", res.Status)
	}
	if !errors.Is(res.Err, errors.ErrNotFound) {
		t.Errorf("error %v does not wrap ErrNotFound", res.Err)
	}
}

func TestGetContentFetchOnce(t *testing.T) {
	f := &fakeFetcher{result: &FetchResult{
		Canonical: "Obadiah 1:1-2",
		Passages:  []string{"[1:1] The vision of Obadiah. [1:2] Behold, I have made thee small."},
	}}
	r := New(seededStore(t), WithFetcher(f))

	res := r.GetContent(context.Background(), "Obad 1:1-2")
	if !res.Found() {
		t.Fatalf("status = %s, want found", res.Status)
	}
	if len(res.Passage.Verses) != 2 {
		t.Fatalf("got %d verses, want 2", len(res.Passage.Verses))
	}
	if f.calls != 1 {
		t.Fatalf("fetcher called %d times, want 1", f.calls)
	}

	// Second resolution is served from the merged corpus.
	res = r.GetContent(context.Background(), "Obadiah 1:1-2")
	if !res.Found() {
		t.Fatalf("second status = %s, want found", res.Status)
	}
	if f.calls != 1 {
		t.Errorf("fetcher called %d times after merge, want 1", f.calls)
	}
}

func TestGetContentNegativeOutcomeCached(t *testing.T) {
	f := &fakeFetcher{err: errors.NewAPI(503, "upstream unavailable")}
	r := New(seededStore(t), WithFetcher(f))

	res := r.GetContent(context.Background(), "Jude 1:3")
	if res.Status != StatusAPIError {
		t.Fatalf("status = %s, want api_error", res.Status)
	}

	res = r.GetContent(context.Background(), "Jude 1:3")
	if res.Status != StatusAPIError {
		t.Fatalf("second status = %s, want api_error", res.Status)
	}
	if f.calls != 1 {
		t.Errorf("fetcher called %d times, want 1 (failed outcome should be cached)", f.calls)
	}
}

func TestGetContentOutcomeCacheExpires(t *testing.T) {
	f := &fakeFetcher{err: errors.NewAPI(503, "upstream unavailable")}
	r := New(seededStore(t), WithFetcher(f), WithFetchTTL(5*time.Millisecond))

	r.GetContent(context.Background(), "Jude 1:3")
	time.Sleep(10 * time.Millisecond)
	r.GetContent(context.Background(), "Jude 1:3")

	if f.calls != 2 {
		t.Errorf("fetcher called %d times across TTL windows, want 2", f.calls)
	}
}

func TestGetContentMissingCredential(t *testing.T) {
	f := &fakeFetcher{err: &errors.MissingCredentialError{Reference: "Jude 1:3"}}
	r := New(seededStore(t), WithFetcher(f))

	res := r.GetContent(context.Background(), "Jude 1:3")
	if res.Status != StatusMissingCredential {
		t.Fatalf("status = %s, want missing_credential", res.Status)
	}

	// Credential failures are not cached; fixing the config should work on
	// the next call.
	r.GetContent(context.Background(), "Jude 1:3")
	if f.calls != 2 {
		t.Errorf("fetcher called %d times, want 2", f.calls)
	}
}

func TestGetContentRemoteEmpty(t *testing.T) {
	f := &fakeFetcher{result: &FetchResult{
		Canonical: "Jude 1:3",
		Passages:  []string{"no verse markers at all"},
	}}
	r := New(seededStore(t), WithFetcher(f))

	res := r.GetContent(context.Background(), "Jude 1:3")
	if res.Status != StatusFormatError {
		t.Fatalf("status = %s, want format_error", res.Status)
	}
	if !errors.Is(res.Err, errors.ErrFormat) {
		t.Errorf("error %v does not wrap ErrFormat", res.Err)
	}
}

func TestGetContentPartialLocalRange(t *testing.T) {
	f := &fakeFetcher{}
	r := New(seededStore(t), WithFetcher(f))

	// Genesis 1 holds verses 1-2; a wider range still resolves locally.
	res := r.GetContent(context.Background(), "Genesis 1:1-10")
	if !res.Found() {
		t.Fatalf("status = %s, want found", res.Status)
	}
	if len(res.Passage.Verses) != 2 {
		t.Errorf("got %d verses, want 2", len(res.Passage.Verses))
	}
	if f.calls != 0 {
		t.Errorf("fetcher called %d times for a partial local hit", f.calls)
	}
}
