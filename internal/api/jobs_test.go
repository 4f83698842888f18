package api

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestJobLifecycle(t *testing.T) {
	s := NewJobStore()

	job := s.Create()
	if job.ID == "" {
		t.Fatal("job ID empty")
	}
	if job.Status != JobStatusPending {
		t.Errorf("status = %s, want pending", job.Status)
	}

	if err := s.Update(job.ID, JobStatusRunning, nil, ""); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, ok := s.Get(job.ID)
	if !ok || got.Status != JobStatusRunning {
		t.Errorf("job = %+v", got)
	}

	result := &ImportResult{Shape: "flat-list", Verses: 10, Duration: "1ms"}
	if err := s.Update(job.ID, JobStatusCompleted, result, ""); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ = s.Get(job.ID)
	if got.CompletedAt == "" {
		t.Error("CompletedAt not set on completion")
	}
	if got.Result == nil || got.Result.Verses != 10 {
		t.Errorf("Result = %+v", got.Result)
	}
}

func TestJobUpdateUnknown(t *testing.T) {
	s := NewJobStore()
	if err := s.Update("missing", JobStatusFailed, nil, "boom"); err == nil {
		t.Error("Update() of unknown job succeeded")
	}
}

func TestJobList(t *testing.T) {
	s := NewJobStore()
	s.Create()
	s.Create()
	if got := len(s.List()); got != 2 {
		t.Errorf("List() returned %d jobs, want 2", got)
	}
}

func TestJobListNewestFirst(t *testing.T) {
	s := NewJobStore()
	stamps := []string{
		"2026-01-01T00:00:01Z",
		"2026-01-01T00:00:03Z",
		"2026-01-01T00:00:02Z",
	}
	for i, ts := range stamps {
		id := fmt.Sprintf("job-%d", i)
		s.jobs[id] = &Job{ID: id, Status: JobStatusPending, CreatedAt: ts, UpdatedAt: ts}
	}

	got := s.List()
	want := []string{
		"2026-01-01T00:00:03Z",
		"2026-01-01T00:00:02Z",
		"2026-01-01T00:00:01Z",
	}
	for i := range want {
		if got[i].CreatedAt != want[i] {
			t.Errorf("List()[%d].CreatedAt = %s, want %s", i, got[i].CreatedAt, want[i])
		}
	}
}

// TestJobCopiesAreIsolated checks that jobs handed out by the store are
// detached: store updates never show through an earlier copy, and writing to
// a copy never reaches the store.
func TestJobCopiesAreIsolated(t *testing.T) {
	s := NewJobStore()
	job := s.Create()

	result := &ImportResult{Shape: "osis-xml", Verses: 5, Duration: "2ms"}
	if err := s.Update(job.ID, JobStatusCompleted, result, ""); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if job.Status != JobStatusPending {
		t.Errorf("copy from Create() mutated by Update: %s", job.Status)
	}

	got, _ := s.Get(job.ID)
	got.Status = JobStatusFailed
	got.Result.Verses = 99

	again, _ := s.Get(job.ID)
	if again.Status != JobStatusCompleted || again.Result.Verses != 5 {
		t.Errorf("store mutated through a returned copy: %+v", again)
	}
}

// TestJobConcurrentPolling drives the async-import access pattern: one
// goroutine updating a job while readers fetch and JSON-encode it, the way
// the job endpoints do while an import runs.
func TestJobConcurrentPolling(t *testing.T) {
	s := NewJobStore()
	job := s.Create()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = s.Update(job.ID, JobStatusRunning, nil, "")
			_ = s.Update(job.ID, JobStatusCompleted,
				&ImportResult{Shape: "flat-list", Verses: i, Duration: "1ms"}, "")
		}
	}()

	for i := 0; i < 200; i++ {
		got, ok := s.Get(job.ID)
		if !ok {
			t.Fatal("job disappeared")
		}
		if _, err := json.Marshal(got); err != nil {
			t.Fatalf("encoding job copy: %v", err)
		}
		for _, j := range s.List() {
			if _, err := json.Marshal(j); err != nil {
				t.Fatalf("encoding listed job: %v", err)
			}
		}
	}
	<-done
}
