package batch

import (
	"sync"
	"testing"
	"time"

	"wordflow/pkg/models"
)

func TestSession_ProgressInvariant(t *testing.T) {
	session := NewSession(20)
	session.Begin()

	stop := make(chan struct{})
	violations := make(chan string, 1)

	// Observer: processed == successful + failed and processed never
	// decreases, at every observable point.
	go func() {
		lastProcessed := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			view := session.View()
			p := view.Progress
			if p.Processed != p.Successful+p.Failed {
				select {
				case violations <- "processed != successful + failed":
				default:
				}
				return
			}
			if p.Processed < lastProcessed {
				select {
				case violations <- "processed decreased":
				default:
				}
				return
			}
			lastProcessed = p.Processed
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%3 == 0 {
				session.RecordFailure(models.BatchItemResult{ImageName: "img", Error: "engine failure"})
			} else {
				session.RecordSuccess(models.BatchItemResult{ImageName: "img", Success: true})
			}
		}(i)
	}
	wg.Wait()
	close(stop)

	select {
	case v := <-violations:
		t.Fatal(v)
	default:
	}

	view := session.View()
	if view.Progress.Processed != 20 {
		t.Errorf("processed = %d, want 20", view.Progress.Processed)
	}
	if view.Status != string(StatusCompleted) {
		t.Errorf("status = %s, want completed", view.Status)
	}
}

func TestSession_AllFailed(t *testing.T) {
	session := NewSession(2)
	session.Begin()
	session.RecordFailure(models.BatchItemResult{ImageName: "a", Error: "boom"})
	session.RecordFailure(models.BatchItemResult{ImageName: "b", Error: "boom"})

	view := session.View()
	if view.Status != string(StatusFailed) {
		t.Errorf("status = %s, want failed", view.Status)
	}
}

func TestSession_ResultsHiddenUntilTerminal(t *testing.T) {
	session := NewSession(2)
	session.Begin()
	session.RecordSuccess(models.BatchItemResult{ImageName: "a", Success: true})

	if view := session.View(); view.Results != nil {
		t.Errorf("results exposed before terminal: %v", view.Results)
	}

	session.RecordSuccess(models.BatchItemResult{ImageName: "b", Success: true})
	if view := session.View(); len(view.Results) != 2 {
		t.Errorf("results after terminal = %d, want 2", len(view.Results))
	}
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(time.Hour)
	session := NewSession(1)
	store.Add(session)

	if got := store.Get(session.ID); got != session {
		t.Error("Get did not return the stored session")
	}
	if got := store.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}
}

func TestSessionStore_PrunesExpired(t *testing.T) {
	store := NewSessionStore(time.Millisecond)

	old := NewSession(0) // zero jobs: terminal immediately
	old.CreatedAt = time.Now().Add(-time.Minute)
	store.Add(old)

	time.Sleep(5 * time.Millisecond)
	store.Add(NewSession(1))

	if got := store.Get(old.ID); got != nil {
		t.Error("expected expired terminal session to be pruned")
	}
}
