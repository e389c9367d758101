package cart

import (
	"sync"
	"testing"
)

func TestSessionLocksSerializeSameSession(t *testing.T) {
	locks := newSessionLocks()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.lock("sess-1")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("expected 50 serialized increments got %d", counter)
	}
}

func TestSessionLocksReleaseCleansUpIdleEntries(t *testing.T) {
	locks := newSessionLocks()

	release := locks.lock("sess-1")
	release()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.entries) != 0 {
		t.Fatalf("expected no retained entries got %d", len(locks.entries))
	}
}

func TestSessionLocksIndependentSessions(t *testing.T) {
	locks := newSessionLocks()

	releaseA := locks.lock("sess-a")
	defer releaseA()

	done := make(chan struct{})
	go func() {
		release := locks.lock("sess-b")
		release()
		close(done)
	}()

	<-done
}
