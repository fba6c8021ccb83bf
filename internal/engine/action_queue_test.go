package engine

import (
	"sync"
	"testing"
	"time"
)

// waitFor опрашивает условие, пока оно не выполнится или не выйдет таймаут.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Timed out waiting for: %s", what)
}

// recorder потокобезопасно копит имена выполненных юнитов.
type recorder struct {
	mu    sync.Mutex
	names []string
}

func (r *recorder) add(name string) func() {
	return func() {
		r.mu.Lock()
		r.names = append(r.names, name)
		r.mu.Unlock()
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func newTestQueue(t *testing.T) *ActionQueue {
	q := NewActionQueue(0)
	q.Start()
	t.Cleanup(q.Stop)
	return q
}

func TestQueueFIFO(t *testing.T) {
	q := newTestQueue(t)
	r := &recorder{}

	// Пауза, чтобы юниты не выполнились раньше, чем мы их все добавим
	q.Pause()
	q.Enqueue("a", r.add("a"))
	q.Enqueue("b", r.add("b"))
	q.Enqueue("c", r.add("c"))
	q.Resume()

	waitFor(t, "three units", func() bool { return len(r.snapshot()) == 3 })

	got := r.snapshot()
	if got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("Expected [a b c], got %v", got)
	}
}

func TestQueueEnqueueFront(t *testing.T) {
	q := newTestQueue(t)
	r := &recorder{}

	q.Pause()
	q.Enqueue("a", r.add("a"))
	q.Enqueue("b", r.add("b"))
	q.EnqueueFront("c", r.add("c"))
	q.Resume()

	waitFor(t, "three units", func() bool { return len(r.snapshot()) == 3 })

	got := r.snapshot()
	if got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Errorf("Expected [c a b], got %v", got)
	}
}

func TestQueueEnqueueAt(t *testing.T) {
	q := newTestQueue(t)
	r := &recorder{}

	q.Pause()
	q.Enqueue("a", r.add("a"))
	q.Enqueue("b", r.add("b"))
	q.EnqueueAt(1, "c", r.add("c"))
	// Индекс за пределами очереди прижимается к концу
	q.EnqueueAt(99, "d", r.add("d"))
	q.Resume()

	waitFor(t, "four units", func() bool { return len(r.snapshot()) == 4 })

	got := r.snapshot()
	if got[0] != "a" || got[1] != "c" || got[2] != "b" || got[3] != "d" {
		t.Errorf("Expected [a c b d], got %v", got)
	}
}

func TestQueueClear(t *testing.T) {
	q := newTestQueue(t)
	r := &recorder{}

	q.Pause()
	q.Enqueue("a", r.add("a"))
	q.Enqueue("b", r.add("b"))
	q.Clear()
	q.Enqueue("c", r.add("c"))
	q.Resume()

	waitFor(t, "one unit", func() bool { return len(r.snapshot()) == 1 })

	got := r.snapshot()
	if got[0] != "c" {
		t.Errorf("Expected cleared units to be dropped, got %v", got)
	}
}

func TestQueueSurvivesPanic(t *testing.T) {
	q := newTestQueue(t)
	r := &recorder{}

	q.Pause()
	q.Enqueue("boom", func() { panic("unit exploded") })
	q.Enqueue("after", r.add("after"))
	q.Resume()

	waitFor(t, "unit after the panic", func() bool {
		got := r.snapshot()
		return len(got) == 1 && got[0] == "after"
	})
}

func TestQueueOnIdle(t *testing.T) {
	q := NewActionQueue(0)

	var mu sync.Mutex
	idleCount := 0
	q.OnIdle = func() {
		mu.Lock()
		idleCount++
		mu.Unlock()
	}

	q.Start()
	t.Cleanup(q.Stop)

	q.Enqueue("a", func() {})

	waitFor(t, "idle callback", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return idleCount > 0
	})

	if q.Len() != 0 {
		t.Errorf("Expected empty queue at idle, got %d units", q.Len())
	}
}

func TestQueuePauseHoldsUnits(t *testing.T) {
	q := newTestQueue(t)
	r := &recorder{}

	q.Pause()
	q.Enqueue("a", r.add("a"))

	// Даем потребителю шанс ошибиться
	time.Sleep(20 * time.Millisecond)
	if len(r.snapshot()) != 0 {
		t.Fatal("Paused queue must not execute units")
	}
	if q.Len() != 1 {
		t.Errorf("Expected unit to stay queued, got %d", q.Len())
	}

	q.Resume()
	waitFor(t, "unit after resume", func() bool { return len(r.snapshot()) == 1 })
}

func TestQueueOnStep(t *testing.T) {
	q := NewActionQueue(0)

	var mu sync.Mutex
	steps := 0
	q.OnStep = func() {
		mu.Lock()
		steps++
		mu.Unlock()
	}

	q.Start()
	t.Cleanup(q.Stop)

	q.Pause()
	q.Enqueue("a", func() {})
	q.Enqueue("b", func() {})
	q.Resume()

	waitFor(t, "two step callbacks", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return steps == 2
	})
}
