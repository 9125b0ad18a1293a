package rush

import (
	"reflect"
	"testing"
	"time"
)

func TestSchedulerOrdersByDueClassSeq(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.every(10*time.Millisecond, classSpawner, func() { order = append(order, "spawnA") })
	s.every(10*time.Millisecond, classMovement, func() { order = append(order, "move") })
	s.every(10*time.Millisecond, classSpawner, func() { order = append(order, "spawnB") })
	s.After(10*time.Millisecond, func() { order = append(order, "timer") })

	fired := s.Advance(10 * time.Millisecond)

	want := []string{"timer", "move", "spawnA", "spawnB"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if fired != 4 {
		t.Errorf("fired = %d, want 4", fired)
	}
}

func TestSchedulerPeriodicAndNow(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	s.every(16*time.Millisecond, classMovement, func() { at = append(at, s.Now()) })

	s.Advance(50 * time.Millisecond)

	want := []time.Duration{16 * time.Millisecond, 32 * time.Millisecond, 48 * time.Millisecond}
	if !reflect.DeepEqual(at, want) {
		t.Errorf("fired at %v, want %v", at, want)
	}
	if s.Now() != 50*time.Millisecond {
		t.Errorf("Now = %v, want 50ms", s.Now())
	}
}

func TestSchedulerSplitAdvanceMatchesSingle(t *testing.T) {
	run := func(steps []time.Duration) []time.Duration {
		s := NewScheduler()
		var at []time.Duration
		s.every(16*time.Millisecond, classMovement, func() { at = append(at, s.Now()) })
		s.every(50*time.Millisecond, classSpawner, func() { at = append(at, -s.Now()) })
		for _, d := range steps {
			s.Advance(d)
		}
		return at
	}

	single := run([]time.Duration{time.Second})
	split := run([]time.Duration{333 * time.Millisecond, 17 * time.Millisecond, 650 * time.Millisecond})
	if !reflect.DeepEqual(single, split) {
		t.Error("splitting Advance changed the firing sequence")
	}
}

func TestSchedulerCancelAndRemaining(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(100*time.Millisecond, func() { fired = true })

	s.Advance(40 * time.Millisecond)
	rem, ok := s.Remaining(id)
	if !ok || rem != 60*time.Millisecond {
		t.Errorf("Remaining = %v, %v; want 60ms, true", rem, ok)
	}

	if !s.Cancel(id) {
		t.Fatal("Cancel returned false for a pending timer")
	}
	if s.Cancel(id) {
		t.Error("second Cancel returned true")
	}

	s.Advance(time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
	if _, ok := s.Remaining(id); ok {
		t.Error("Remaining reported a cancelled timer")
	}
}

func TestSchedulerCancelAllStopsAdvance(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.every(10*time.Millisecond, classMovement, func() {
		count++
		if count == 3 {
			s.CancelAll()
		}
	})
	later := false
	s.After(500*time.Millisecond, func() { later = true })

	s.Advance(time.Second)

	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if later {
		t.Error("timer fired after CancelAll")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
	if s.Now() != 30*time.Millisecond {
		t.Errorf("Now = %v, want 30ms", s.Now())
	}
}

func TestSchedulerInterruptKeepsTasks(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.every(10*time.Millisecond, classMovement, func() {
		count++
		if count == 2 {
			s.Interrupt()
		}
	})

	s.Advance(100 * time.Millisecond)
	if count != 2 || s.Now() != 20*time.Millisecond {
		t.Fatalf("after interrupt: count=%d now=%v", count, s.Now())
	}

	s.Advance(30 * time.Millisecond)
	if count != 5 {
		t.Errorf("count = %d, want 5 after resuming", count)
	}
}

func TestSchedulerReset(t *testing.T) {
	s := NewScheduler()
	s.After(time.Second, func() {})
	s.Advance(100 * time.Millisecond)
	s.Reset()

	if s.Now() != 0 || s.Pending() != 0 {
		t.Errorf("after Reset: now=%v pending=%d", s.Now(), s.Pending())
	}
}
