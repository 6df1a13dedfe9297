package game

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs a continuation after a delay without blocking the caller.
// Scheduled continuations are never cancelled.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler schedules on real time via time.AfterFunc.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// ManualScheduler runs continuations only when virtual time is advanced.
// Useful in tests and for stepping a game deterministically.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []manualTask
}

type manualTask struct {
	at  time.Duration
	seq int
	f   func()
}

// AfterFunc implements Scheduler.
func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.tasks = append(m.tasks, manualTask{at: m.now + d, seq: m.seq, f: f})
}

// Advance moves virtual time forward by d and runs every continuation that
// became due, in due order. Continuations run without the scheduler lock,
// so they may schedule further work.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	m.mu.Unlock()
	for {
		f, ok := m.nextDue()
		if !ok {
			return
		}
		f()
	}
}

// Pending returns the number of continuations not yet run.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *ManualScheduler) nextDue() (func(), bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].at == m.tasks[j].at {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].at < m.tasks[j].at
	})
	if len(m.tasks) == 0 || m.tasks[0].at > m.now {
		return nil, false
	}
	t := m.tasks[0]
	m.tasks = m.tasks[1:]
	return t.f, true
}
