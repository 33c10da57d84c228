package ecs

// TimerHandle identifies a timer registered with a TimerManager. The zero
// value is the invalid handle.
type TimerHandle uint64

func (h TimerHandle) IsValid() bool {
	return h != 0
}

type TimerFunc func()

type timer struct {
	rate    float64
	loop    bool
	elapsed float64
	fn      TimerFunc
}

// TimerManager runs interval callbacks off the world clock. It is driven by
// World.Update and is not safe for concurrent use.
type TimerManager struct {
	next   TimerHandle
	timers map[TimerHandle]*timer
	order  []TimerHandle
}

func NewTimerManager() *TimerManager {
	return &TimerManager{timers: make(map[TimerHandle]*timer)}
}

// SetTimer registers fn to run every rate seconds (once if loop is false).
// A non-positive rate or nil fn registers nothing and returns the invalid
// handle.
func (m *TimerManager) SetTimer(rate float64, loop bool, fn TimerFunc) TimerHandle {
	if m == nil || rate <= 0 || fn == nil {
		return 0
	}
	m.next++
	h := m.next
	m.timers[h] = &timer{rate: rate, loop: loop, fn: fn}
	m.order = append(m.order, h)
	return h
}

// SetTimerFor clears whatever timer handle points at and stores the new one.
func (m *TimerManager) SetTimerFor(handle *TimerHandle, rate float64, loop bool, fn TimerFunc) {
	if m == nil || handle == nil {
		return
	}
	m.ClearTimer(handle)
	*handle = m.SetTimer(rate, loop, fn)
}

// ClearTimer cancels the timer and invalidates the handle.
func (m *TimerManager) ClearTimer(handle *TimerHandle) {
	if m == nil || handle == nil {
		return
	}
	delete(m.timers, *handle)
	*handle = 0
}

func (m *TimerManager) IsTimerActive(h TimerHandle) bool {
	if m == nil {
		return false
	}
	_, ok := m.timers[h]
	return ok
}

// TimeRemaining returns seconds until the next firing, or -1 for an unknown
// handle.
func (m *TimerManager) TimeRemaining(h TimerHandle) float64 {
	if m == nil {
		return -1
	}
	t, ok := m.timers[h]
	if !ok {
		return -1
	}
	return t.rate - t.elapsed
}

// Len returns the number of active timers.
func (m *TimerManager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.timers)
}

// Tick advances every timer registered before the call by dt, firing due
// callbacks in registration order. A looping timer fires once per interval
// that elapsed and stops as soon as it is cleared.
func (m *TimerManager) Tick(dt float64) {
	if m == nil || dt <= 0 || len(m.order) == 0 {
		return
	}

	due := append([]TimerHandle(nil), m.order...)
	for _, h := range due {
		t, ok := m.timers[h]
		if !ok {
			continue
		}
		t.elapsed += dt
		for t.elapsed >= t.rate {
			t.elapsed -= t.rate
			if !t.loop {
				delete(m.timers, h)
				t.fn()
				break
			}
			t.fn()
			if m.timers[h] != t {
				break
			}
		}
	}

	live := m.order[:0]
	for _, h := range m.order {
		if _, ok := m.timers[h]; ok {
			live = append(live, h)
		}
	}
	m.order = live
}
