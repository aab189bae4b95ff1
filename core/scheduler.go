package core

// Timer represents a scheduled event
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer

	queued bool
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// Scheduler dispatches timers in WakeTime order against a monotonic
// microsecond clock supplied by the caller on every Dispatch.
type Scheduler struct {
	timerList   *Timer
	currentTime uint32
}

// NewScheduler creates an empty scheduler starting at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the time of the most recent dispatch
func (s *Scheduler) Now() uint32 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return s.currentTime
}

// Add adds a timer to the schedule. Adding a timer that is already queued is
// a no-op.
func (s *Scheduler) Add(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	s.insertTimer(t)
}

// Remove takes a timer off the schedule if it is queued
func (s *Scheduler) Remove(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	s.deleteTimer(t)
}

// insertTimer inserts a timer in sorted order by WakeTime.
// Caller must hold the critical section.
func (s *Scheduler) insertTimer(t *Timer) {
	if t.queued {
		return
	}
	t.queued = true

	if s.timerList == nil || timeBefore(t.WakeTime, s.timerList.WakeTime) {
		t.Next = s.timerList
		s.timerList = t
		return
	}

	current := s.timerList
	for current.Next != nil && !timeBefore(t.WakeTime, current.Next.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// deleteTimer unlinks a timer. Caller must hold the critical section.
func (s *Scheduler) deleteTimer(t *Timer) {
	if !t.queued {
		return
	}
	t.queued = false

	if s.timerList == t {
		s.timerList = t.Next
		t.Next = nil
		return
	}
	for current := s.timerList; current != nil; current = current.Next {
		if current.Next == t {
			current.Next = t.Next
			break
		}
	}
	t.Next = nil
}

// Dispatch advances the clock to now and runs every due timer. Handlers run
// inside the critical section and must not call back into locking APIs.
func (s *Scheduler) Dispatch(now uint32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	s.currentTime = now
	for s.timerList != nil && !timeBefore(now, s.timerList.WakeTime) {
		timer := s.timerList
		s.timerList = timer.Next
		timer.Next = nil
		timer.queued = false

		if timer.Handler(timer) == SF_RESCHEDULE {
			s.insertTimer(timer)
		}
	}
}

// Pending returns the number of queued timers
func (s *Scheduler) Pending() int {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	n := 0
	for t := s.timerList; t != nil; t = t.Next {
		n++
	}
	return n
}
