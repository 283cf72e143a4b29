// Package scheduler runs named jobs once a day at a fixed local time.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Tiliavir/hubstaff-activity-report/internal/timecalc"
)

// JobFunc is the unit of work fired by the scheduler.
type JobFunc func() error

// State is the lifecycle state of a Scheduler.
type State int

const (
	StateCreated State = iota
	StateStarted
	StateShutdown
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarted:
		return "started"
	case StateShutdown:
		return "shutdown"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// JobInfo is a point-in-time view of a registered job.
type JobInfo struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Trigger string     `json:"trigger"`
	Next    *time.Time `json:"next_run_time"`
}

type entry struct {
	id      string
	name    string
	trigger string
	seq     int
	cronID  cron.EntryID
}

// Scheduler is a registry of daily jobs keyed by id. Jobs only fire while
// the scheduler is started; a shut down scheduler cannot be restarted.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	loc     *time.Location
	logger  *log.Logger
	state   State
	jobs    map[string]*entry
	seq     int
	stopped context.Context
}

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithLocation sets the time zone triggers are evaluated in. Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) { s.loc = loc }
}

// WithLogger sets the logger for job runs and failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// New creates a scheduler in the created state.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		loc:    time.Local,
		logger: log.Default(),
		jobs:   make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	cronLogger := cron.PrintfLogger(s.logger)
	s.cron = cron.New(
		cron.WithLocation(s.loc),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger)),
	)
	return s
}

// Register installs fn to run every day at trigger (HH:MM). Registering an
// existing id replaces its schedule and function. The job is not run.
func (s *Scheduler) Register(id, name, trigger string, fn JobFunc) error {
	hour, minute, err := timecalc.ParseClock(trigger)
	if err != nil {
		return &InvalidTriggerSpecError{JobID: id, Spec: trigger, Err: err}
	}
	if name == "" {
		name = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	cronID, err := s.cron.AddFunc(spec, func() { s.invoke(id, fn) })
	if err != nil {
		return &InvalidTriggerSpecError{JobID: id, Spec: trigger, Err: err}
	}

	if old, ok := s.jobs[id]; ok {
		s.cron.Remove(old.cronID)
		old.name, old.trigger, old.cronID = name, trigger, cronID
		s.logger.Printf("Replaced job %q, now runs at %s", id, trigger)
		return nil
	}

	s.seq++
	s.jobs[id] = &entry{id: id, name: name, trigger: trigger, seq: s.seq, cronID: cronID}
	s.logger.Printf("Registered job %q to run at %s", id, trigger)
	return nil
}

// Unregister removes the job with the given id, if any.
func (s *Scheduler) Unregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.jobs[id]
	if !ok {
		return
	}
	s.cron.Remove(e.cronID)
	delete(s.jobs, id)
	s.logger.Printf("Removed job %q from scheduler", id)
}

// Jobs returns the registered jobs in registration order. Next is the next
// fire time, or nil once the scheduler is shut down.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]*entry, 0, len(s.jobs))
	for _, e := range s.jobs {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	now := time.Now().In(s.loc)
	out := make([]JobInfo, 0, len(entries))
	for _, e := range entries {
		info := JobInfo{ID: e.id, Name: e.name, Trigger: e.trigger}
		ce := s.cron.Entry(e.cronID)
		var next time.Time
		switch s.state {
		case StateStarted:
			next = ce.Next
		case StateCreated:
			if ce.Schedule != nil {
				next = ce.Schedule.Next(now)
			}
		}
		if !next.IsZero() {
			info.Next = &next
		}
		out = append(out, info)
	}
	return out
}

// State returns the lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start begins the timing loop. Calling it again, or after Shutdown, does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCreated {
		return
	}
	s.cron.Start()
	s.state = StateStarted
	s.logger.Printf("Job scheduler started with %d job(s)", len(s.jobs))
}

// Shutdown stops the timing loop. No job is fired after it returns; jobs
// already running are left to finish, and the returned context is done
// once they have.
func (s *Scheduler) Shutdown() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateShutdown:
		return s.stopped
	case StateStarted:
		s.stopped = s.cron.Stop()
	default:
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s.stopped = ctx
	}
	s.state = StateShutdown
	s.logger.Printf("Job scheduler stopped")
	return s.stopped
}

// invoke runs one firing of a job and logs its outcome. Panics are handled
// by the cron recover wrapper around it.
func (s *Scheduler) invoke(id string, fn JobFunc) {
	start := time.Now()
	s.logger.Printf("Running job %q", id)
	if err := fn(); err != nil {
		s.logger.Printf("ERROR: job %q failed after %s: %v", id, time.Since(start).Round(time.Millisecond), err)
		return
	}
	s.logger.Printf("Job %q finished in %s", id, time.Since(start).Round(time.Millisecond))
}
