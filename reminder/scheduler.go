// Package reminder manages daily quote-reminder triggers.
//
// The scheduler owns a single goroutine that checks wall-clock time against
// the set of live reminders and delivers a quote through a Notifier when one
// comes due. The authoritative reminder list is persisted through the
// Manager, so live triggers can be rebuilt after a restart with Restore.
package reminder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/malcomkamau/motivation"
)

// Clock abstracts time.Now so tests can drive the scheduler.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// defaultTick is how often the scheduler compares wall-clock time against
// live reminders. It must be shorter than a minute so no HH:MM slot is
// skipped.
const defaultTick = 20 * time.Second

// entry is one live trigger plus its dedup state.
type entry struct {
	reminder motivation.Reminder
	// lastFiredDay is the "2006-01-02" day the entry last fired, so a
	// reminder delivers at most once per day.
	lastFiredDay string
}

// Scheduler registers, restores and fires daily reminders.
type Scheduler struct {
	manager  *motivation.Manager
	notifier motivation.Notifier
	logger   motivation.Logger
	clock    Clock
	tick     time.Duration

	mu     sync.Mutex
	active map[string][]*entry // userID -> live triggers
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithNotifier sets the delivery implementation. Defaults to LogNotifier.
func WithNotifier(n motivation.Notifier) SchedulerOption {
	return func(s *Scheduler) {
		s.notifier = n
	}
}

// WithLogger sets the logger. Defaults to the manager's logger.
func WithLogger(l motivation.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// WithClock sets the time source. Used by tests.
func WithClock(c Clock) SchedulerOption {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithTick sets the check interval.
func WithTick(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.tick = d
	}
}

// NewScheduler creates a Scheduler over the given manager.
func NewScheduler(manager *motivation.Manager, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		manager: manager,
		logger:  manager.Logger(),
		clock:   systemClock{},
		tick:    defaultTick,
		active:  make(map[string][]*entry),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.notifier == nil {
		s.notifier = NewLogNotifier(s.logger)
	}
	return s
}

// Apply replaces the user's reminder schedule with one reminder per
// requested time: it cancels the previously registered reminders, picks a
// random quote from the user's preference-filtered pool for each time,
// registers a repeating daily trigger, and persists the resulting list.
// Duplicate times collapse to one reminder. An empty times list equals
// Cancel. The persisted list and the live trigger set always match when
// Apply returns.
func (s *Scheduler) Apply(ctx context.Context, userID string, times []motivation.TimeOfDay) ([]motivation.Reminder, error) {
	if userID == "" {
		return nil, motivation.ErrInvalidInput
	}

	times = dedupeTimes(times)
	if len(times) == 0 {
		return nil, s.Cancel(ctx, userID)
	}

	pool, err := s.manager.Pool(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, motivation.ErrNoQuotes
	}

	now := s.clock.Now()
	reminders := make([]motivation.Reminder, 0, len(times))
	for _, at := range times {
		reminders = append(reminders, motivation.Reminder{
			ID:        uuid.NewString(),
			UserID:    userID,
			At:        at,
			QuoteID:   pool[rand.IntN(len(pool))].ID,
			CreatedAt: now,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.manager.SaveReminders(ctx, userID, reminders); err != nil {
		return nil, fmt.Errorf("failed to persist reminders: %w", err)
	}

	entries := make([]*entry, len(reminders))
	for i := range reminders {
		entries[i] = &entry{reminder: reminders[i]}
	}
	s.active[userID] = entries

	s.logger.Info("Applied reminder schedule", "user_id", userID, "count", len(reminders))
	return reminders, nil
}

// Cancel removes every reminder registered for the user, live and
// persisted. Unknown users are a no-op.
func (s *Scheduler) Cancel(ctx context.Context, userID string) error {
	if userID == "" {
		return motivation.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.manager.SaveReminders(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}
	delete(s.active, userID)

	s.logger.Info("Canceled reminders", "user_id", userID)
	return nil
}

// List returns the user's persisted reminders sorted by time of day.
func (s *Scheduler) List(ctx context.Context, userID string) ([]motivation.Reminder, error) {
	reminders, err := s.manager.Reminders(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].At.Before(reminders[j].At)
	})
	return reminders, nil
}

// Restore rebuilds the live trigger set from persisted reminders. Called
// once at daemon startup before Run.
func (s *Scheduler) Restore(ctx context.Context) error {
	all, err := s.manager.AllReminders(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore reminders: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = make(map[string][]*entry, len(all))
	total := 0
	for userID, reminders := range all {
		entries := make([]*entry, len(reminders))
		for i := range reminders {
			entries[i] = &entry{reminder: reminders[i]}
		}
		s.active[userID] = entries
		total += len(entries)
	}

	s.logger.Info("Restored reminder schedules", "users", len(all), "reminders", total)
	return nil
}

// Run fires due reminders until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.logger.Info("Reminder scheduler started", "tick", s.tick.String())
	for {
		select {
		case <-ticker.C:
			s.fireDue(ctx, s.clock.Now())
		case <-ctx.Done():
			s.logger.Info("Reminder scheduler stopped")
			return ctx.Err()
		}
	}
}

// fireDue delivers every reminder whose HH:MM matches now and which has not
// fired yet today.
func (s *Scheduler) fireDue(ctx context.Context, now time.Time) {
	day := now.Format("2006-01-02")

	s.mu.Lock()
	var due []motivation.Reminder
	for _, entries := range s.active {
		for _, e := range entries {
			if e.reminder.At.Hour != now.Hour() || e.reminder.At.Minute != now.Minute() {
				continue
			}
			if e.lastFiredDay == day {
				continue
			}
			e.lastFiredDay = day
			due = append(due, e.reminder)
		}
	}
	s.mu.Unlock()

	for _, r := range due {
		s.deliver(ctx, r)
	}
}

// deliver resolves the reminder's quote and hands it to the notifier. If
// the pinned quote has been deleted since scheduling, a fresh random pick
// from the user's pool substitutes for it.
func (s *Scheduler) deliver(ctx context.Context, r motivation.Reminder) {
	quote, err := s.manager.Quote(ctx, r.QuoteID)
	if err != nil {
		s.logger.Warn("Reminder quote unavailable, picking substitute",
			"user_id", r.UserID, "quote_id", r.QuoteID, "error", err)
		quote, err = s.manager.RandomQuote(ctx, r.UserID)
		if err != nil {
			s.logger.Error("Failed to pick substitute quote", "user_id", r.UserID, "error", err)
			return
		}
	}

	if err := s.notifier.Notify(ctx, r.UserID, *quote); err != nil {
		s.logger.Error("Failed to deliver reminder",
			"user_id", r.UserID, "reminder_id", r.ID, "error", err)
		return
	}

	s.logger.Debug("Delivered reminder", "user_id", r.UserID, "reminder_id", r.ID, "at", r.At.String())
}

// dedupeTimes sorts the requested times and collapses duplicates.
func dedupeTimes(times []motivation.TimeOfDay) []motivation.TimeOfDay {
	sort.Slice(times, func(i, j int) bool {
		return times[i].Before(times[j])
	})

	out := times[:0]
	for i, t := range times {
		if i > 0 && t == times[i-1] {
			continue
		}
		out = append(out, t)
	}
	return out
}
