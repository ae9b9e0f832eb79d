package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/arlobridge/calx/internal/config"
	"github.com/arlobridge/calx/internal/datekey"
	"github.com/arlobridge/calx/internal/discord"
	"github.com/arlobridge/calx/internal/expand"
	"github.com/arlobridge/calx/internal/feed"
	"github.com/arlobridge/calx/internal/icalevent"
	"github.com/arlobridge/calx/internal/icalload"
)

// Scheduler owns a recurring gocron job that refetches every configured feed,
// re-expands its occurrences, and reports additions/removals to Discord.
type Scheduler struct {
	gocron     gocron.Scheduler
	webhookURL string

	mutex         sync.Mutex
	feeds         []config.Feed
	snapshots     map[string][]icalevent.Instance // keyed by feed name
	refreshJobID  uuid.UUID
	hasRefreshJob bool
}

// New creates a Scheduler and starts its recurring refresh job, which fires
// every checkInterval.
func New(checkInterval time.Duration, webhookURL string) (*Scheduler, error) {
	gocronScheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	s := &Scheduler{
		gocron:     gocronScheduler,
		webhookURL: webhookURL,
		snapshots:  make(map[string][]icalevent.Instance),
	}

	job, err := gocronScheduler.NewJob(
		gocron.DurationJob(checkInterval),
		gocron.NewTask(func() {
			s.RefreshAll(context.Background())
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule refresh job: %w", err)
	}
	s.refreshJobID = job.ID()
	s.hasRefreshJob = true

	s.gocron.Start()

	return s, nil
}

// Shutdown gracefully shuts down the scheduler.
func (s *Scheduler) Shutdown() error {
	return s.gocron.Shutdown()
}

// RefreshJobID returns the gocron job ID of the recurring refresh job, for
// diagnostics.
func (s *Scheduler) RefreshJobID() (uuid.UUID, bool) {
	return s.refreshJobID, s.hasRefreshJob
}

// SetFeeds updates the feed list the next refresh pass will act on.
func (s *Scheduler) SetFeeds(feeds []config.Feed) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.feeds = feeds
}

// GetInstances returns a copy of the most recently computed instances for
// feedName, thread-safe.
func (s *Scheduler) GetInstances(feedName string) []icalevent.Instance {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	instances := s.snapshots[feedName]
	out := make([]icalevent.Instance, len(instances))
	copy(out, instances)
	return out
}

// RefreshAll fetches, parses, and re-expands every configured feed,
// notifying Discord of any instance additions or removals since the last
// pass.
func (s *Scheduler) RefreshAll(ctx context.Context) {
	s.mutex.Lock()
	feeds := make([]config.Feed, len(s.feeds))
	copy(feeds, s.feeds)
	s.mutex.Unlock()

	for _, f := range feeds {
		if err := s.refreshFeed(ctx, f); err != nil {
			log.Printf("Error refreshing feed %q: %v", f.Name, err)
		}
	}
}

func (s *Scheduler) refreshFeed(ctx context.Context, f config.Feed) error {
	log.Printf("Refreshing feed %q...", f.Name)

	data, err := feed.Fetch(ctx, f.URL)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	events, err := icalload.Load(bytes.NewReader(data), icsWarnLogger{feed: f.Name})
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	now := time.Now()
	req := expand.Request{
		From:          now,
		To:            now.Add(time.Duration(f.LookaheadHours) * time.Hour),
		ExpandOngoing: &f.ExpandOngoing,
	}

	var instances []icalevent.Instance
	for _, event := range events {
		got, err := expand.Expand(event, req)
		if err != nil {
			log.Printf("Error expanding event %q in feed %q: %v", event.UID, f.Name, err)
			continue
		}
		instances = append(instances, got...)
	}

	sort.Slice(instances, func(i, j int) bool {
		return instances[i].Start.Instant.Before(instances[j].Start.Instant)
	})

	s.mutex.Lock()
	previous := s.snapshots[f.Name]
	s.snapshots[f.Name] = instances
	s.mutex.Unlock()

	s.notifyChanges(f, previous, instances)

	log.Printf("Feed %q: %d upcoming instance(s)", f.Name, len(instances))
	return nil
}

// notifyChanges diffs previous against current by a (datekey, summary) key
// and sends Discord notifications for additions and removals.
func (s *Scheduler) notifyChanges(f config.Feed, previous, current []icalevent.Instance) {
	if s.webhookURL == "" {
		return
	}

	oldKeys := make(map[string]icalevent.Instance, len(previous))
	for _, inst := range previous {
		oldKeys[instanceKey(inst)] = inst
	}
	newKeys := make(map[string]icalevent.Instance, len(current))
	for _, inst := range current {
		newKeys[instanceKey(inst)] = inst
	}

	for key, inst := range newKeys {
		if _, exists := oldKeys[key]; !exists {
			discord.NotifyInstance(s.webhookURL, f.Name, inst.Summary, inst.Start.Instant, inst.IsFullDay)
		}
	}
	for key, inst := range oldKeys {
		if _, exists := newKeys[key]; !exists {
			discord.NotifyInstanceRemoved(s.webhookURL, f.Name, inst.Summary, inst.Start.Instant)
		}
	}
}

func instanceKey(inst icalevent.Instance) string {
	return datekey.KeyOf(inst.Start) + "|" + inst.Summary
}

// icsWarnLogger surfaces non-fatal loader diagnostics in the daemon log,
// tagged with the feed they came from.
type icsWarnLogger struct {
	feed string
}

func (l icsWarnLogger) Warnf(format string, args ...any) {
	log.Printf("Feed %q: "+format, append([]any{l.feed}, args...)...)
}
