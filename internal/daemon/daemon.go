package daemon

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/arlobridge/calx/internal/config"
	"github.com/arlobridge/calx/internal/discord"
	"github.com/arlobridge/calx/internal/scheduler"
)

// Daemon represents the long-running service that keeps a Scheduler fed
// with the current feed list and reacts to config changes.
type Daemon struct {
	config    *config.Config
	scheduler *scheduler.Scheduler
}

// New creates a new Daemon instance
func New() *Daemon {
	return &Daemon{}
}

// Run starts the daemon's main loop
func (d *Daemon) Run(ctx context.Context) error {
	log.Println("Daemon running...")

	cfg, err := config.GetConfig()
	if err != nil {
		log.Printf("Error loading initial config: %v", err)
		return err
	}
	d.config = cfg

	checkInterval := time.Duration(cfg.CheckInterval) * time.Second
	if checkInterval <= 0 {
		checkInterval = 5 * time.Minute
	}

	sched, err := scheduler.New(checkInterval, cfg.DiscordWebhook)
	if err != nil {
		log.Printf("Error creating scheduler: %v", err)
		return err
	}
	d.scheduler = sched
	d.scheduler.SetFeeds(cfg.Feeds)

	defer func() {
		log.Println("Shutting down scheduler...")
		if err := d.scheduler.Shutdown(); err != nil {
			log.Printf("Error shutting down scheduler: %v", err)
		}
	}()

	discord.SendInfo(cfg.DiscordWebhook, "calx started",
		fmt.Sprintf("calx daemon has started and is watching **%d** feed(s)", len(cfg.Feeds)))

	log.Printf("Performing initial feed refresh...")
	d.scheduler.RefreshAll(ctx)

	configTicker := time.NewTicker(10 * time.Second)
	defer configTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-configTicker.C:
			cfg, err := config.GetConfig()
			if err != nil {
				log.Printf("Error loading config: %v", err)
				continue
			}

			if d.detectFeedChanges(cfg) {
				log.Printf("Feed configuration changed, refreshing...")
				d.config = cfg
				d.scheduler.SetFeeds(cfg.Feeds)
				d.scheduler.RefreshAll(ctx)
			} else {
				d.config = cfg
				d.scheduler.SetFeeds(cfg.Feeds)
			}
		}
	}
}

// detectFeedChanges reports whether feeds were added or removed since the
// last loaded config, notifying Discord for each change.
func (d *Daemon) detectFeedChanges(newConfig *config.Config) bool {
	if d.config == nil {
		return false
	}

	oldFeeds := make(map[string]string) // URL -> name
	newFeeds := make(map[string]string)

	for _, f := range d.config.Feeds {
		oldFeeds[f.URL] = f.Name
	}
	for _, f := range newConfig.Feeds {
		newFeeds[f.URL] = f.Name
	}

	changed := false

	for url, name := range oldFeeds {
		if _, exists := newFeeds[url]; !exists {
			log.Printf("Feed removed: %s (%s)", name, url)
			discord.SendWarning(newConfig.DiscordWebhook, "Feed removed",
				fmt.Sprintf("Feed **%s** has been removed from monitoring\n\nURL: `%s`", name, url))
			changed = true
		}
	}

	for url, name := range newFeeds {
		if _, exists := oldFeeds[url]; !exists {
			log.Printf("Feed added: %s (%s)", name, url)
			discord.SendSuccess(newConfig.DiscordWebhook, "Feed added",
				fmt.Sprintf("Feed **%s** has been added to monitoring\n\nURL: `%s`", name, url))
			changed = true
		}
	}

	return changed
}
