package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/arlobridge/calx/internal/config"
	"github.com/arlobridge/calx/internal/expand"
	"github.com/arlobridge/calx/internal/feed"
	"github.com/arlobridge/calx/internal/icalevent"
	"github.com/arlobridge/calx/internal/icalload"
	"github.com/arlobridge/calx/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "calx",
	Short:   "calx - manage the calendar feeds the calx daemon watches",
	Long:    `A CLI tool to configure iCalendar feeds for the calx daemon to track and notify on.`,
	Version: version.GetVersion(),
}

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a calendar feed to watch",
	Long:  `Add an .ics feed (HTTP(S) URL or local file path) to the watch list.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		url, _ := cmd.Flags().GetString("url")
		lookaheadHours, _ := cmd.Flags().GetInt("lookahead-hours")
		expandOngoing, _ := cmd.Flags().GetBool("expand-ongoing")

		if url == "" {
			fmt.Fprintf(os.Stderr, "Error: --url is required\n")
			os.Exit(1)
		}

		if err := config.AddFeed(name, url, lookaheadHours, expandOngoing); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding feed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✓ Added feed: %s\n", name)
		fmt.Printf("  URL: %s\n", url)
		fmt.Printf("  Lookahead hours: %d\n", lookaheadHours)
		fmt.Printf("  Expand ongoing: %v\n", expandOngoing)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured feeds",
	Long:  `Display all calendar feeds currently being watched.`,
	Run: func(cmd *cobra.Command, args []string) {
		feeds, err := config.ListFeeds()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing feeds: %v\n", err)
			os.Exit(1)
		}

		if len(feeds) == 0 {
			fmt.Println("No feeds configured.")
			fmt.Println("\nAdd a feed with: calx add <name> --url https://...")
			return
		}

		fmt.Printf("Configured feeds (%d):\n\n", len(feeds))
		for i, f := range feeds {
			fmt.Printf("%d. %s\n", i+1, f.Name)
			fmt.Printf("   URL: %s\n", f.URL)
			fmt.Printf("   Lookahead hours: %d\n", f.LookaheadHours)
			fmt.Printf("   Expand ongoing: %v\n", f.ExpandOngoing)
			if i < len(feeds)-1 {
				fmt.Println()
			}
		}
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [name or url]",
	Short: "Remove a feed from the watch list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		identifier := args[0]
		if err := config.RemoveFeed(identifier); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing feed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Removed feed: %s\n", identifier)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [name or url]",
	Short: "Update a feed's configuration",
	Long:  `Update settings for an existing feed by name or url. Only provide flags for settings you want to change.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		identifier := args[0]
		updates := make(map[string]interface{})

		if cmd.Flags().Changed("url") {
			url, _ := cmd.Flags().GetString("url")
			updates["url"] = url
		}
		if cmd.Flags().Changed("lookahead-hours") {
			lookaheadHours, _ := cmd.Flags().GetInt("lookahead-hours")
			updates["lookahead_hours"] = lookaheadHours
		}
		if cmd.Flags().Changed("expand-ongoing") {
			expandOngoing, _ := cmd.Flags().GetBool("expand-ongoing")
			updates["expand_ongoing"] = expandOngoing
		}

		if len(updates) == 0 {
			fmt.Fprintf(os.Stderr, "Error: No settings to update. Provide at least one flag to change.\n")
			os.Exit(1)
		}

		if err := config.UpdateFeed(identifier, updates); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating feed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✓ Updated feed: %s\n", identifier)
	},
}

var upcomingCmd = &cobra.Command{
	Use:   "upcoming [feed-names...]",
	Short: "Fetch feeds and print their upcoming occurrences",
	Long: `Fetches the named feeds (or every configured feed when none are given),
expands each event's recurrence set, and prints the occurrences that fall
within the lookahead window.

Examples:
  calx upcoming
  calx upcoming team-standup --hours 72
  calx upcoming --url https://example.com/holidays.ics --hours 168`,
	Run: func(cmd *cobra.Command, args []string) {
		hours, _ := cmd.Flags().GetInt("hours")
		expandOngoing, _ := cmd.Flags().GetBool("expand-ongoing")
		adhocURL, _ := cmd.Flags().GetString("url")

		var feeds []config.Feed
		if adhocURL != "" {
			feeds = []config.Feed{{
				Name:           adhocURL,
				URL:            adhocURL,
				LookaheadHours: hours,
				ExpandOngoing:  expandOngoing,
			}}
		} else {
			cfg, err := config.GetConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				os.Exit(1)
			}

			if len(args) == 0 {
				feeds = cfg.Feeds
			} else {
				for _, feedName := range args {
					found := false
					for _, f := range cfg.Feeds {
						if f.Name == feedName {
							feeds = append(feeds, f)
							found = true
							break
						}
					}
					if !found {
						fmt.Fprintf(os.Stderr, "Error: feed '%s' not found\n", feedName)
						fmt.Fprintf(os.Stderr, "Available feeds: ")
						for i, f := range cfg.Feeds {
							if i > 0 {
								fmt.Fprintf(os.Stderr, ", ")
							}
							fmt.Fprintf(os.Stderr, "%s", f.Name)
						}
						fmt.Fprintf(os.Stderr, "\n")
						os.Exit(1)
					}
				}
			}
		}

		if len(feeds) == 0 {
			fmt.Println("No feeds configured.")
			fmt.Println("\nAdd a feed with: calx add <name> --url https://...")
			return
		}

		now := time.Now()
		for _, f := range feeds {
			lookahead := f.LookaheadHours
			if cmd.Flags().Changed("hours") {
				lookahead = hours
			}
			if lookahead <= 0 {
				lookahead = 24
			}
			ongoing := f.ExpandOngoing
			if cmd.Flags().Changed("expand-ongoing") {
				ongoing = expandOngoing
			}

			instances, err := expandFeed(cmd.Context(), f, now, time.Duration(lookahead)*time.Hour, ongoing)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error expanding feed '%s': %v\n", f.Name, err)
				os.Exit(1)
			}

			fmt.Printf("%s: %d upcoming occurrence(s)\n", f.Name, len(instances))
			for _, inst := range instances {
				when := inst.Start.Instant.Format(time.RFC1123)
				if inst.IsFullDay {
					when = inst.Start.Instant.Format("Monday, January 2 2006")
				}
				marker := ""
				if inst.IsOverride {
					marker = " (moved)"
				}
				fmt.Printf("  %s  %s%s\n", when, inst.Summary, marker)
			}
			fmt.Println()
		}
	},
}

// stderrWarnLogger surfaces non-fatal loader diagnostics without polluting
// the command's stdout output.
type stderrWarnLogger struct{}

func (stderrWarnLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// expandFeed runs the one-shot fetch -> parse -> expand pipeline for a
// single feed and returns its instances sorted by start.
func expandFeed(ctx context.Context, f config.Feed, from time.Time, lookahead time.Duration, ongoing bool) ([]icalevent.Instance, error) {
	data, err := feed.Fetch(ctx, f.URL)
	if err != nil {
		return nil, err
	}

	events, err := icalload.Load(bytes.NewReader(data), stderrWarnLogger{})
	if err != nil {
		return nil, err
	}

	req := expand.Request{
		From:          from,
		To:            from.Add(lookahead),
		ExpandOngoing: &ongoing,
	}

	var instances []icalevent.Instance
	for _, event := range events {
		got, err := expand.Expand(event, req)
		if err != nil {
			return nil, fmt.Errorf("event '%s': %w", event.UID, err)
		}
		instances = append(instances, got...)
	}

	sort.Slice(instances, func(i, j int) bool {
		return instances[i].Start.Instant.Before(instances[j].Start.Instant)
	})
	return instances, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration settings",
	Long:  `View or modify global configuration settings like check interval and Discord webhook.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.GetConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Current configuration:")
		fmt.Printf("  Check interval: %d seconds (refresh feeds every %ds)\n", cfg.CheckInterval, cfg.CheckInterval)
		if cfg.DiscordWebhook != "" {
			fmt.Println("  Discord webhook: configured")
		} else {
			fmt.Println("  Discord webhook: not configured")
		}
		fmt.Printf("  Discord mention users: %d configured\n", len(cfg.DiscordMentionUsers))
		for _, userID := range cfg.DiscordMentionUsers {
			fmt.Printf("    - %s\n", userID)
		}
		fmt.Printf("  Discord mention roles: %d configured\n", len(cfg.DiscordMentionRoles))
		for _, roleID := range cfg.DiscordMentionRoles {
			fmt.Printf("    - %s\n", roleID)
		}
		fmt.Printf("  Feeds configured: %d\n", len(cfg.Feeds))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a configuration value",
	Long:  `Set configuration values like check-interval or discord-webhook.`,
	Run: func(cmd *cobra.Command, args []string) {
		checkInterval, _ := cmd.Flags().GetInt("check-interval")
		discordWebhook, _ := cmd.Flags().GetString("discord-webhook")

		changed := false

		if cmd.Flags().Changed("check-interval") {
			if err := config.SetCheckInterval(checkInterval); err != nil {
				fmt.Fprintf(os.Stderr, "Error setting check interval: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("✓ Check interval set to %d seconds\n", checkInterval)
			changed = true
		}

		if cmd.Flags().Changed("discord-webhook") {
			if err := config.SetDiscordWebhook(discordWebhook); err != nil {
				fmt.Fprintf(os.Stderr, "Error setting discord webhook: %v\n", err)
				os.Exit(1)
			}
			if discordWebhook == "" {
				fmt.Println("✓ Discord webhook disabled")
			} else {
				fmt.Println("✓ Discord webhook configured")
			}
			changed = true
		}

		if !changed {
			fmt.Println("No settings changed. Use --check-interval or --discord-webhook")
		}
	},
}

var mentionCmd = &cobra.Command{
	Use:   "mention",
	Short: "Manage Discord mention lists",
	Long:  `Add or remove Discord user and role IDs to mention in notifications.`,
}

var mentionAddUserCmd = &cobra.Command{
	Use:   "add-user [user-id]",
	Short: "Add a Discord user ID to mention in notifications",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID := args[0]
		if err := config.AddDiscordMentionUser(userID); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Added Discord user ID: %s\n", userID)
	},
}

var mentionRemoveUserCmd = &cobra.Command{
	Use:   "remove-user [user-id]",
	Short: "Remove a Discord user ID from mentions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID := args[0]
		if err := config.RemoveDiscordMentionUser(userID); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Removed Discord user ID: %s\n", userID)
	},
}

var mentionAddRoleCmd = &cobra.Command{
	Use:   "add-role [role-id]",
	Short: "Add a Discord role ID to mention in notifications",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		roleID := args[0]
		if err := config.AddDiscordMentionRole(roleID); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding role: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Added Discord role ID: %s\n", roleID)
	},
}

var mentionRemoveRoleCmd = &cobra.Command{
	Use:   "remove-role [role-id]",
	Short: "Remove a Discord role ID from mentions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		roleID := args[0]
		if err := config.RemoveDiscordMentionRole(roleID); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing role: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Removed Discord role ID: %s\n", roleID)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	config.InitConfig()

	addCmd.Flags().StringP("url", "u", "", "Feed URL or file path (required)")
	addCmd.Flags().IntP("lookahead-hours", "l", 24, "How far ahead to expand occurrences (in hours)")
	addCmd.Flags().Bool("expand-ongoing", false, "Include events already in progress at refresh time")

	updateCmd.Flags().StringP("url", "u", "", "Feed URL or file path")
	updateCmd.Flags().IntP("lookahead-hours", "l", 0, "How far ahead to expand occurrences (in hours)")
	updateCmd.Flags().Bool("expand-ongoing", false, "Include events already in progress at refresh time")

	upcomingCmd.Flags().String("url", "", "Expand an ad-hoc feed URL or file path instead of configured feeds")
	upcomingCmd.Flags().IntP("hours", "H", 24, "Override the lookahead window (in hours)")
	upcomingCmd.Flags().Bool("expand-ongoing", false, "Include events already in progress")

	configSetCmd.Flags().Int("check-interval", 0, "How often to refresh feeds (in seconds)")
	configSetCmd.Flags().String("discord-webhook", "", "Discord webhook URL for notifications (empty to disable)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mentionCmd)
	configCmd.AddCommand(configSetCmd)
	mentionCmd.AddCommand(mentionAddUserCmd)
	mentionCmd.AddCommand(mentionRemoveUserCmd)
	mentionCmd.AddCommand(mentionAddRoleCmd)
	mentionCmd.AddCommand(mentionRemoveRoleCmd)
}
