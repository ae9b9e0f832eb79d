package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	ConfigDir  = ".config/calx"
	ConfigFile = "config.yaml"
)

// Feed represents a single calendar source calx tracks.
type Feed struct {
	Name           string `mapstructure:"name" yaml:"name"`
	URL            string `mapstructure:"url" yaml:"url"`
	LookaheadHours int    `mapstructure:"lookahead_hours" yaml:"lookahead_hours"`
	ExpandOngoing  bool   `mapstructure:"expand_ongoing" yaml:"expand_ongoing"`
}

// Config holds the application configuration
type Config struct {
	// How often to refresh and re-expand feeds (in seconds)
	CheckInterval int `mapstructure:"check_interval"`
	// Discord webhook URL for notifications
	DiscordWebhook string `mapstructure:"discord_webhook"`
	// Discord user IDs to @mention when a new instance is announced
	DiscordMentionUsers []string `mapstructure:"discord_mention_users"`
	// Discord role IDs to @mention when a new instance is announced
	DiscordMentionRoles []string `mapstructure:"discord_mention_roles"`
	// Feeds to track
	Feeds []Feed `mapstructure:"feeds"`
}

// CustomConfigPath, when set, overrides the default ~/.config/calx location.
// Intended for tests and the --config flag.
var CustomConfigPath string

// InitConfig initializes the configuration system
func InitConfig() {
	configPath := CustomConfigPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}
		configPath = filepath.Join(home, ConfigDir)
	}

	viper.AddConfigPath(configPath)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("check_interval", 300)
	viper.SetDefault("discord_webhook", "")
	viper.SetDefault("discord_mention_users", []string{})
	viper.SetDefault("discord_mention_roles", []string{})
	viper.SetDefault("feeds", []Feed{})

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configPath, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
	}

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults
			if err := viper.SafeWriteConfig(); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating config file: %v\n", err)
			}
		}
	}
}

// GetConfig returns the current configuration
func GetConfig() (*Config, error) {
	// Reload config from disk to pick up external changes
	if err := viper.ReadInConfig(); err != nil {
		// If file doesn't exist, that's okay - we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig persists the configuration to disk
func SaveConfig() error {
	return viper.WriteConfig()
}

// AddFeed adds a new feed to the configuration
func AddFeed(name, url string, lookaheadHours int, expandOngoing bool) error {
	cfg, err := GetConfig()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}

	// Check if feed url already exists
	for _, f := range cfg.Feeds {
		if f.URL == url {
			return fmt.Errorf("feed with url %s already exists", url)
		}
	}

	if lookaheadHours <= 0 {
		lookaheadHours = 24
	}

	cfg.Feeds = append(cfg.Feeds, Feed{
		Name:           name,
		URL:            url,
		LookaheadHours: lookaheadHours,
		ExpandOngoing:  expandOngoing,
	})

	viper.Set("feeds", cfg.Feeds)
	return SaveConfig()
}

// RemoveFeed removes a feed from the configuration, matched by name or url
func RemoveFeed(identifier string) error {
	cfg, err := GetConfig()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}

	// Find and remove feed (match by name or url)
	found := false
	newFeeds := make([]Feed, 0, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		if f.Name != identifier && f.URL != identifier {
			newFeeds = append(newFeeds, f)
		} else {
			found = true
		}
	}

	if !found {
		return fmt.Errorf("feed '%s' not found (try name or url)", identifier)
	}

	viper.Set("feeds", newFeeds)
	return SaveConfig()
}

// UpdateFeed updates an existing feed's configuration
func UpdateFeed(identifier string, updates map[string]interface{}) error {
	cfg, err := GetConfig()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}

	// Find the feed (match by name or url)
	found := false
	for i, f := range cfg.Feeds {
		if f.Name == identifier || f.URL == identifier {
			found = true

			// Apply updates
			if name, ok := updates["name"].(string); ok && name != "" {
				cfg.Feeds[i].Name = name
			}
			if url, ok := updates["url"].(string); ok && url != "" {
				cfg.Feeds[i].URL = url
			}
			if lookaheadHours, ok := updates["lookahead_hours"].(int); ok && lookaheadHours > 0 {
				cfg.Feeds[i].LookaheadHours = lookaheadHours
			}
			if expandOngoing, ok := updates["expand_ongoing"].(bool); ok {
				cfg.Feeds[i].ExpandOngoing = expandOngoing
			}

			break
		}
	}

	if !found {
		return fmt.Errorf("feed '%s' not found (try name or url)", identifier)
	}

	viper.Set("feeds", cfg.Feeds)
	return SaveConfig()
}

// ListFeeds returns all configured feeds
func ListFeeds() ([]Feed, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	return cfg.Feeds, nil
}

// SetCheckInterval sets the feed refresh interval
func SetCheckInterval(seconds int) error {
	if seconds < 10 {
		return fmt.Errorf("check interval must be at least 10 seconds")
	}
	viper.Set("check_interval", seconds)
	return SaveConfig()
}

// SetDiscordWebhook sets the Discord webhook URL
func SetDiscordWebhook(url string) error {
	viper.Set("discord_webhook", url)
	return SaveConfig()
}

// AddDiscordMentionUser adds a Discord user ID to the mention list
func AddDiscordMentionUser(userID string) error {
	cfg, err := GetConfig()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	for _, id := range cfg.DiscordMentionUsers {
		if id == userID {
			return fmt.Errorf("user %s is already in the mention list", userID)
		}
	}
	cfg.DiscordMentionUsers = append(cfg.DiscordMentionUsers, userID)
	viper.Set("discord_mention_users", cfg.DiscordMentionUsers)
	return SaveConfig()
}

// RemoveDiscordMentionUser removes a Discord user ID from the mention list
func RemoveDiscordMentionUser(userID string) error {
	cfg, err := GetConfig()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	found := false
	kept := make([]string, 0, len(cfg.DiscordMentionUsers))
	for _, id := range cfg.DiscordMentionUsers {
		if id == userID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return fmt.Errorf("user %s is not in the mention list", userID)
	}
	viper.Set("discord_mention_users", kept)
	return SaveConfig()
}

// AddDiscordMentionRole adds a Discord role ID to the mention list
func AddDiscordMentionRole(roleID string) error {
	cfg, err := GetConfig()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	for _, id := range cfg.DiscordMentionRoles {
		if id == roleID {
			return fmt.Errorf("role %s is already in the mention list", roleID)
		}
	}
	cfg.DiscordMentionRoles = append(cfg.DiscordMentionRoles, roleID)
	viper.Set("discord_mention_roles", cfg.DiscordMentionRoles)
	return SaveConfig()
}

// RemoveDiscordMentionRole removes a Discord role ID from the mention list
func RemoveDiscordMentionRole(roleID string) error {
	cfg, err := GetConfig()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	found := false
	kept := make([]string, 0, len(cfg.DiscordMentionRoles))
	for _, id := range cfg.DiscordMentionRoles {
		if id == roleID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return fmt.Errorf("role %s is not in the mention list", roleID)
	}
	viper.Set("discord_mention_roles", kept)
	return SaveConfig()
}
