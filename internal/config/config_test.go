package config

import (
	"testing"
)

func TestFeedStruct(t *testing.T) {
	tests := []struct {
		name string
		feed Feed
	}{
		{
			name: "valid feed with all fields",
			feed: Feed{
				Name:           "test-feed",
				URL:            "https://example.com/calendar.ics",
				LookaheadHours: 48,
				ExpandOngoing:  true,
			},
		},
		{
			name: "feed with minimal fields",
			feed: Feed{
				Name: "minimal-feed",
				URL:  "https://example.com/minimal.ics",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.feed.Name == "" {
				t.Error("Feed name should not be empty")
			}
			if tt.feed.URL == "" {
				t.Error("Feed url should not be empty")
			}
		})
	}
}

func TestConfigStruct(t *testing.T) {
	cfg := Config{
		CheckInterval:       30,
		DiscordWebhook:      "https://discord.com/api/webhooks/test",
		DiscordMentionUsers: []string{"123456789"},
		DiscordMentionRoles: []string{"987654321"},
		Feeds: []Feed{
			{
				Name:           "test",
				URL:            "https://example.com/test.ics",
				LookaheadHours: 24,
			},
		},
	}

	if cfg.CheckInterval != 30 {
		t.Errorf("CheckInterval = %d, want 30", cfg.CheckInterval)
	}

	if len(cfg.Feeds) != 1 {
		t.Errorf("len(Feeds) = %d, want 1", len(cfg.Feeds))
	}

	if len(cfg.DiscordMentionUsers) != 1 {
		t.Errorf("len(DiscordMentionUsers) = %d, want 1", len(cfg.DiscordMentionUsers))
	}

	if len(cfg.DiscordMentionRoles) != 1 {
		t.Errorf("len(DiscordMentionRoles) = %d, want 1", len(cfg.DiscordMentionRoles))
	}
}

func TestConfigConstants(t *testing.T) {
	if ConfigDir != ".config/calx" {
		t.Errorf("ConfigDir = %s, want .config/calx", ConfigDir)
	}

	if ConfigFile != "config.yaml" {
		t.Errorf("ConfigFile = %s, want config.yaml", ConfigFile)
	}
}

func TestFeedWithDefaultLookahead(t *testing.T) {
	feed := Feed{
		Name: "test-feed",
		URL:  "https://example.com/test.ics",
		// LookaheadHours left zero; AddFeed will set the default
	}

	if feed.Name == "" {
		t.Error("Feed name should not be empty")
	}
	if feed.URL == "" {
		t.Error("Feed url should not be empty")
	}
}

func TestDiscordMentionArrays(t *testing.T) {
	cfg := Config{
		DiscordMentionUsers: []string{"user1", "user2", "user3"},
		DiscordMentionRoles: []string{"role1", "role2"},
	}

	if len(cfg.DiscordMentionUsers) != 3 {
		t.Errorf("len(DiscordMentionUsers) = %d, want 3", len(cfg.DiscordMentionUsers))
	}

	if len(cfg.DiscordMentionRoles) != 2 {
		t.Errorf("len(DiscordMentionRoles) = %d, want 2", len(cfg.DiscordMentionRoles))
	}

	for _, user := range cfg.DiscordMentionUsers {
		if user == "" {
			t.Error("Discord mention user should not be empty")
		}
	}

	for _, role := range cfg.DiscordMentionRoles {
		if role == "" {
			t.Error("Discord mention role should not be empty")
		}
	}
}
