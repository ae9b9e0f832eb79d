package test

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

// CalendarEvent represents a single VEVENT served by CalendarServer.
type CalendarEvent struct {
	ID        string
	Summary   string
	StartTime time.Time
}

// CalendarServer is a test HTTP server that serves ICS calendar files.
// It supports multiple feeds at paths like /feed-name/feed.ics.
type CalendarServer struct {
	server *httptest.Server
	// events is a map of feed name -> event ID -> event
	events map[string]map[string]CalendarEvent
	// rawFeeds maps feed name -> a verbatim ICS document. A raw document
	// takes precedence over the generated one, letting tests serve fixtures
	// with recurrence rules, TZIDs, EXDATEs, and overrides that the simple
	// event model above can't express.
	rawFeeds map[string]string
	mu       sync.RWMutex
	t        *testing.T
}

// NewCalendarServer creates a new test calendar server
func NewCalendarServer(t *testing.T) *CalendarServer {
	cs := &CalendarServer{
		events:   make(map[string]map[string]CalendarEvent),
		rawFeeds: make(map[string]string),
		t:        t,
	}

	mux := http.NewServeMux()

	// Endpoint to get a calendar for a specific feed: /feed-name/feed.ics
	mux.HandleFunc("/", cs.handleCalendar)

	// Endpoint to add events (for test control)
	// POST /add-event?feed=X&id=Y&summary=Z&start=W
	mux.HandleFunc("/add-event", cs.handleAddEvent)

	// Endpoint to remove events (for test control)
	// POST /remove-event?feed=X&id=Y
	mux.HandleFunc("/remove-event", cs.handleRemoveEvent)

	// Endpoint to clear all events
	// POST /clear-events or /clear-events?feed=X
	mux.HandleFunc("/clear-events", cs.handleClearEvents)

	// Endpoint to list events
	// GET /list-events or /list-events?feed=X
	mux.HandleFunc("/list-events", cs.handleListEvents)

	// Create unstarted server so we can set a fixed port
	cs.server = httptest.NewUnstartedServer(mux)

	// Use fixed port 45975
	listener, err := net.Listen("tcp", "127.0.0.1:45975")
	if err != nil {
		t.Fatalf("Failed to listen on port 45975: %v", err)
	}
	cs.server.Listener = listener
	cs.server.Start()

	return cs
}

// NewRemoteCalendarServer creates a CalendarServer wrapper that connects to an existing calendar server
func NewRemoteCalendarServer(t *testing.T, baseURL string) *CalendarServer {
	// Remove any trailing /feed-name/feed.ics to get base URL
	// Just use the protocol://host:port part
	if idx := strings.Index(baseURL, "//"); idx != -1 {
		rest := baseURL[idx+2:]
		if slashIdx := strings.Index(rest, "/"); slashIdx != -1 {
			baseURL = baseURL[:idx+2+slashIdx]
		}
	}

	// Create a mock server struct that uses HTTP endpoints instead of in-memory
	cs := &CalendarServer{
		events: nil, // Not used for remote server
		t:      t,
		server: &httptest.Server{
			URL: baseURL,
		},
	}

	return cs
}

// GetFeedURL returns the calendar URL for a specific feed
func (cs *CalendarServer) GetFeedURL(feedName string) string {
	return fmt.Sprintf("%s/%s/feed.ics", cs.server.URL, feedName)
}

// BaseURL returns the base server URL
func (cs *CalendarServer) BaseURL() string {
	return cs.server.URL
}

// Close stops the calendar server (no-op for remote servers)
func (cs *CalendarServer) Close() {
	// Don't close remote servers
	if cs.events == nil {
		return
	}
	cs.server.Close()
}

// AddEventForFeed adds an event to a specific feed's calendar
func (cs *CalendarServer) AddEventForFeed(feedName, id, summary string, startTime time.Time) {
	// If this is a remote server, use HTTP endpoint
	if cs.events == nil {
		reqURL := fmt.Sprintf("%s/add-event?feed=%s&id=%s&summary=%s&start=%s",
			cs.server.URL,
			url.QueryEscape(feedName),
			url.QueryEscape(id),
			url.QueryEscape(summary),
			url.QueryEscape(startTime.Format(time.RFC3339)))
		resp, err := http.Post(reqURL, "", nil)
		if err != nil {
			cs.t.Fatalf("Failed to add event to remote server: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			cs.t.Fatalf("Failed to add event to remote server, status: %d", resp.StatusCode)
		}
		cs.t.Logf("Event added to remote server %s: %s - %s at %s", feedName, id, summary, startTime.Format(time.RFC3339))
		return
	}

	// Local server - direct manipulation
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.events[feedName] == nil {
		cs.events[feedName] = make(map[string]CalendarEvent)
	}

	cs.events[feedName][id] = CalendarEvent{
		ID:        id,
		Summary:   summary,
		StartTime: startTime,
	}

	cs.t.Logf("Event added for %s: %s - %s at %s", feedName, id, summary, startTime.Format(time.RFC3339))
}

// SetRawCalendarForFeed serves a verbatim ICS document for feedName,
// bypassing the generated calendar. Local servers only.
func (cs *CalendarServer) SetRawCalendarForFeed(feedName, ics string) {
	if cs.events == nil {
		cs.t.Fatal("SetRawCalendarForFeed is not supported for remote servers")
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.rawFeeds[feedName] = ics
	cs.t.Logf("Raw calendar fixture set for %s (%d bytes)", feedName, len(ics))
}

// RemoveEventForFeed removes an event from a specific feed's calendar
func (cs *CalendarServer) RemoveEventForFeed(feedName, id string) {
	// If this is a remote server, use HTTP endpoint
	if cs.events == nil {
		reqURL := fmt.Sprintf("%s/remove-event?feed=%s&id=%s",
			cs.server.URL,
			url.QueryEscape(feedName),
			url.QueryEscape(id))
		resp, err := http.Post(reqURL, "", nil)
		if err != nil {
			cs.t.Fatalf("Failed to remove event from remote server: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			cs.t.Fatalf("Failed to remove event from remote server, status: %d", resp.StatusCode)
		}
		cs.t.Logf("Event removed from remote server %s: %s", feedName, id)
		return
	}

	// Local server - direct manipulation
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.events[feedName] != nil {
		delete(cs.events[feedName], id)
	}
	cs.t.Logf("Event removed from %s: %s", feedName, id)
}

// ClearEventsForFeed removes all events from a specific feed's calendar
func (cs *CalendarServer) ClearEventsForFeed(feedName string) {
	// If this is a remote server, use HTTP endpoint
	if cs.events == nil {
		reqURL := fmt.Sprintf("%s/clear-events?feed=%s", cs.server.URL, url.QueryEscape(feedName))
		resp, err := http.Post(reqURL, "", nil)
		if err != nil {
			cs.t.Fatalf("Failed to clear events on remote server: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			cs.t.Fatalf("Failed to clear events on remote server, status: %d", resp.StatusCode)
		}
		cs.t.Logf("All events cleared on remote server for %s", feedName)
		return
	}

	// Local server - direct manipulation
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.events[feedName] != nil {
		cs.events[feedName] = make(map[string]CalendarEvent)
	}
	cs.t.Logf("All events cleared for %s", feedName)
}

// ClearAllEvents removes all events from all feeds
func (cs *CalendarServer) ClearAllEvents() {
	// If this is a remote server, use HTTP endpoint
	if cs.events == nil {
		reqURL := fmt.Sprintf("%s/clear-events", cs.server.URL)
		resp, err := http.Post(reqURL, "", nil)
		if err != nil {
			cs.t.Fatalf("Failed to clear events on remote server: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			cs.t.Fatalf("Failed to clear events on remote server, status: %d", resp.StatusCode)
		}
		cs.t.Log("All events cleared on remote server")
		return
	}

	// Local server - direct manipulation
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.events = make(map[string]map[string]CalendarEvent)
	cs.t.Log("All events cleared")
}

// handleCalendar serves the ICS calendar file for a specific feed
func (cs *CalendarServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	// Extract feed name from path: /feed-name/feed.ics
	path := strings.Trim(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "feed.ics" {
		http.Error(w, "Not found - expected /{feed-name}/feed.ics", http.StatusNotFound)
		return
	}

	feedName := parts[0]

	cs.mu.RLock()
	raw, hasRaw := cs.rawFeeds[feedName]
	feedEvents := cs.events[feedName]
	eventCount := len(feedEvents)
	cs.mu.RUnlock()

	if hasRaw {
		cs.t.Logf("Calendar requested for %s (raw fixture)", feedName)
		w.Header().Set("Content-Type", "text/calendar")
		w.Write([]byte(raw))
		return
	}

	cs.t.Logf("Calendar requested for %s (%d event(s))", feedName, eventCount)

	ics := cs.generateICS(feedName, feedEvents)
	w.Header().Set("Content-Type", "text/calendar")
	w.Write([]byte(ics))
}

// handleAddEvent handles adding events via HTTP POST
func (cs *CalendarServer) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	feedName := r.URL.Query().Get("feed")
	eventID := r.URL.Query().Get("id")
	summary := r.URL.Query().Get("summary")
	startTime := r.URL.Query().Get("start")

	if feedName == "" || eventID == "" || summary == "" || startTime == "" {
		http.Error(w, "Missing parameters (feed, id, summary, start required)", http.StatusBadRequest)
		return
	}

	// Parse start time (RFC3339 or iCal format)
	var parsedTime time.Time
	var err error

	// Try RFC3339 first
	parsedTime, err = time.Parse(time.RFC3339, startTime)
	if err != nil {
		// Try iCal format (20060102T150405Z)
		parsedTime, err = time.Parse("20060102T150405Z", startTime)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid time format: %v", err), http.StatusBadRequest)
			return
		}
	}

	cs.mu.Lock()
	if cs.events[feedName] == nil {
		cs.events[feedName] = make(map[string]CalendarEvent)
	}
	cs.events[feedName][eventID] = CalendarEvent{
		ID:        eventID,
		Summary:   summary,
		StartTime: parsedTime,
	}
	cs.mu.Unlock()

	cs.t.Logf("Event added for %s: %s - %s at %s", feedName, eventID, summary, parsedTime.Format(time.RFC3339))
	fmt.Fprintf(w, "Event added for %s: %s\n", feedName, eventID)
}

// handleRemoveEvent handles removing events via HTTP POST
func (cs *CalendarServer) handleRemoveEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	feedName := r.URL.Query().Get("feed")
	eventID := r.URL.Query().Get("id")

	if feedName == "" || eventID == "" {
		http.Error(w, "Missing parameters (feed, id required)", http.StatusBadRequest)
		return
	}

	cs.mu.Lock()
	if cs.events[feedName] != nil {
		delete(cs.events[feedName], eventID)
	}
	cs.mu.Unlock()

	cs.t.Logf("Event removed from %s: %s", feedName, eventID)
	fmt.Fprintf(w, "Event removed from %s: %s\n", feedName, eventID)
}

// handleClearEvents handles clearing all events via HTTP POST
func (cs *CalendarServer) handleClearEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	feedName := r.URL.Query().Get("feed")

	cs.mu.Lock()
	if feedName != "" {
		// Clear events for specific feed
		if cs.events[feedName] != nil {
			cs.events[feedName] = make(map[string]CalendarEvent)
		}
		cs.mu.Unlock()
		cs.t.Logf("All events cleared for %s", feedName)
		fmt.Fprintf(w, "All events cleared for %s\n", feedName)
	} else {
		// Clear all events
		cs.events = make(map[string]map[string]CalendarEvent)
		cs.mu.Unlock()
		cs.t.Log("All events cleared")
		fmt.Fprintln(w, "All events cleared")
	}
}

// handleListEvents lists all events as JSON
func (cs *CalendarServer) handleListEvents(w http.ResponseWriter, r *http.Request) {
	feedName := r.URL.Query().Get("feed")

	cs.mu.RLock()
	defer cs.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")

	if feedName != "" {
		// List events for specific feed
		feedEvents := cs.events[feedName]
		fmt.Fprintf(w, "{\n  \"feed\": %q,\n  \"count\": %d,\n  \"events\": [\n", feedName, len(feedEvents))

		first := true
		for _, event := range feedEvents {
			if !first {
				fmt.Fprint(w, ",\n")
			}
			first = false
			fmt.Fprintf(w, "    {\n      \"id\": %q,\n      \"summary\": %q,\n      \"start_time\": %q\n    }",
				event.ID, event.Summary, event.StartTime.Format(time.RFC3339))
		}

		fmt.Fprint(w, "\n  ]\n}\n")
	} else {
		// List all events from all feeds
		totalCount := 0
		for _, feedEvents := range cs.events {
			totalCount += len(feedEvents)
		}

		fmt.Fprintf(w, "{\n  \"total_count\": %d,\n  \"feeds\": [\n", totalCount)

		firstFeed := true
		for feed, feedEvents := range cs.events {
			if !firstFeed {
				fmt.Fprint(w, ",\n")
			}
			firstFeed = false

			fmt.Fprintf(w, "    {\n      \"feed\": %q,\n      \"count\": %d,\n      \"events\": [\n", feed, len(feedEvents))

			firstEvent := true
			for _, event := range feedEvents {
				if !firstEvent {
					fmt.Fprint(w, ",\n")
				}
				firstEvent = false
				fmt.Fprintf(w, "        {\n          \"id\": %q,\n          \"summary\": %q,\n          \"start_time\": %q\n        }",
					event.ID, event.Summary, event.StartTime.Format(time.RFC3339))
			}

			fmt.Fprint(w, "\n      ]\n    }")
		}

		fmt.Fprint(w, "\n  ]\n}\n")
	}
}

// generateICS creates an ICS calendar file from events for a specific feed
func (cs *CalendarServer) generateICS(feedName string, events map[string]CalendarEvent) string {
	ics := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//calx//E2E Test//EN
CALSCALE:GREGORIAN
METHOD:PUBLISH
X-WR-CALNAME:` + feedName + `
X-WR-TIMEZONE:UTC
`

	for _, event := range events {
		startTime := event.StartTime.UTC().Format("20060102T150405Z")
		ics += fmt.Sprintf(`BEGIN:VEVENT
UID:%s
SUMMARY:%s
DTSTART:%s
DTEND:%s
END:VEVENT
`, event.ID, event.Summary, startTime, startTime)
	}

	ics += "END:VCALENDAR\n"
	return ics
}
