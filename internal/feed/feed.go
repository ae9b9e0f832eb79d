// Package feed fetches the raw bytes of a calendar feed, over HTTP(S) or
// from a local file.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Fetch retrieves the raw .ics document at loc, which may be an http(s)://
// URL or a file:// / bare filesystem path.
func Fetch(ctx context.Context, loc string) ([]byte, error) {
	if isFileLocation(loc) {
		return fetchFile(loc)
	}
	return fetchHTTP(ctx, loc)
}

func isFileLocation(loc string) bool {
	if strings.HasPrefix(loc, "file://") {
		return true
	}
	parsed, err := url.Parse(loc)
	if err != nil {
		return true
	}
	return parsed.Scheme == "" || parsed.Scheme == "file"
}

func fetchFile(loc string) ([]byte, error) {
	path := strings.TrimPrefix(loc, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("feed: read %q: %w", path, err)
	}
	return data, nil
}

func fetchHTTP(ctx context.Context, loc string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: build request for %q: %w", loc, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch %q: %w", loc, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: %q returned status %s", loc, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed: read response body from %q: %w", loc, err)
	}
	return data, nil
}
