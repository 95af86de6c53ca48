package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/llehouerou/tideplay/internal/media"
)

// Fetcher opens media items, downloading remote ones into a cache directory.
type Fetcher struct {
	client *retryablehttp.Client
	dir    string
	log    zerolog.Logger
}

// FetcherOptions configures a Fetcher. Zero values pick defaults.
type FetcherOptions struct {
	Dir      string // temp files go here; empty means os.TempDir()
	RetryMax int
	// HeaderTimeout bounds the wait for response headers. The body is
	// only bounded by the context passed to Open.
	HeaderTimeout time.Duration
	RetryWait     time.Duration // minimum backoff between attempts
	Logger        zerolog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts FetcherOptions) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = opts.RetryMax
	if t, ok := client.HTTPClient.Transport.(*http.Transport); ok && opts.HeaderTimeout > 0 {
		t.ResponseHeaderTimeout = opts.HeaderTimeout
	}
	if opts.RetryWait > 0 {
		client.RetryWaitMin = opts.RetryWait
		client.RetryWaitMax = 4 * opts.RetryWait
	}
	client.Logger = leveledLogger{opts.Logger}

	return &Fetcher{
		client: client,
		dir:    opts.Dir,
		log:    opts.Logger,
	}
}

// Fetched is an opened item ready for decoding.
type Fetched struct {
	File *os.File
	temp bool
}

// Close closes the file and removes it if it was downloaded.
func (f *Fetched) Close() error {
	err := f.File.Close()
	if f.temp {
		if rmErr := os.Remove(f.File.Name()); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}

// Open returns a seekable local file for item. Remote items are downloaded
// completely before Open returns.
func (f *Fetcher) Open(ctx context.Context, item media.Item) (*Fetched, error) {
	if !item.IsRemote() {
		file, err := os.Open(item.Path())
		if err != nil {
			return nil, err
		}
		return &Fetched{File: file}, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, item.URI, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", item.URI, resp.Status)
	}

	tmp, err := os.CreateTemp(f.dir, "tideplay-*"+item.Ext())
	if err != nil {
		return nil, err
	}
	fetched := &Fetched{File: tmp, temp: true}

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		_ = fetched.Close()
		return nil, fmt.Errorf("fetch %s: %w", item.URI, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		_ = fetched.Close()
		return nil, err
	}

	f.log.Debug().
		Str("uri", item.URI).
		Str("size", humanize.IBytes(uint64(n))). //nolint:gosec // io.Copy never returns a negative count
		Msg("fetched remote item")
	return fetched, nil
}

// leveledLogger routes retryablehttp logs into zerolog.
type leveledLogger struct {
	log zerolog.Logger
}

func (l leveledLogger) Error(msg string, kv ...any) { l.log.Error().Fields(kv).Msg(msg) }
func (l leveledLogger) Warn(msg string, kv ...any)  { l.log.Warn().Fields(kv).Msg(msg) }
func (l leveledLogger) Info(msg string, kv ...any)  { l.log.Debug().Fields(kv).Msg(msg) }
func (l leveledLogger) Debug(msg string, kv ...any) { l.log.Trace().Fields(kv).Msg(msg) }

var _ retryablehttp.LeveledLogger = leveledLogger{}
