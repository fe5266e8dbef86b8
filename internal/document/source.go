package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// NotFoundError reports that the configured data file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "File not found: " + e.Path
}

// SyntaxError reports that the input is not valid JSON.
type SyntaxError struct {
	Detail string
}

func (e *SyntaxError) Error() string {
	return "Invalid JSON: " + e.Detail
}

// Source produces a parsed document.
//
// Postcondition: Load returns a non-nil root Node, or a non-nil error.
type Source interface {
	// Name identifies the source in user-facing messages.
	Name() string
	Load(ctx context.Context) (*Node, error)
}

// FileSource reads a document from the local filesystem.
type FileSource struct {
	Path   string
	Logger *zap.Logger
}

// NewFileSource constructs a FileSource for path.
//
// Postcondition: returns a non-nil FileSource; a nil logger is replaced by a no-op logger.
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{Path: path, Logger: logger}
}

func (s *FileSource) Name() string { return s.Path }

// Load reads and parses the file.
//
// Postcondition: a missing file yields *NotFoundError; malformed content yields *SyntaxError.
func (s *FileSource) Load(ctx context.Context) (*Node, error) {
	start := time.Now()
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: s.Path}
		}
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("document loaded",
		zap.String("path", s.Path),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return root, nil
}

// HTTPSource fetches a document published over HTTP, such as the community API dump.
type HTTPSource struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewHTTPSource constructs an HTTPSource using http.DefaultClient.
//
// Precondition: url must be an absolute http(s) URL.
// Postcondition: returns a non-nil HTTPSource.
func NewHTTPSource(url string, timeout time.Duration, logger *zap.Logger) *HTTPSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSource{URL: url, Client: http.DefaultClient, Timeout: timeout, Logger: logger}
}

func (s *HTTPSource) Name() string { return s.URL }

// Load performs a GET request and parses the body.
//
// Postcondition: a non-2xx status yields an error naming the status; malformed
// content yields *SyntaxError.
func (s *HTTPSource) Load(ctx context.Context) (*Node, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", s.URL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", s.URL, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", s.URL, err)
	}

	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("document fetched",
		zap.String("url", s.URL),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return root, nil
}
