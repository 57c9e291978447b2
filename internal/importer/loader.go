// Package importer reads external park listings from a local file or an
// http(s) URL and normalizes their heterogeneous field names into
// domain.ImportRecord values.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/park-tracker/internal/domain"
)

// DefaultTimeout bounds a remote fetch when the caller passes zero.
const DefaultTimeout = 15 * time.Second

// MaxSourceBytes is the largest listing Load accepts, from a file or a URL.
const MaxSourceBytes = 16 << 20

// Loader implements service.SourceLoader for files and http(s) URLs.
// JSON and YAML listings are both accepted.
type Loader struct {
	client *resty.Client
	logger *zap.Logger
}

// NewLoader creates a Loader whose remote fetches give up after timeout.
func NewLoader(timeout time.Duration, logger *zap.Logger) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json, application/yaml")
	return &Loader{client: c, logger: logger.Named("importer")}
}

// Load reads source and returns its normalized records. Entries that are not
// objects are dropped; entries without a usable name are kept with an empty
// Name so the caller can decide to ignore them.
func (l *Loader) Load(ctx context.Context, source string) ([]domain.ImportRecord, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("importer.Loader.Load: %w: no source given", domain.ErrSourceUnavailable)
	}

	var (
		data []byte
		err  error
	)
	if isURL(source) {
		data, err = l.fetch(ctx, source)
	} else {
		data, err = readFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("importer.Loader.Load: %w: %v", domain.ErrSourceUnavailable, err)
	}

	raw, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("importer.Loader.Load: %w: %s: %v", domain.ErrSourceUnavailable, source, err)
	}

	records := make([]domain.ImportRecord, 0, len(raw))
	for _, entry := range raw {
		records = append(records, Normalize(entry))
	}
	l.logger.Debug("source loaded", zap.String("source", source), zap.Int("records", len(records)))
	return records, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}
	return readLimited(body, url)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, path)
}

// readLimited reads r fully, failing once more than MaxSourceBytes arrive.
func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > MaxSourceBytes {
		return nil, fmt.Errorf("read %s: larger than %d bytes", name, MaxSourceBytes)
	}
	return data, nil
}

// decode parses a listing. Valid JSON goes through encoding/json, where a
// repeated key keeps its last value; anything else is read as YAML.
func decode(data []byte) ([]map[string]any, error) {
	var items []any
	if json.Valid(data) {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func isURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
