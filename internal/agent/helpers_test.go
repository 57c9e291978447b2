package agent_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/park-tracker/internal/agent"
	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/importer"
	"github.com/pkordes/park-tracker/internal/repo"
	"github.com/pkordes/park-tracker/internal/service"
	"github.com/pkordes/park-tracker/testutil"
)

// harness wires a Resolver to real services over a temporary store and
// counts every store operation the resolver invokes.
type harness struct {
	repo   repo.DocumentRepo
	parks  *service.ParkService
	visits *service.VisitService
	out    *bytes.Buffer
	calls  *int
	source string
}

func (h *harness) doc(t *testing.T) domain.Document {
	t.Helper()
	return testutil.MustLoad(t, h.repo)
}

func (h *harness) addPark(t *testing.T, name, state string) domain.Park {
	t.Helper()
	p, err := h.parks.Add(context.Background(), domain.Park{Name: name, State: domain.StringPtr(state)})
	require.NoError(t, err)
	return p
}

// newHarness builds a Resolver reading input. configure may adjust the
// config before the Resolver is created.
func newHarness(t *testing.T, input string, configure func(*agent.Config)) (*agent.Resolver, *harness) {
	t.Helper()
	r, _ := testutil.NewFileRepo(t)
	h := &harness{
		repo:   r,
		parks:  service.NewParkService(r),
		visits: service.NewVisitService(r),
		out:    &bytes.Buffer{},
		calls:  new(int),
		source: filepath.Join(t.TempDir(), "parks.json"),
	}
	cfg := agent.Config{
		Parks:        &countingParks{inner: h.parks, calls: h.calls},
		Visits:       &countingVisits{inner: h.visits, calls: h.calls},
		Importer:     &countingImporter{inner: service.NewImportService(r, importer.NewLoader(time.Second, nil)), calls: h.calls},
		ImportSource: h.source,
		Input:        agent.NewLineScanner(strings.NewReader(input)),
		Output:       h.out,
	}
	if configure != nil {
		configure(&cfg)
	}
	return agent.New(cfg), h
}

func writeListing(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

type countingParks struct {
	inner agent.ParkStore
	calls *int
}

func (c *countingParks) Add(ctx context.Context, attrs domain.Park) (domain.Park, error) {
	*c.calls++
	return c.inner.Add(ctx, attrs)
}
func (c *countingParks) List(ctx context.Context, f domain.ParkFilter) ([]domain.Park, error) {
	*c.calls++
	return c.inner.List(ctx, f)
}
func (c *countingParks) FindByName(ctx context.Context, name string) (domain.Park, error) {
	*c.calls++
	return c.inner.FindByName(ctx, name)
}

type countingVisits struct {
	inner agent.VisitStore
	calls *int
}

func (c *countingVisits) Add(ctx context.Context, attrs domain.Visit) (domain.Visit, error) {
	*c.calls++
	return c.inner.Add(ctx, attrs)
}

type countingImporter struct {
	inner agent.Importer
	calls *int
}

func (c *countingImporter) Import(ctx context.Context, source string) (domain.ImportResult, error) {
	*c.calls++
	return c.inner.Import(ctx, source)
}

// mockSuggester is a hand-written test double for agent.Suggester.
type mockSuggester struct {
	suggest func(ctx context.Context, prompt string) (domain.Suggestion, error)
}

func (m *mockSuggester) Suggest(ctx context.Context, prompt string) (domain.Suggestion, error) {
	return m.suggest(ctx, prompt)
}

func suggesting(s domain.Suggestion) *mockSuggester {
	return &mockSuggester{suggest: func(context.Context, string) (domain.Suggestion, error) { return s, nil }}
}

var (
	_ agent.ParkStore  = (*countingParks)(nil)
	_ agent.VisitStore = (*countingVisits)(nil)
	_ agent.Importer   = (*countingImporter)(nil)
	_ agent.Suggester  = (*mockSuggester)(nil)
)
