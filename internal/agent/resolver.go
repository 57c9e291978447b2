// Package agent implements the free-text intent resolver: an ordered list of
// matcher/handler rules, optionally preceded by a model-delegation step, that
// maps operator input onto a fixed allow-list of store operations.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pkordes/park-tracker/internal/domain"
)

// Prompt is printed before each line is read in an interactive session.
const Prompt = "agent> "

// DefaultModelTimeout bounds one model call when Config.ModelTimeout is zero.
const DefaultModelTimeout = 20 * time.Second

// UsageHint is printed when no rule claims the input.
const UsageHint = `Agent: I did not understand that. Try: "import parks", "list parks", "add park <name>", or "add visit to <park> party N"`

// ParkStore is the subset of park operations the resolver may invoke.
type ParkStore interface {
	Add(ctx context.Context, attrs domain.Park) (domain.Park, error)
	List(ctx context.Context, filter domain.ParkFilter) ([]domain.Park, error)
	FindByName(ctx context.Context, name string) (domain.Park, error)
}

// VisitStore is the subset of visit operations the resolver may invoke.
type VisitStore interface {
	Add(ctx context.Context, attrs domain.Visit) (domain.Visit, error)
}

// Importer merges an external park listing into the store.
type Importer interface {
	Import(ctx context.Context, source string) (domain.ImportResult, error)
}

// Suggester asks an external model for one structured suggestion.
type Suggester interface {
	Suggest(ctx context.Context, prompt string) (domain.Suggestion, error)
}

// Config carries the resolver's collaborators. Parks, Visits, Importer,
// Input and Output are required.
type Config struct {
	Parks    ParkStore
	Visits   VisitStore
	Importer Importer

	// Suggester is consulted first when UseModel is set. A nil Suggester
	// with UseModel set behaves as an unavailable model.
	Suggester    Suggester
	UseModel     bool
	ModelTimeout time.Duration

	// ImportSource is the listing used by "import parks".
	ImportSource string

	// ParseDate turns free-form date text into a date. Defaults to ParseDate.
	ParseDate func(string) (time.Time, error)

	Input  *bufio.Scanner
	Output io.Writer
	Logger *zap.Logger
}

// Resolver classifies and acts on one line of free text at a time.
type Resolver struct {
	cfg   Config
	out   io.Writer
	log   *zap.Logger
	rules []rule
}

// rule is one matcher/handler pair. Rules are tried in order and the first
// whose handler claims the input ends the turn.
type rule struct {
	name   string
	match  func(lower string) bool
	handle func(ctx context.Context, text, lower string) (bool, error)
}

// New creates a Resolver from cfg.
func New(cfg Config) *Resolver {
	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = DefaultModelTimeout
	}
	if cfg.ParseDate == nil {
		cfg.ParseDate = ParseDate
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	r := &Resolver{cfg: cfg, out: cfg.Output, log: cfg.Logger.Named("agent")}
	r.rules = r.buildRules()
	return r
}

func (r *Resolver) buildRules() []rule {
	return []rule{
		{name: "model", match: func(string) bool { return r.cfg.UseModel }, handle: r.delegate},
		{name: "region", match: matchRegion, handle: claim(r.findInRegion)},
		{name: "plan-visit", match: matchPlanVisit, handle: claim(r.planVisit)},
		{name: "import", match: containsAll("import", "park"), handle: claim(r.importCmd)},
		{name: "list", match: containsAll("list", "park"), handle: claim(r.listCmd)},
		{name: "add-park", match: hasPrefix("add park"), handle: claim(r.addParkCmd)},
		{name: "add-visit", match: matchAddVisit, handle: claim(r.addVisitCmd)},
	}
}

// Run reads lines until an exit token or end of input. It returns only the
// errors that must end the session, such as a failed store write.
func (r *Resolver) Run(ctx context.Context) error {
	for {
		r.printf("%s", Prompt)
		if !r.cfg.Input.Scan() {
			r.println()
			r.println("Agent session closed")
			return r.cfg.Input.Err()
		}
		cont, err := r.Handle(ctx, r.cfg.Input.Text())
		if err != nil {
			return err
		}
		if !cont {
			r.println("Agent: exiting")
			return nil
		}
	}
}

// Handle processes one line of input. It reports false when the input asked
// to end the session.
func (r *Resolver) Handle(ctx context.Context, text string) (bool, error) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)
	if lower == "exit" || lower == "quit" {
		return false, nil
	}
	if lower == "" {
		return true, nil
	}

	for _, rl := range r.rules {
		if !rl.match(lower) {
			continue
		}
		claimed, err := rl.handle(ctx, text, lower)
		if err != nil {
			return true, fmt.Errorf("agent.Resolver.Handle: %s: %w", rl.name, err)
		}
		if claimed {
			return true, nil
		}
	}
	r.println(UsageHint)
	return true, nil
}

// confirm asks question and reports whether the operator answered y or yes.
// End of input counts as no.
func (r *Resolver) confirm(question string) bool {
	r.printf("%s", question)
	if !r.cfg.Input.Scan() {
		r.println()
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(r.cfg.Input.Text()))
	return answer == "y" || answer == "yes"
}

func (r *Resolver) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *Resolver) println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// soft reports whether err is a failure the session survives.
func soft(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrSourceUnavailable)
}

func claim(fn func(ctx context.Context, text, lower string) error) func(context.Context, string, string) (bool, error) {
	return func(ctx context.Context, text, lower string) (bool, error) {
		return true, fn(ctx, text, lower)
	}
}

func containsAll(words ...string) func(string) bool {
	return func(lower string) bool {
		for _, w := range words {
			if !strings.Contains(lower, w) {
				return false
			}
		}
		return true
	}
}

func hasPrefix(prefix string) func(string) bool {
	return func(lower string) bool { return strings.HasPrefix(lower, prefix) }
}

func matchRegion(lower string) bool {
	return (strings.Contains(lower, "find") || strings.Contains(lower, "parks")) && strings.Contains(lower, " in ")
}

func matchPlanVisit(lower string) bool {
	return strings.Contains(lower, "plan") && strings.Contains(lower, "visit") && strings.Contains(lower, " to ")
}

func matchAddVisit(lower string) bool {
	return strings.HasPrefix(lower, "add visit") || (strings.Contains(lower, "add") && strings.Contains(lower, "visit"))
}
