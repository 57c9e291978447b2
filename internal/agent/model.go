package agent

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pkordes/park-tracker/internal/domain"
)

// delegate asks the model for a suggestion. It claims the turn only when a
// suggestion was shown and the operator was asked to confirm it; every other
// outcome lets the local rules run.
func (r *Resolver) delegate(ctx context.Context, text, _ string) (bool, error) {
	s, err := r.suggest(ctx, text)
	if err != nil {
		r.log.Warn("model suggestion failed", zap.Error(err))
		r.println("LLM unavailable or failed; falling back to local rules.")
		return false, nil
	}
	if s.Action == domain.ActionNone {
		if s.Explanation != "" {
			r.printf("LLM: %s\n", s.Explanation)
		}
		return false, nil
	}

	r.println("LLM suggestion:")
	if s.Explanation != "" {
		r.println(s.Explanation)
	}
	r.printf("Suggested action: %s with params %v\n", s.Action, s.Params)
	if !r.confirm("Execute suggested action? (y/n): ") {
		r.println("Agent: suggested action not executed")
		return true, nil
	}
	return true, r.execute(ctx, s)
}

func (r *Resolver) suggest(ctx context.Context, text string) (domain.Suggestion, error) {
	if r.cfg.Suggester == nil {
		return domain.Suggestion{}, fmt.Errorf("%w: no model configured", domain.ErrModelUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ModelTimeout)
	defer cancel()

	s, err := r.cfg.Suggester.Suggest(ctx, text)
	if err != nil {
		return domain.Suggestion{}, err
	}
	if !domain.IsAllowedAction(s.Action) {
		return domain.Suggestion{}, fmt.Errorf("%w: action %q is not allowed", domain.ErrModelUnavailable, s.Action)
	}
	return s, nil
}

// execute runs a confirmed suggestion through the same store actions the
// local rules use.
func (r *Resolver) execute(ctx context.Context, s domain.Suggestion) error {
	switch s.Action {
	case domain.ActionImportParks:
		return r.importParks(ctx)
	case domain.ActionListParks:
		return r.listParks(ctx)
	case domain.ActionAddPark:
		name := paramString(s.Params, "name")
		if name == "" {
			r.println(`Agent: add_park missing required param "name"`)
			return nil
		}
		return r.addPark(ctx, name, paramString(s.Params, "state"))
	case domain.ActionAddVisit:
		park := paramString(s.Params, "park")
		if park == "" {
			r.println(`Agent: add_visit missing required param "park"`)
			return nil
		}
		attrs := domain.Visit{
			Trail:     domain.StringPtr(paramString(s.Params, "trail")),
			Start:     domain.StringPtr(paramString(s.Params, "start")),
			End:       domain.StringPtr(paramString(s.Params, "end")),
			PartySize: paramInt(s.Params, "party"),
		}
		v, ok, err := r.addVisitTo(ctx, park, attrs)
		if err != nil || !ok {
			return err
		}
		r.printf("Agent: added visit to %s (party %d)\n", park, v.PartySize)
		return nil
	default:
		r.println("Agent: action not recognized or not allowed")
		return nil
	}
}

func paramString(params map[string]any, key string) string {
	switch v := params[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// paramInt reads a whole number, defaulting to 1.
func paramInt(params map[string]any, key string) int {
	switch v := params[key].(type) {
	case float64:
		if v == math.Trunc(v) && v != 0 {
			return int(v)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n != 0 {
			return n
		}
	}
	return 1
}
