package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkordes/park-tracker/internal/domain"
)

// SystemPrompt fixes the action vocabulary the model may answer with.
var SystemPrompt = "You are a safe assistant for a terminal-based National Park Tracker. " +
	"When given a user prompt, output a single JSON object (no surrounding commentary) describing at most one allowed action. " +
	`Allowed actions: "` + strings.Join(domain.AllowedActions, `", "`) + `". ` +
	"The JSON must have keys: action (string), params (object), explanation (string). " +
	"Params for add_park: {name: string, state: string (optional)}. " +
	"Params for add_visit: {park: string, trail: string (optional), start: string (optional), end: string (optional), party: int (optional)}. " +
	`If you cannot map the prompt to a single allowed action, return action "none" and provide a short explanation.`

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// Advisor asks a Completer for a structured suggestion.
type Advisor struct {
	completer Completer
}

// NewAdvisor creates an Advisor backed by c.
func NewAdvisor(c Completer) *Advisor {
	return &Advisor{completer: c}
}

// Suggest returns the model's suggestion for prompt. Transport failures and
// answers that are not a single JSON object naming an allowed action all
// wrap domain.ErrModelUnavailable.
func (a *Advisor) Suggest(ctx context.Context, prompt string) (domain.Suggestion, error) {
	text, err := a.completer.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("llm.Advisor.Suggest: %w", err)
	}
	s, err := ParseSuggestion(text)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("llm.Advisor.Suggest: %w", err)
	}
	return s, nil
}

// ParseSuggestion extracts the first JSON object from text.
func ParseSuggestion(text string) (domain.Suggestion, error) {
	raw := jsonObject.FindString(text)
	if raw == "" {
		return domain.Suggestion{}, fmt.Errorf("%w: no JSON object in response", domain.ErrModelUnavailable)
	}

	var s domain.Suggestion
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return domain.Suggestion{}, fmt.Errorf("%w: decode suggestion: %v", domain.ErrModelUnavailable, err)
	}
	if !domain.IsAllowedAction(s.Action) {
		return domain.Suggestion{}, fmt.Errorf("%w: action %q is not allowed", domain.ErrModelUnavailable, s.Action)
	}
	if s.Params == nil {
		s.Params = map[string]any{}
	}
	return s, nil
}
