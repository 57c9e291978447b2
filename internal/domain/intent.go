package domain

import "slices"

// Action names the resolver is allowed to execute.
const (
	ActionListParks   = "list_parks"
	ActionImportParks = "import_parks"
	ActionAddPark     = "add_park"
	ActionAddVisit    = "add_visit"
	ActionNone        = "none"
)

// AllowedActions is the complete allow-list, in the order the model is told about it.
var AllowedActions = []string{ActionListParks, ActionImportParks, ActionAddPark, ActionAddVisit, ActionNone}

// IsAllowedAction reports whether action is on the allow-list.
func IsAllowedAction(action string) bool {
	return slices.Contains(AllowedActions, action)
}

// Suggestion is one structured answer from the text-completion backend.
// Params holds raw JSON-decoded values and is never nil.
type Suggestion struct {
	Action      string         `json:"action"`
	Params      map[string]any `json:"params"`
	Explanation string         `json:"explanation"`
}
