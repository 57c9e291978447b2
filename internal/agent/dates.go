package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate reads loosely formatted date text such as "2025-07-10",
// "July 10, 2025" or "7/10/2025". Text that only yields year 0 is rejected.
func ParseDate(text string) (time.Time, error) {
	t, err := dateparse.ParseAny(strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("agent.ParseDate: %w", err)
	}
	if t.Year() == 0 {
		return time.Time{}, fmt.Errorf("agent.ParseDate: %q has no year", text)
	}
	return t, nil
}
