// Package render draws parks and visits as console tables.
package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pkordes/park-tracker/internal/domain"
)

// NoteWidth is the widest note shown in a park listing.
const NoteWidth = 60

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// Parks writes a Name/State/Lat/Lon table, plus a Notes column when showNotes is set.
func Parks(w io.Writer, parks []domain.Park, showNotes bool) error {
	headers := []string{"Name", "State", "Lat", "Lon"}
	if showNotes {
		headers = append(headers, "Notes")
	}
	t := newTable(headers...)
	for _, p := range parks {
		row := []string{p.Name, p.StateOrEmpty(), Coord(p.Lat), Coord(p.Lon)}
		if showNotes {
			row = append(row, TruncateNote(p.NotesOrEmpty()))
		}
		t.Row(row...)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Visits writes one row per visit with its resolved park name.
func Visits(w io.Writer, visits []domain.VisitDetail) error {
	t := newTable("ID", "Park", "Trail", "Start", "End", "Party", "Created")
	for _, v := range visits {
		t.Row(
			v.ID.String(),
			v.ParkName,
			v.TrailOrEmpty(),
			v.StartOrEmpty(),
			v.EndOrEmpty(),
			strconv.Itoa(v.PartySize),
			v.CreatedAt.Format(time.RFC3339),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Coord formats a coordinate to six decimals, or "" when absent.
func Coord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 6, 64)
}

// TruncateNote shortens s to NoteWidth runes, ending in "..." when cut.
func TruncateNote(s string) string {
	r := []rune(s)
	if len(r) <= NoteWidth {
		return s
	}
	return string(r[:NoteWidth-3]) + "..."
}
