package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/render"
)

func newAddParkCmd(a *app) *cobra.Command {
	var name, state string

	cmd := &cobra.Command{
		Use:   "add-park",
		Short: "Add a park",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.parks.Add(cmd.Context(), domain.Park{Name: name, State: domain.StringPtr(state)})
			if err != nil {
				return err
			}
			a.printf("Added park: %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "park name (required)")
	cmd.Flags().StringVar(&state, "state", "", "state or region code")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newListParksCmd(a *app) *cobra.Command {
	var (
		visited, unvisited, showNotes bool
		state                         string
	)

	cmd := &cobra.Command{
		Use:   "list-parks",
		Short: "List parks sorted by name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := domain.ParkFilter{State: state}
			switch {
			case visited:
				filter.Visited = domain.VisitedOnly
			case unvisited:
				filter.Visited = domain.UnvisitedOnly
			}
			parks, err := a.parks.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return render.Parks(a.out, parks, showNotes)
		},
	}

	cmd.Flags().BoolVar(&visited, "visited", false, "show only parks you have visited")
	cmd.Flags().BoolVar(&unvisited, "unvisited", false, "show only parks you have not visited")
	cmd.Flags().BoolVar(&showNotes, "show-notes", false, "display the personal notes column")
	cmd.Flags().StringVar(&state, "state", "", "only parks whose state contains this text")
	cmd.MarkFlagsMutuallyExclusive("visited", "unvisited")
	return cmd
}

func newUpdateParkCmd(a *app) *cobra.Command {
	var (
		id   string
		sets []string
	)

	cmd := &cobra.Command{
		Use:   "update-park",
		Short: "Change fields of a park by id",
		Long:  "Change fields of a park by id. Updatable fields: " + mutableFieldList() + ". Other keys are ignored.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parkID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("%w: --id: %v", domain.ErrValidation, err)
			}

			fields := make(map[string]string, len(sets))
			for _, kv := range sets {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("%w: --set %q: want key=value", domain.ErrValidation, kv)
				}
				fields[strings.TrimSpace(k)] = v
			}
			patch, ignored, err := domain.ParseParkPatch(fields)
			if err != nil {
				return err
			}
			if len(ignored) > 0 {
				a.printf("Ignored unknown fields: %s\n", strings.Join(ignored, ", "))
			}

			p, err := a.parks.Update(cmd.Context(), parkID, patch)
			if errors.Is(err, domain.ErrNotFound) {
				a.printf("Park %s not found.\n", parkID)
				return nil
			}
			if err != nil {
				return err
			}
			a.printf("Updated park: %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "park id (required)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value to change; repeatable")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newNoteParkCmd(a *app) *cobra.Command {
	var park, note string

	cmd := &cobra.Command{
		Use:   "note-park",
		Short: "Add or replace a personal note on a park",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, ok, err := a.findPark(cmd, park)
			if err != nil || !ok {
				return err
			}
			if _, err := a.parks.Update(cmd.Context(), p.ID, domain.ParkPatch{Notes: &note}); err != nil {
				return err
			}
			a.printf("Saved note for %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&park, "park", "", "park name (required)")
	cmd.Flags().StringVar(&note, "note", "", "note text (required)")
	_ = cmd.MarkFlagRequired("park")
	_ = cmd.MarkFlagRequired("note")
	return cmd
}

// findPark looks a park up by exact name. It prints a message and reports
// false when none exists.
func (a *app) findPark(cmd *cobra.Command, name string) (domain.Park, bool, error) {
	p, err := a.parks.FindByName(cmd.Context(), name)
	if errors.Is(err, domain.ErrNotFound) {
		a.printf("Park '%s' not found; create it first.\n", name)
		return domain.Park{}, false, nil
	}
	if err != nil {
		return domain.Park{}, false, err
	}
	return p, true, nil
}

func mutableFieldList() string {
	names := make([]string, 0, len(domain.MutableParkFields))
	for _, f := range domain.MutableParkFields {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
