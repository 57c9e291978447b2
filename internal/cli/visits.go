package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pkordes/park-tracker/internal/agent"
	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/render"
)

func newAddVisitCmd(a *app) *cobra.Command {
	var (
		park, trail, start, end, notes string
		party                          int
	)

	cmd := &cobra.Command{
		Use:   "add-visit",
		Short: "Record a visit to a park",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, ok, err := a.findPark(cmd, park)
			if err != nil || !ok {
				return err
			}
			v, err := a.visits.Add(cmd.Context(), domain.Visit{
				ParkID:    p.ID,
				Trail:     domain.StringPtr(trail),
				Start:     domain.StringPtr(start),
				End:       domain.StringPtr(end),
				PartySize: party,
				Notes:     domain.StringPtr(notes),
			})
			if err != nil {
				return err
			}
			a.printf("Added visit: %s to park %s\n", v.ID, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&park, "park", "", "park name (required)")
	cmd.Flags().StringVar(&trail, "trail", "", "trail walked")
	cmd.Flags().StringVar(&start, "start", "", "start date")
	cmd.Flags().StringVar(&end, "end", "", "end date")
	cmd.Flags().IntVar(&party, "party", 1, "party size")
	cmd.Flags().StringVar(&notes, "notes", "", "visit notes")
	_ = cmd.MarkFlagRequired("park")
	return cmd
}

func newVisitParkCmd(a *app) *cobra.Command {
	var (
		park, date, notes string
		party             int
	)

	cmd := &cobra.Command{
		Use:   "visit-park",
		Short: "Mark a park as visited",
		Long:  "Mark a park as visited. --date accepts loose formats such as 2025-07-10 or \"July 10, 2025\".",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, ok, err := a.findPark(cmd, park)
			if err != nil || !ok {
				return err
			}

			var start *string
			if date != "" {
				d, err := agent.ParseDate(date)
				if err != nil {
					a.printf("Could not understand date %q; recording the visit without one.\n", date)
				} else {
					start = domain.StringPtr(d.Format("2006-01-02"))
				}
			}

			v, err := a.visits.Add(cmd.Context(), domain.Visit{
				ParkID:    p.ID,
				Start:     start,
				PartySize: party,
				Notes:     domain.StringPtr(notes),
			})
			if err != nil {
				return err
			}
			a.printf("Marked visit to %s (visit id=%s)\n", p.Name, v.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&park, "park", "", "park name (required)")
	cmd.Flags().StringVar(&date, "date", "", "visit date")
	cmd.Flags().IntVar(&party, "party", 1, "party size")
	cmd.Flags().StringVar(&notes, "notes", "", "visit notes")
	_ = cmd.MarkFlagRequired("park")
	return cmd
}

func newListVisitsCmd(a *app) *cobra.Command {
	var park string

	cmd := &cobra.Command{
		Use:   "list-visits",
		Short: "List visits, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listVisits(cmd, park)
		},
	}

	cmd.Flags().StringVar(&park, "park", "", "only visits to this park")
	return cmd
}

func (a *app) listVisits(cmd *cobra.Command, parkName string) error {
	parkID := uuid.Nil
	if parkName != "" {
		p, ok, err := a.findPark(cmd, parkName)
		if err != nil || !ok {
			return err
		}
		parkID = p.ID
	}
	visits, err := a.visits.ListDetailed(cmd.Context(), parkID)
	if err != nil {
		return err
	}
	return render.Visits(a.out, visits)
}
