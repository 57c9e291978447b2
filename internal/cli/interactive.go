package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pkordes/park-tracker/internal/agent"
	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/llm"
	"github.com/pkordes/park-tracker/internal/render"
)

func newAgentCmd(a *app) *cobra.Command {
	var (
		prompt string
		useLLM bool
	)

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Run the free-text assistant",
		Long: "Run the free-text assistant, interactively or for one --prompt. " +
			"With --use-llm each line is first offered to the configured model; " +
			"its suggestion only runs after you confirm it.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := a.newResolver(cmd, useLLM)
			if prompt != "" {
				_, err := r.Handle(cmd.Context(), prompt)
				return err
			}
			return r.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "handle one prompt and exit")
	cmd.Flags().BoolVar(&useLLM, "use-llm", false, "ask the configured model first")
	return cmd
}

func (a *app) newResolver(cmd *cobra.Command, useLLM bool) *agent.Resolver {
	cfg := agent.Config{
		Parks:        a.parks,
		Visits:       a.visits,
		Importer:     a.imports,
		UseModel:     useLLM,
		ModelTimeout: a.cfg.LLM.Timeout,
		ImportSource: a.cfg.ImportSource,
		Input:        a.input,
		Output:       a.out,
		Logger:       a.log,
	}
	if useLLM {
		completer, err := llm.NewCompleter(cmd.Context(), llm.Options{
			Provider: a.cfg.LLM.Provider,
			APIKey:   a.cfg.LLM.APIKey,
			Model:    a.cfg.LLM.Model,
			BaseURL:  a.cfg.LLM.BaseURL,
			Timeout:  a.cfg.LLM.Timeout,
		})
		if err != nil {
			a.log.Warn("model backend unavailable", zap.Error(err))
		} else {
			cfg.Suggester = llm.NewAdvisor(completer)
		}
	}
	return agent.New(cfg)
}

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Numbered interactive menu for common actions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.menu(cmd)
		},
	}
}

func (a *app) menu(cmd *cobra.Command) error {
	ctx := cmd.Context()
	for {
		a.printf("\nNational Park Tracker - Menu\n")
		a.printf("1) List parks\n")
		a.printf("2) Add park\n")
		a.printf("3) Import parks from %s\n", a.cfg.ImportSource)
		a.printf("4) List visits\n")
		a.printf("5) Add visit\n")
		a.printf("6) Launch AI agent\n")
		a.printf("0) Exit\n")

		choice, ok := a.ask("Select an option: ")
		if !ok {
			a.printf("\nExiting menu.\n")
			return nil
		}

		var err error
		switch choice {
		case "0":
			a.printf("Goodbye.\n")
			return nil
		case "1":
			var parks []domain.Park
			if parks, err = a.parks.List(ctx, domain.ParkFilter{}); err == nil {
				err = render.Parks(a.out, parks, false)
			}
		case "2":
			name, _ := a.ask("Park name: ")
			state, _ := a.ask("State (optional): ")
			if name != "" {
				var p domain.Park
				if p, err = a.parks.Add(ctx, domain.Park{Name: name, State: domain.StringPtr(state)}); err == nil {
					a.printf("Added park: %s\n", p.Name)
				}
			}
		case "3":
			err = a.importParks(cmd, a.cfg.ImportSource)
		case "4":
			park, _ := a.ask("Park name to filter (leave blank for all): ")
			err = a.listVisits(cmd, park)
		case "5":
			err = a.menuAddVisit(cmd)
		case "6":
			a.printf("Launching local AI agent (type \"exit\" to quit)\n")
			err = a.newResolver(cmd, false).Run(ctx)
		default:
			a.printf("Unknown option\n")
		}
		if err != nil {
			return err
		}
	}
}

func (a *app) menuAddVisit(cmd *cobra.Command) error {
	name, _ := a.ask("Park name: ")
	trail, _ := a.ask("Trail (optional): ")
	partyText, _ := a.ask("Party size (default 1): ")
	if name == "" {
		return nil
	}
	party, err := strconv.Atoi(partyText)
	if err != nil {
		party = 1
	}

	p, ok, err := a.findPark(cmd, name)
	if err != nil || !ok {
		return err
	}
	v, err := a.visits.Add(cmd.Context(), domain.Visit{ParkID: p.ID, Trail: domain.StringPtr(trail), PartySize: party})
	if err != nil {
		return err
	}
	a.printf("Added visit: %s to park %s\n", v.ID, p.Name)
	return nil
}

// ask prints label and reads one trimmed line. It reports false at end of input.
func (a *app) ask(label string) (string, bool) {
	a.printf("%s", label)
	if !a.input.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.input.Text()), true
}
