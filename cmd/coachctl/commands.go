package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loverescue/coachcore/internal/assessment"
	"github.com/loverescue/coachcore/internal/crisis"
	"github.com/loverescue/coachcore/internal/insight"
	"github.com/loverescue/coachcore/internal/intervention"
	"github.com/loverescue/coachcore/internal/ritual"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "coachctl",
		Short:         "Run the coaching decision core from the command line",
		Long:          "coachctl evaluates assessment results, triages crisis signals and prints programs as indented JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newInsightsCmd(),
		newPlanCmd(),
		newCrisisCmd(),
		newInterventionCmd(),
		newFirstAidCmd(),
		newRitualsCmd(),
		newRulesCmd(),
	)
	return root
}

func newInsightsCmd() *cobra.Command {
	var (
		file     string
		withPlan bool
	)
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate insights from a JSON object of assessment results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			results, err := assessment.DecodeResults(data)
			if err != nil {
				return fmt.Errorf("read results: %w", err)
			}
			insights := insight.Generate(results)
			if !withPlan {
				return outputJSON(cmd.OutOrStdout(), insights)
			}
			return outputJSON(cmd.OutOrStdout(), struct {
				Insights   []insight.Insight  `json:"insights"`
				ActionPlan insight.ActionPlan `json:"action_plan"`
			}{insights, insight.BuildActionPlan(insights)})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "results file, - for stdin")
	cmd.Flags().BoolVar(&withPlan, "plan", false, "also build the action plan")
	return cmd
}

func newPlanCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build an action plan from a JSON array of insights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			var insights []insight.Insight
			if err := json.Unmarshal(data, &insights); err != nil {
				return fmt.Errorf("read insights: %w", err)
			}
			return outputJSON(cmd.OutOrStdout(), insight.BuildActionPlan(insights))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "insights file, - for stdin")
	return cmd
}

func newCrisisCmd() *cobra.Command {
	var recentFight, separationThreat, infidelity, emotionalShutdown, physicalSafety string
	cmd := &cobra.Command{
		Use:   "crisis",
		Short: "Triage crisis signals",
		Long:  "Each signal flag is tri-state: leave it unset when the question was not answered, or pass true or false.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				s   crisis.Signals
				err error
			)
			for _, f := range []struct {
				name string
				raw  string
				dst  **bool
			}{
				{"recent-fight", recentFight, &s.RecentFight},
				{"separation-threat", separationThreat, &s.SeparationThreat},
				{"infidelity", infidelity, &s.Infidelity},
				{"emotional-shutdown", emotionalShutdown, &s.EmotionalShutdown},
				{"physical-safety", physicalSafety, &s.PhysicalSafety},
			} {
				if *f.dst, err = parseTriState(f.raw); err != nil {
					return fmt.Errorf("--%s: %w", f.name, err)
				}
			}

			a, err := crisis.Assess(&s)
			if err != nil {
				return err
			}
			out := struct {
				Assessment   crisis.Assessment     `json:"assessment"`
				Intervention *intervention.Program `json:"intervention,omitempty"`
			}{Assessment: a}
			if a.Pathway != crisis.PathwaySafetyFirst {
				prog := intervention.For(a.Pathway)
				out.Intervention = &prog
			}
			return outputJSON(cmd.OutOrStdout(), out)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&recentFight, "recent-fight", "", "had a recent fight (true|false)")
	flags.StringVar(&separationThreat, "separation-threat", "", "separation was threatened (true|false)")
	flags.StringVar(&infidelity, "infidelity", "", "infidelity was discovered (true|false)")
	flags.StringVar(&emotionalShutdown, "emotional-shutdown", "", "a partner has shut down (true|false)")
	flags.StringVar(&physicalSafety, "physical-safety", "", "the user feels physically safe (true|false)")
	return cmd
}

func newInterventionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intervention <pathway>",
		Short: "Print the intervention program for a pathway",
		Long:  "Unknown pathways print the standard repair program.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return outputJSON(cmd.OutOrStdout(), intervention.Lookup(args[0]))
		},
	}
}

func newFirstAidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "first-aid",
		Short: "Print the flooding first-aid protocol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return outputJSON(cmd.OutOrStdout(), intervention.FloodingFirstAid())
		},
	}
}

func newRitualsCmd() *cobra.Command {
	var week int
	cmd := &cobra.Command{
		Use:   "rituals",
		Short: "List the rituals unlocked by a program week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return outputJSON(cmd.OutOrStdout(), struct {
				Program ritual.Program  `json:"program"`
				Week    int             `json:"week"`
				Rituals []ritual.Ritual `json:"rituals"`
			}{ritual.Builder(), week, ritual.ForWeek(week)})
		},
	}
	cmd.Flags().IntVarP(&week, "week", "w", 1, "program week")
	return cmd
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the insight rule catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return outputJSON(cmd.OutOrStdout(), insight.Catalog())
		},
	}
}

// parseTriState maps "" to nil and anything strconv.ParseBool accepts to a
// pointer.
func parseTriState(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("want true or false, got %q", raw)
	}
	return crisis.Bool(v), nil
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return data, nil
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
