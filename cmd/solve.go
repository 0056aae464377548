package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/mentormatch/core/feasibility"
	"github.com/kilianp07/mentormatch/core/session"
	"github.com/kilianp07/mentormatch/core/solver"
	"github.com/kilianp07/mentormatch/infra/logger"
	"github.com/kilianp07/mentormatch/infra/metrics"
	"github.com/kilianp07/mentormatch/internal/milp"
	"github.com/kilianp07/mentormatch/pkg/export"
)

var (
	solveFixed  bool
	solveOut    string
	solveFormat string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a toy session schedule",
	Long: `Solve generates a toy session, prunes structurally infeasible
configurations with the analyzer, and runs either the joint
assignment-and-scheduling solver (default) or the fixed-assignment seating
solver (--fixed).`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&solveFixed, "fixed", false, "keep the generated OS/OC assignments and only solve seating")
	solveCmd.Flags().StringVar(&solveOut, "out", "", "write the solved plan to this file")
	solveCmd.Flags().StringVar(&solveFormat, "format", "json", "export format: json or csv")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New("solve")

	mentors, startups, fit, err := toySession(cfg)
	if err != nil {
		return fmt.Errorf("generate toy session: %w", err)
	}

	rep, err := feasibility.Analyze(mentors, startups, cfg.Session)
	if err != nil {
		return err
	}
	printReport(cmd, rep)
	if !rep.OK {
		fmt.Fprintln(cmd.OutOrStdout(), "skipping solve: session is structurally infeasible")
		return nil
	}

	bb := milp.NewBranchAndBound()
	if cfg.Solver.MaxNodes > 0 {
		bb.MaxNodes = cfg.Solver.MaxNodes
	}
	if cfg.Solver.MaxSeconds > 0 {
		bb.MaxDuration = time.Duration(cfg.Solver.MaxSeconds) * time.Second
	}
	sink, err := metrics.NewPromSink(nil)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	eng := solver.New(bb, log, sink)

	if solveFixed {
		idx, err := session.BuildIndex(mentors, startups)
		if err != nil {
			return err
		}
		tableFit, err := solver.TableFit(mentors, startups, fit)
		if err != nil {
			return err
		}
		status, sched, err := eng.SolveSeating(idx, cfg.Session, tableFit)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "solver status:", status)
		if status.Solved() {
			printSchedule(cmd, sched, cfg.Session)
			return exportPlan(export.Plan{Startups: startups, Schedule: sched})
		}
		return nil
	}

	res, err := eng.SolveJoint(mentors, startups, fit, cfg.Session)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "solver status:", res.Status)
	if !res.Status.Solved() {
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "total fit: %.2f\n", res.Objective)
	assigned := solver.ApplyAssignments(startups, res)
	for _, st := range assigned {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OS=%s OC=%s\n", st.ID, st.OSMentorID, st.OCMentorID)
	}
	printSchedule(cmd, res.Schedule, cfg.Session)
	return exportPlan(export.Plan{Startups: assigned, Schedule: res.Schedule})
}

// exportPlan writes the plan to the --out file when one was requested.
func exportPlan(p export.Plan) error {
	if solveOut == "" {
		return nil
	}
	f, err := os.Create(solveOut)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	switch solveFormat {
	case "json":
		err = export.WriteJSON(f, p)
	case "csv":
		err = export.WriteCSV(f, p)
	default:
		err = fmt.Errorf("unknown export format %q", solveFormat)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSchedule(cmd *cobra.Command, sched solver.Schedule, cfg session.Config) {
	out := cmd.OutOrStdout()
	for k := 1; k <= cfg.Rounds; k++ {
		fmt.Fprintf(out, "=== round %d ===\n", k)
		for _, seat := range sched {
			if seat.Round == k {
				fmt.Fprintf(out, "table %d: %s\n", seat.Table, seat.StartupID)
			}
		}
	}
}
