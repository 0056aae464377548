package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/mentormatch/config"
	coremetrics "github.com/kilianp07/mentormatch/core/metrics"
	"github.com/kilianp07/mentormatch/core/repair"
	"github.com/kilianp07/mentormatch/core/session"
	"github.com/kilianp07/mentormatch/infra/logger"
	"github.com/kilianp07/mentormatch/infra/metrics"
	"github.com/kilianp07/mentormatch/internal/toygen"
)

var (
	repairMaxRounds int
	repairAuto      bool
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Interactively repair a structurally infeasible toy session",
	Long: `Repair drives the human-in-the-loop workflow: each round the
feasibility analyzer is re-run against the current session state, the
diagnostics are printed and an action is read from stdin. Repairs accumulate
on the same in-memory state until the session is feasible, the operator
aborts or the round limit is hit.`,
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().IntVar(&repairMaxRounds, "max-rounds", 10, "maximum number of diagnosis rounds")
	repairCmd.Flags().BoolVar(&repairAuto, "auto", false, "run both auto-repair variants without prompting")
	rootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New("repair")
	if repairAuto {
		return runAutoRepair(cmd, cfg, log)
	}

	gen := toygen.Generator(cfg.Toy.MentorsPerTable, cfg.Toy.Seed)
	wf, err := repair.NewWorkflow(gen, cfg.Toy.NumTables, cfg.Toy.NumStartups, repairMaxRounds, cfg.Session, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	for {
		fmt.Fprintf(out, "\n========== round %d ==========\n", wf.Round())
		fmt.Fprintf(out, "settings: tables=%d startups=%d\n", wf.NumTables(), wf.NumStartups())
		printReport(cmd, wf.Report())

		switch wf.State() {
		case repair.StateFeasible:
			fmt.Fprintln(out, "session is structurally feasible")
			return nil
		case repair.StateRoundLimit:
			fmt.Fprintln(out, "reached maximum rounds without feasibility")
			return nil
		case repair.StateAborted:
			fmt.Fprintln(out, "aborted")
			return nil
		}

		action, ok := promptAction(out, reader)
		if !ok {
			continue
		}
		if _, err := wf.Apply(action); err != nil {
			return err
		}
	}
}

// runAutoRepair runs the table-mapping variant on the derived index and the
// mentor-rebinding variant on the entities, reporting both outcomes.
func runAutoRepair(cmd *cobra.Command, cfg *config.Config, log logger.Logger) error {
	out := cmd.OutOrStdout()
	sink, err := metrics.NewPromSink(nil)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	mentors, startups, _, err := toySession(cfg)
	if err != nil {
		return fmt.Errorf("generate toy session: %w", err)
	}
	idx, err := session.BuildIndex(mentors, startups)
	if err != nil {
		return err
	}

	mres := repair.Mappings(idx, cfg.Session, log)
	fmt.Fprintf(out, "mapping repair: ok=%v moves=%d\n", mres.OK, mres.Moves)
	printReport(cmd, mres.Report)
	if rerr := sink.RecordRepair(coremetrics.RepairEvent{Mode: "mappings", Moves: mres.Moves, Resolved: mres.OK}); rerr != nil {
		log.Warnf("record repair event: %v", rerr)
	}

	rres, err := repair.Rebind(mentors, startups, cfg.Session, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "rebind repair: ok=%v moves=%d\n", rres.OK, rres.Moves)
	printReport(cmd, rres.Report)
	if rerr := sink.RecordRepair(coremetrics.RepairEvent{Mode: "rebind", Moves: rres.Moves, Resolved: rres.OK}); rerr != nil {
		log.Warnf("record repair event: %v", rerr)
	}
	return nil
}

func promptAction(out interface{ Write([]byte) (int, error) }, reader *bufio.Reader) (repair.Action, bool) {
	fmt.Fprint(out, `
choose an action:
  1) try automatic OS/OC reassignment (guided by scores)
  2) increase number of tables by 1 (regenerate)
  3) decrease number of startups by 1 (regenerate)
  4) regenerate from scratch with same settings
  5) abort
your choice [1-5]: `)

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return repair.ActionAbort, true
	}
	switch strings.TrimSpace(line) {
	case "1":
		return repair.ActionRepair, true
	case "2":
		return repair.ActionAddTable, true
	case "3":
		return repair.ActionRemoveStartup, true
	case "4":
		return repair.ActionRegenerate, true
	case "5":
		return repair.ActionAbort, true
	default:
		fmt.Fprintln(out, "invalid choice, please select 1-5")
		return 0, false
	}
}
