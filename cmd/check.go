package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/mentormatch/core/feasibility"
	"github.com/kilianp07/mentormatch/infra/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the structural feasibility analyzer on a toy session",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New("check")

	mentors, startups, _, err := toySession(cfg)
	if err != nil {
		return fmt.Errorf("generate toy session: %w", err)
	}
	log.Infof("analyzing %d startups over %d tables (%s)", len(startups), cfg.Toy.NumTables, roundsLabel(cfg.Session))

	rep, err := feasibility.Analyze(mentors, startups, cfg.Session)
	if err != nil {
		return err
	}
	printReport(cmd, rep)
	return nil
}

func printReport(cmd *cobra.Command, rep *feasibility.Report) {
	out := cmd.OutOrStdout()
	if len(rep.Messages) == 0 {
		fmt.Fprintln(out, "- no structural capacity issues detected")
	}
	for _, msg := range rep.Messages {
		fmt.Fprintln(out, "-", msg)
	}
	fmt.Fprintln(out, "suggestion:", rep.Suggestion)
	fmt.Fprintf(out, "ok=%v startups=%d tables=%d min tables (OS)=%d min tables (OC)=%d\n",
		rep.OK, rep.NumStartups, rep.NumTables, rep.MinTablesFromOS, rep.MinTablesFromOC)
}
