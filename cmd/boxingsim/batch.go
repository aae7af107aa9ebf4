package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"boxingsim/internal/config"
	"boxingsim/internal/events"
	"boxingsim/internal/fight"
	"boxingsim/internal/fighter"
	"boxingsim/internal/tunables"
)

var (
	batchCount  int
	batchRounds int
)

var batchCmd = &cobra.Command{
	Use:   "batch <fighterA.json> <fighterB.json>",
	Short: "Run a matchup many times in instant mode and tabulate outcomes",
	Args:  cobra.ExactArgs(2),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchCount, "count", 100, "number of bouts to simulate")
	batchCmd.Flags().IntVar(&batchRounds, "rounds", 12, "scheduled rounds per bout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	fA, err := config.LoadFighter(args[0])
	if err != nil {
		return err
	}
	fB, err := config.LoadFighter(args[1])
	if err != nil {
		return err
	}
	if batchCount < 1 {
		return &usageError{err: fmt.Errorf("--count must be at least 1, got %d", batchCount)}
	}
	if batchRounds < 1 || batchRounds > 15 {
		return &usageError{err: fmt.Errorf("--rounds must be in [1,15], got %d", batchRounds)}
	}

	winsA, winsB, draws, other := 0, 0, 0, 0
	stoppagesA, stoppagesB := 0, 0
	byMethod := make(map[fight.Method]int)
	roundsFought := 0

	for seed := int64(1); seed <= int64(batchCount); seed++ {
		cfg := fight.DefaultConfig(seed)
		cfg.Rounds = batchRounds
		cfg.RealTime = false

		bout := fight.New(cfg, fA, fB,
			fighter.NewInFightState(fA.ID), fighter.NewInFightState(fB.ID),
			events.NewBus(), tunables.Default())
		result := bout.Run()

		byMethod[result.Method]++
		roundsFought += result.Round
		switch {
		case result.WinnerID != nil && *result.WinnerID == fA.ID:
			winsA++
			if result.Method == fight.MethodKO || result.Method == fight.MethodTKO {
				stoppagesA++
			}
		case result.WinnerID != nil && *result.WinnerID == fB.ID:
			winsB++
			if result.Method == fight.MethodKO || result.Method == fight.MethodTKO {
				stoppagesB++
			}
		case result.Method == fight.MethodNoContest:
			other++
		default:
			draws++
		}
	}

	fmt.Fprintf(os.Stdout, "\n%s vs %s: %d bouts, %d rounds scheduled\n\n", fA.Name, fB.Name, batchCount, batchRounds)

	t := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	t.Header("FIGHTER", "WINS", "WIN%", "BY STOPPAGE")
	t.Append(fA.Name, fmt.Sprintf("%d", winsA), pct(winsA, batchCount), fmt.Sprintf("%d", stoppagesA))
	t.Append(fB.Name, fmt.Sprintf("%d", winsB), pct(winsB, batchCount), fmt.Sprintf("%d", stoppagesB))
	t.Append("draw", fmt.Sprintf("%d", draws), pct(draws, batchCount), "-")
	if other > 0 {
		t.Append("no contest", fmt.Sprintf("%d", other), pct(other, batchCount), "-")
	}
	t.Render()

	fmt.Fprintf(os.Stdout, "\nAverage length: %.1f rounds\n", float64(roundsFought)/float64(batchCount))
	fmt.Fprintln(os.Stdout, "By method:")
	for method, n := range byMethod {
		fmt.Fprintf(os.Stdout, "  %-20s %d\n", method, n)
	}
	return nil
}

func pct(n, total int) string {
	return fmt.Sprintf("%.0f%%", 100*float64(n)/float64(total))
}
