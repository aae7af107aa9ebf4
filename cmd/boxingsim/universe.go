package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"boxingsim/internal/config"
	"boxingsim/internal/persistence"
	"boxingsim/internal/tunables"
	"boxingsim/internal/universe"
)

var (
	universeFighters int
	universeWeeks    int
	universeSeed     int64
	universeSlot     string
	universeResume   bool
)

var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Generate a fighter population and advance it week by week",
	RunE:  runUniverse,
}

func init() {
	universeCmd.Flags().IntVar(&universeFighters, "fighters", 1500, "roster size when starting a new universe")
	universeCmd.Flags().IntVar(&universeWeeks, "weeks", 52, "weeks to advance")
	universeCmd.Flags().Int64Var(&universeSeed, "seed", 1, "universe seed")
	universeCmd.Flags().StringVar(&universeSlot, "slot", "autosave", "autosave slot name")
	universeCmd.Flags().BoolVar(&universeResume, "resume", false, "load the slot instead of generating a new universe")
}

func runUniverse(cmd *cobra.Command, args []string) error {
	proc := config.FromEnv()
	store, err := persistence.NewStore(proc.AutosaveDir)
	if err != nil {
		return err
	}

	var u *universe.Universe
	if universeResume {
		u, err = store.Load(universeSlot)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "resumed universe at year %d week %d (%d fighters)\n",
			u.Date.Year, u.Date.Week, len(u.Fighters))
	} else {
		u = universe.New(universe.Date{Year: 2026, Week: 1}, tunables.Default())
		u.AutosaveSlot = universeSlot
		rng := rand.New(rand.NewSource(universeSeed))
		fmt.Fprintf(os.Stdout, "generating %d fighters...\n", universeFighters)
		universe.GenerateRoster(u, rng, universeFighters, func(done, total int) {
			if done%500 == 0 || done == total {
				fmt.Fprintf(os.Stdout, "  %d/%d\n", done, total)
			}
		})
	}

	wp := universe.NewWeekProcessor(store, universeSeed)
	fmt.Fprintf(os.Stdout, "advancing %d weeks...\n", universeWeeks)
	wp.RunWeeks(u, universeWeeks, func(weekDone, totalWeeks, fightsRun int) {
		if weekDone%13 == 0 || weekDone == totalWeeks {
			fmt.Fprintf(os.Stdout, "  week %d/%d (%d fights so far)\n", weekDone, totalWeeks, fightsRun)
		}
	})

	printChampions(u)
	printHallOfFame(u)
	return nil
}

func printChampions(u *universe.Universe) {
	fmt.Fprintf(os.Stdout, "\nChampions at year %d week %d:\n\n", u.Date.Year, u.Date.Week)

	t := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	t.Header("DIVISION", "WBC", "WBA", "IBF", "WBO")
	for _, div := range universe.DivisionNames {
		row := []string{div}
		for _, body := range u.Bodies {
			dr := body.Rankings[div]
			name := "(vacant)"
			if dr.Champion != nil {
				if champ, ok := u.Fighters[*dr.Champion]; ok {
					name = champ.Name
				}
			}
			row = append(row, name)
		}
		t.Append(row[0], row[1], row[2], row[3], row[4])
	}
	t.Render()
}

func printHallOfFame(u *universe.Universe) {
	if len(u.HallOfFame.Inducted) == 0 {
		return
	}
	fmt.Fprintf(os.Stdout, "\nHall of Fame (%d inducted):\n", len(u.HallOfFame.Inducted))
	for id, ind := range u.HallOfFame.Inducted {
		name := id.String()
		if f, ok := u.Fighters[id]; ok {
			name = f.Name
		}
		fmt.Fprintf(os.Stdout, "  %-28s %-20s score %.1f (year %d)\n", name, ind.Category, ind.Score, ind.Date.Year)
	}
}
