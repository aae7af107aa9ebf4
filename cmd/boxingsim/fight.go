package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boxingsim/internal/config"
	"boxingsim/internal/events"
	"boxingsim/internal/fight"
	"boxingsim/internal/fighter"
	"boxingsim/internal/tunables"
)

var (
	fightRounds  int
	fightSpeed   float64
	fightInstant bool
	fightSeed    int64
)

var fightCmd = &cobra.Command{
	Use:   "fight <fighterA.json> <fighterB.json>",
	Short: "Run a single bout between two configured fighters",
	Args:  cobra.ExactArgs(2),
	RunE:  runFight,
}

func init() {
	fightCmd.Flags().IntVar(&fightRounds, "rounds", 12, "scheduled rounds")
	fightCmd.Flags().Float64Var(&fightSpeed, "speed", 1.0, "display speed multiplier (real-time mode only)")
	fightCmd.Flags().BoolVar(&fightInstant, "instant", false, "resolve without wall-clock pacing or play-by-play")
	fightCmd.Flags().Int64Var(&fightSeed, "seed", 1, "simulation seed")
}

func runFight(cmd *cobra.Command, args []string) error {
	fA, err := config.LoadFighter(args[0])
	if err != nil {
		return err
	}
	fB, err := config.LoadFighter(args[1])
	if err != nil {
		return err
	}
	if fightRounds < 1 || fightRounds > 15 {
		return &usageError{err: fmt.Errorf("--rounds must be in [1,15], got %d", fightRounds)}
	}
	if fightSpeed <= 0 {
		return &usageError{err: fmt.Errorf("--speed must be positive, got %v", fightSpeed)}
	}

	cfg := fight.DefaultConfig(fightSeed)
	cfg.Rounds = fightRounds
	cfg.SpeedMultiplier = fightSpeed
	cfg.RealTime = !fightInstant

	bus := events.NewBus()
	done := make(chan struct{})
	if !fightInstant {
		feed := bus.Subscribe()
		go func() {
			defer close(done)
			narrate(os.Stdout, feed, fA, fB)
		}()
	} else {
		close(done)
	}

	bout := fight.New(cfg, fA, fB, fighter.NewInFightState(fA.ID), fighter.NewInFightState(fB.ID), bus, tunables.Default())
	result := bout.Run()
	<-done

	if result == nil {
		return fmt.Errorf("bout aborted before a result")
	}
	printResult(os.Stdout, result, fA, fB)
	return nil
}
