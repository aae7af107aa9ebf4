package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boxingsim/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config.json>",
	Short: "Validate a fighter or fight configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	// A fighter document is the common case; fall back to the fight schema
	// whenever the file does not load as a valid fighter.
	f, fighterErr := config.LoadFighter(path)
	if fighterErr == nil {
		fmt.Fprintf(os.Stdout, "OK: fighter %q (%s, %dcm, %dkg)\n", f.Name, f.Style.Primary, f.HeightCM, f.WeightKG)
		return nil
	}

	if doc, fightErr := config.LoadFight(path); fightErr == nil {
		fmt.Fprintf(os.Stdout, "OK: fight config (%d rounds, %s)\n", doc.Rounds, doc.Type)
		return nil
	}

	return fighterErr
}
