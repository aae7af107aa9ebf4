// Command boxingsim is the CLI surface over the simulation core: single
// fights, batch runs, config validation, universe careers, and the HTTP
// observation server.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"boxingsim/internal/config"
)

// usageError marks failures that should exit 1 (invalid arguments or
// configuration); everything else from a RunE exits 2.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:           "boxingsim",
	Short:         "Boxing career and combat simulator",
	Long:          "Simulate single bouts tick by tick, batch-test matchups, and run multi-year universe careers with rankings, titles and a hall of fame.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err == nil {
			log.Println("loaded environment from .env")
		}
	},
}

func main() {
	rootCmd.AddCommand(fightCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(universeCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "boxingsim:", err)

		var ue *usageError
		var ce *config.Error
		if errors.As(err, &ue) || errors.As(err, &ce) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
