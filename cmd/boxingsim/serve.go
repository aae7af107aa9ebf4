package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"boxingsim/internal/api"
	"boxingsim/internal/config"
	"boxingsim/internal/persistence"
	"boxingsim/internal/tunables"
	"boxingsim/internal/universe"
)

var (
	serveAddr     string
	serveSlot     string
	serveFighters int
	serveSeed     int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the universe over HTTP/WebSocket for external observers",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveSlot, "slot", "autosave", "autosave slot to load (generated fresh if missing)")
	serveCmd.Flags().IntVar(&serveFighters, "fighters", 1500, "roster size when generating a fresh universe")
	serveCmd.Flags().Int64Var(&serveSeed, "seed", 1, "universe seed when generating a fresh universe")
}

func runServe(cmd *cobra.Command, args []string) error {
	proc := config.FromEnv()
	store, err := persistence.NewStore(proc.AutosaveDir)
	if err != nil {
		return err
	}

	u, err := store.Load(serveSlot)
	if err != nil {
		fmt.Fprintf(os.Stdout, "no saved universe in slot %q, generating %d fighters\n", serveSlot, serveFighters)
		u = universe.New(universe.Date{Year: 2026, Week: 1}, tunables.Default())
		u.AutosaveSlot = serveSlot
		universe.GenerateRoster(u, rand.New(rand.NewSource(serveSeed)), serveFighters, nil)
	}

	wp := universe.NewWeekProcessor(store, serveSeed)
	service := api.NewUniverseService(u, wp, store)
	sessions := api.NewSessionManager(os.Getenv("BOXINGSIM_ADMIN_TOKEN"))
	server := api.NewServer(service, sessions)

	if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(serveAddr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		fmt.Fprintln(os.Stdout, "shutting down")
		server.Stop()
		return nil
	}
}
