package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simforge/simforge/internal/api"
	"github.com/simforge/simforge/internal/live"
	"github.com/simforge/simforge/sim"
)

var serveCmd = &cobra.Command{
	Use:   "serve <simulation-file>",
	Short: "Serve a read-only viewer for a simulation file",
	Long: `Serve starts an HTTP viewer for a simulation file.

The viewer exposes:
  - The whole document and its pairs and delays at /_api/
  - Request statistics at /_api/stats
  - A websocket feed of reload events at /_ws

With watching enabled (the default) the file is reloaded on every
change and subscribers are notified over the websocket.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

var (
	servePort  int
	serveWatch bool
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Override viewer port")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "Reload the file when it changes")
}

// simulationStore holds the currently loaded simulation. Reload swaps
// the document while viewer handlers keep reading concurrently.
type simulationStore struct {
	mu      sync.RWMutex
	path    string
	current *sim.Simulation
}

func newSimulationStore(path string) (*simulationStore, error) {
	s := &simulationStore{path: path}
	if err := s.Reload(path); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *simulationStore) Current() *sim.Simulation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *simulationStore) Path() string {
	return s.path
}

func (s *simulationStore) Reload(path string) error {
	loaded, err := sim.Load(path)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	host := viper.GetString("serve.host")
	port := viper.GetInt("serve.port")
	watch := viper.GetBool("serve.watch")

	if servePort > 0 {
		port = servePort
	}
	if cmd.Flags().Changed("watch") {
		watch = serveWatch
	}

	store, err := newSimulationStore(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	logger.Info().
		Str("path", args[0]).
		Int("pairs", len(store.Current().Data.Pairs)).
		Msg("Loaded simulation")

	var broadcaster *live.Broadcaster
	if watch {
		broadcaster = live.NewBroadcaster(logger)
		watcher, err := live.NewWatcher(args[0], store.Reload, broadcaster, logger)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	router := api.NewRouter(store, broadcaster, logger)

	addr := fmt.Sprintf("%s:%d", host, port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("Viewer listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case <-quit:
	}

	logger.Info().Msg("Shutting down viewer")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
