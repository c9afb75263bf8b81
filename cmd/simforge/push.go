package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simforge/simforge/internal/engine"
	"github.com/simforge/simforge/sim"
)

var pushCmd = &cobra.Command{
	Use:   "push <simulation-file>",
	Short: "Upload a simulation to the engine's admin API",
	Args:  cobra.ExactArgs(1),
	RunE:  runPush,
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the simulation the engine currently holds",
	RunE:  runPull,
}

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete the engine's current simulation",
	RunE:  runWipe,
}

var (
	pushSkipValidate bool
	pullOutput       string
)

func init() {
	for _, cmd := range []*cobra.Command{pushCmd, pullCmd, wipeCmd} {
		cmd.Flags().String("engine", "", "Engine admin API URL (overrides config)")
	}
	pushCmd.Flags().BoolVar(&pushSkipValidate, "skip-validate", false, "Push without validating first")
	pullCmd.Flags().StringVarP(&pullOutput, "output", "o", "", "Write to file instead of stdout")
}

func newEngineClient(cmd *cobra.Command) *engine.Client {
	adminURL := viper.GetString("engine.adminUrl")
	if v, _ := cmd.Flags().GetString("engine"); v != "" {
		adminURL = v
	}
	return engine.New(adminURL, viper.GetDuration("engine.timeout"), logger)
}

func runPush(cmd *cobra.Command, args []string) error {
	s, err := sim.Load(args[0])
	if err != nil {
		return err
	}

	if !pushSkipValidate {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%s is invalid (use --skip-validate to force): %w", args[0], err)
		}
	}

	// Probe the admin API first so a dead engine fails with a clear
	// error instead of a rejected upload.
	client := newEngineClient(cmd)
	ctx := context.Background()
	if err := client.Healthy(ctx); err != nil {
		return err
	}
	return client.Push(ctx, s)
}

func runPull(cmd *cobra.Command, args []string) error {
	s, err := newEngineClient(cmd).Pull(context.Background())
	if err != nil {
		return err
	}

	if pullOutput != "" {
		if err := s.Save(pullOutput); err != nil {
			return err
		}
		fmt.Printf("Wrote %d pairs to %s\n", len(s.Data.Pairs), pullOutput)
		return nil
	}

	data, err := s.EncodeJSON()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runWipe(cmd *cobra.Command, args []string) error {
	return newEngineClient(cmd).Wipe(context.Background())
}
