package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simforge/simforge/sim"
)

var validateCmd = &cobra.Command{
	Use:   "validate <simulation-file>",
	Short: "Check a simulation file against the document invariants",
	Long: `Loads a simulation file and verifies its schema version, that every
pair carries an exact destination matcher, that all matcher kinds are
known, and that no two pairs are structural duplicates.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := sim.Load(args[0])
	if err != nil {
		return err
	}

	if err := s.Validate(); err != nil {
		return fmt.Errorf("%s is invalid: %w", args[0], err)
	}

	fmt.Printf("%s is valid: %d pairs, %d delay settings\n",
		args[0], len(s.Data.Pairs), len(s.Data.GlobalActions.Delays))
	return nil
}
