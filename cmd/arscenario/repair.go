package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arscenario/internal/llm"
	"arscenario/internal/orchestrator"
	"arscenario/internal/schema"
)

var repairOutput string

var repairCmd = &cobra.Command{
	Use:   "repair [file]",
	Short: "Repair a scenario with validation errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var doc schema.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing scenario: %w", err)
		}

		client, err := llm.New(cmd.Context(), cfg.LLM)
		if err != nil {
			return err
		}

		o := orchestrator.New(client, cfg.Generation, logger)
		result := o.Repair(cmd.Context(), doc, nil)

		logger.Info("repair finished",
			zap.String("status", string(result.Status)),
			zap.Int("repair_attempts", result.RepairAttempts))

		if result.Validation != nil {
			fmt.Fprintln(os.Stderr, result.Validation.Render())
		}
		if !result.Success() {
			return fmt.Errorf("repair failed: %s (%s)", result.Status, result.ErrMessage)
		}

		out, err := json.MarshalIndent(result.Scenario, "", "  ")
		if err != nil {
			return err
		}
		if repairOutput != "" {
			return os.WriteFile(repairOutput, append(out, '\n'), 0o644)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	repairCmd.Flags().StringVarP(&repairOutput, "output", "o", "", "write the repaired scenario to a file")
}
