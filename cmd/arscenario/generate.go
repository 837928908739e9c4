package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arscenario/internal/llm"
	"arscenario/internal/orchestrator"
)

var (
	genDenialCode   string
	genComplexity   string
	genServiceType  string
	genPayer        string
	genInstructions string
	genOutput       string
	genStrict       bool
	genRepairBudget int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a scenario from a denial-code seed",
	Example: `  arscenario generate --denial-code CO-16
  arscenario generate --denial-code PR-1 --complexity simple -o scenario.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := llm.New(cmd.Context(), cfg.LLM)
		if err != nil {
			return err
		}

		gen := cfg.Generation
		if cmd.Flags().Changed("strict") {
			gen.StrictValidation = genStrict
		}
		if cmd.Flags().Changed("repair-attempts") {
			gen.MaxRepairAttempts = genRepairBudget
		}

		o := orchestrator.New(client, gen, logger)
		result := o.Generate(cmd.Context(), orchestrator.Seed{
			DenialCode:             genDenialCode,
			Complexity:             genComplexity,
			ServiceType:            genServiceType,
			Payer:                  genPayer,
			AdditionalInstructions: genInstructions,
		})

		logger.Info("generation finished",
			zap.String("status", string(result.Status)),
			zap.Int("repair_attempts", result.RepairAttempts),
			zap.Duration("elapsed", result.Elapsed))

		if result.Validation != nil {
			fmt.Fprintln(os.Stderr, result.Validation.Render())
		}
		if !result.Success() {
			return fmt.Errorf("generation failed: %s (%s)", result.Status, result.ErrMessage)
		}

		data, err := json.MarshalIndent(result.Scenario, "", "  ")
		if err != nil {
			return err
		}
		if genOutput != "" {
			return os.WriteFile(genOutput, append(data, '\n'), 0o644)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&genDenialCode, "denial-code", "CO-16", "denial code to seed the scenario")
	generateCmd.Flags().StringVar(&genComplexity, "complexity", "", "simple, moderate, or complex (random if unset)")
	generateCmd.Flags().StringVar(&genServiceType, "service-type", "outpatient", "outpatient or inpatient")
	generateCmd.Flags().StringVar(&genPayer, "payer", "", "payer name (random from the catalog if randomize_payer is set)")
	generateCmd.Flags().StringVar(&genInstructions, "instructions", "", "additional generation instructions")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "write the scenario to a file instead of stdout")
	generateCmd.Flags().BoolVar(&genStrict, "strict", false, "treat validation warnings as errors")
	generateCmd.Flags().IntVar(&genRepairBudget, "repair-attempts", 0, "override the repair attempt budget")
}
