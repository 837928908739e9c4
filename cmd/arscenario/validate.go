package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arscenario/internal/validation"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a scenario document",
	Long: `Runs all check passes over a scenario JSON file and prints the findings.
Exits non-zero when the scenario has error-severity issues.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		v := &validation.Validator{Strict: validateStrict}
		result := v.ValidateJSON(string(data))

		fmt.Print(result.Render())
		if !result.Valid {
			return fmt.Errorf("scenario is invalid: %d errors", result.ErrorCount())
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as errors")
}
