package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"arscenario/internal/orchestrator"
	"arscenario/internal/prompt"
)

var rulesPromptContext bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Export the validation rule catalogs",
	Long: `Prints the logical constraints, action definitions, and async event
definitions the validator enforces, as JSON. With --prompt-context, prints
the full LLM prompting context (system prompt plus few-shot examples)
instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rulesPromptContext {
			fmt.Println(prompt.ExportPromptContext())
			return nil
		}
		data, err := json.MarshalIndent(orchestrator.ExportValidationRules(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesPromptContext, "prompt-context", false, "print the full LLM prompting context")
}
