package orchestrator

import (
	"time"

	"arscenario/internal/schema"
	"arscenario/internal/validation"
)

// Status is the terminal outcome of a generation or repair run.
type Status string

const (
	StatusSuccess          Status = "success"
	StatusValidationFailed Status = "validation_failed"
	StatusRepairFailed     Status = "repair_failed"
	StatusLLMError         Status = "llm_error"
	StatusParseError       Status = "parse_error"
	StatusCancelled        Status = "cancelled"
)

// GenerationResult is the outcome of one scenario generation or repair run.
type GenerationResult struct {
	Status         Status             `json:"status"`
	Scenario       schema.Document    `json:"scenario,omitempty"`
	Validation     *validation.Result `json:"validation,omitempty"`
	Attempts       int                `json:"attempts"`
	RepairAttempts int                `json:"repair_attempts"`
	Elapsed        time.Duration      `json:"-"`
	ErrMessage     string             `json:"error_message,omitempty"`
}

// Success reports whether the run produced a valid scenario.
func (r *GenerationResult) Success() bool { return r.Status == StatusSuccess }

// Summary returns a compact description of the run for reporting.
func (r *GenerationResult) Summary() map[string]any {
	out := map[string]any{
		"status":             string(r.Status),
		"is_success":         r.Success(),
		"attempts":           r.Attempts,
		"repair_attempts":    r.RepairAttempts,
		"generation_time_ms": r.Elapsed.Milliseconds(),
	}
	if r.ErrMessage != "" {
		out["error_message"] = r.ErrMessage
	}
	if r.Validation != nil {
		out["validation_summary"] = r.Validation.Summary()
	}
	return out
}

// Seed carries the parameters a scenario is generated from.
type Seed struct {
	DenialCode             string
	Complexity             string
	ServiceType            string
	Payer                  string
	AdditionalInstructions string
}
