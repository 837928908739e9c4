// Package orchestrator drives LLM-guided scenario generation: prompt the
// generator, validate the response, and loop through repair attempts until
// the scenario is valid or the budget runs out.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"arscenario/internal/config"
	"arscenario/internal/llm"
	"arscenario/internal/prompt"
	"arscenario/internal/schema"
	"arscenario/internal/validation"
)

var complexities = []string{"simple", "moderate", "complex"}

// Orchestrator mediates between the validator and the generator collaborator.
// It never fabricates a valid document itself; every candidate comes from the
// LLM and every verdict from the validator. Safe for concurrent use: each run
// keeps its own state.
type Orchestrator struct {
	client    llm.Client
	validator *validation.Validator
	cfg       config.GenerationConfig
	logger    *zap.Logger
}

// New creates an orchestrator.
func New(client llm.Client, cfg config.GenerationConfig, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		client:    client,
		validator: &validation.Validator{Strict: cfg.StrictValidation},
		cfg:       cfg,
		logger:    logger,
	}
}

// Generate produces a scenario from a seed, validating and repairing until
// valid or the repair budget is exhausted.
func (o *Orchestrator) Generate(ctx context.Context, seed Seed) *GenerationResult {
	start := time.Now()
	runID := uuid.NewString()
	log := o.logger.With(zap.String("run_id", runID), zap.String("denial_code", seed.DenialCode))

	if seed.Complexity == "" {
		if o.cfg.RandomizeComplexity {
			seed.Complexity = complexities[rand.Intn(len(complexities))]
		} else {
			seed.Complexity = "moderate"
		}
	}
	if seed.ServiceType == "" {
		seed.ServiceType = "outpatient"
	}
	if seed.Payer == "" && o.cfg.RandomizePayer {
		seed.Payer = schema.PayerCatalog[rand.Intn(len(schema.PayerCatalog))].Name
	}

	systemPrompt := o.buildSystemPrompt(seed)
	userPrompt := prompt.GenerationPrompt(seed.DenialCode, seed.Complexity, seed.ServiceType, seed.Payer, seed.AdditionalInstructions)

	log.Info("generating scenario", zap.String("complexity", seed.Complexity), zap.String("service_type", seed.ServiceType))

	response, err := o.client.CompleteWithSystem(ctx, systemPrompt, userPrompt)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &GenerationResult{Status: StatusCancelled, Attempts: 1, ErrMessage: err.Error(), Elapsed: time.Since(start)}
		}
		log.Warn("generation call failed", zap.Error(err))
		return &GenerationResult{Status: StatusLLMError, Attempts: 1, ErrMessage: err.Error(), Elapsed: time.Since(start)}
	}

	doc, err := parseResponse(response)
	if err != nil {
		log.Warn("generation response unparsable", zap.Error(err))
		return &GenerationResult{Status: StatusParseError, Attempts: 1, ErrMessage: err.Error(), Elapsed: time.Since(start)}
	}

	result := o.validator.Validate(doc)
	log.Info("initial validation", zap.String("summary", result.Summary()))

	if result.Valid {
		return &GenerationResult{
			Status:     StatusSuccess,
			Scenario:   doc,
			Validation: result,
			Attempts:   1,
			Elapsed:    time.Since(start),
		}
	}

	if o.cfg.MaxRepairAttempts > 0 {
		out := o.attemptRepair(ctx, log, doc, result)
		out.Attempts = 1
		out.Elapsed = time.Since(start)
		return out
	}

	return &GenerationResult{
		Status:     StatusValidationFailed,
		Scenario:   doc,
		Validation: result,
		Attempts:   1,
		Elapsed:    time.Since(start),
	}
}

// Validate checks an externally produced scenario.
func (o *Orchestrator) Validate(doc schema.Document) *validation.Result {
	return o.validator.Validate(doc)
}

// Repair attempts to fix a scenario with validation errors. A nil result is
// computed first; an already-valid scenario returns Success without any LLM
// calls.
func (o *Orchestrator) Repair(ctx context.Context, doc schema.Document, result *validation.Result) *GenerationResult {
	start := time.Now()
	if result == nil {
		result = o.validator.Validate(doc)
	}
	if result.Valid {
		return &GenerationResult{Status: StatusSuccess, Scenario: doc, Validation: result, Elapsed: time.Since(start)}
	}

	log := o.logger.With(zap.String("run_id", uuid.NewString()))
	out := o.attemptRepair(ctx, log, doc, result)
	out.Elapsed = time.Since(start)
	return out
}

// attemptRepair runs the sequential repair loop. A transient LLM failure or
// an unparsable response consumes one attempt and continues; cancellation
// ends the run with a cancelled outcome carrying the last known candidate.
func (o *Orchestrator) attemptRepair(ctx context.Context, log *zap.Logger, doc schema.Document, result *validation.Result) *GenerationResult {
	systemPrompt := prompt.SystemPrompt(true)

	pacing := backoff.NewExponentialBackOff()
	pacing.InitialInterval = 500 * time.Millisecond
	pacing.MaxInterval = 30 * time.Second

	for attempt := 1; attempt <= o.cfg.MaxRepairAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(pacing.NextBackOff()):
			case <-ctx.Done():
				return o.cancelled(ctx, doc, result, attempt-1)
			}
		}

		log.Info("repair attempt", zap.Int("attempt", attempt), zap.Int("errors", result.ErrorCount()))

		userPrompt := prompt.RepairPrompt(doc, result.Errors)
		response, err := o.client.CompleteWithSystem(ctx, systemPrompt, userPrompt)
		if err != nil {
			if ctx.Err() != nil {
				return o.cancelled(ctx, doc, result, attempt)
			}
			if llm.IsTransient(err) {
				log.Warn("repair call failed, retrying", zap.Error(err))
				continue
			}
			return &GenerationResult{
				Status:         StatusLLMError,
				Scenario:       doc,
				Validation:     result,
				RepairAttempts: attempt,
				ErrMessage:     err.Error(),
			}
		}

		repaired, err := parseResponse(response)
		if err != nil {
			log.Warn("repair response unparsable", zap.Error(err))
			continue
		}

		newResult := o.validator.Validate(repaired)
		log.Info("repair validation", zap.Int("attempt", attempt), zap.String("summary", newResult.Summary()))

		if newResult.Valid {
			return &GenerationResult{
				Status:         StatusSuccess,
				Scenario:       repaired,
				Validation:     newResult,
				RepairAttempts: attempt,
			}
		}

		doc, result = repaired, newResult
	}

	return &GenerationResult{
		Status:         StatusRepairFailed,
		Scenario:       doc,
		Validation:     result,
		RepairAttempts: o.cfg.MaxRepairAttempts,
		ErrMessage:     fmt.Sprintf("Repair failed after %d attempts", o.cfg.MaxRepairAttempts),
	}
}

func (o *Orchestrator) cancelled(ctx context.Context, doc schema.Document, result *validation.Result, attempts int) *GenerationResult {
	return &GenerationResult{
		Status:         StatusCancelled,
		Scenario:       doc,
		Validation:     result,
		RepairAttempts: attempts,
		ErrMessage:     ctx.Err().Error(),
	}
}

func (o *Orchestrator) buildSystemPrompt(seed Seed) string {
	parts := []string{prompt.SystemPrompt(o.cfg.IncludeFullSchemas)}
	if o.cfg.IncludeFewShot {
		examples := prompt.FewShotExamples(o.cfg.FewShotCount, nil)
		if len(examples) > 0 {
			parts = append(parts, "\n\n## EXAMPLES\nHere are examples of correctly formatted scenarios:\n")
			for i, example := range examples {
				parts = append(parts, fmt.Sprintf("\n### Example %d\n```json\n%s\n```\n", i+1, strings.TrimRight(example, "\n")))
			}
		}
	}
	return strings.Join(parts, "")
}

// parseResponse extracts the scenario JSON from an LLM response, tolerating
// markdown fences and surrounding prose.
func parseResponse(response string) (schema.Document, error) {
	jsonStr := extractJSON(response)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}
	var doc schema.Document
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}
	return doc, nil
}

// extractJSON finds the first balanced JSON object in a response.
func extractJSON(response string) string {
	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		c := response[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1]
			}
		}
	}
	return ""
}
