package orchestrator

import (
	"arscenario/internal/schema"
)

// ExportValidationRules returns the rule catalogs the validator enforces, in
// a structured form suitable for JSON export or documentation.
func ExportValidationRules() map[string]any {
	constraints := make(map[string][]string, len(schema.LogicalConstraints))
	for _, group := range schema.LogicalConstraints {
		constraints[group.Category] = group.Rules
	}

	actions := make(map[string]any, len(schema.ActionCatalog))
	for name, def := range schema.ActionCatalog {
		actions[name] = map[string]any{
			"description":    def.Description,
			"actor":          def.Actor,
			"preconditions":  def.Pre,
			"postconditions": def.Post,
		}
	}

	events := make(map[string]any, len(schema.AsyncEventCatalog))
	for name, def := range schema.AsyncEventCatalog {
		events[name] = def
	}

	return map[string]any{
		"logical_constraints":     constraints,
		"action_definitions":      actions,
		"async_event_definitions": events,
	}
}
