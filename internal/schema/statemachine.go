package schema

import (
	"sort"

	"github.com/looplab/fsm"
)

// claimEvents derives the claim status transitions from the action catalog.
// Only actions that move the claim to a new status become FSM events; actions
// without a status postcondition (post_adjustment, transfer_to_patient) are
// purely financial and do not participate.
func claimEvents() fsm.Events {
	var events fsm.Events
	for _, name := range ActionNames() {
		def := ActionCatalog[name]
		if def.Post.ClaimStatus == "" {
			continue
		}
		src := def.Pre.ClaimStatusMustBeIn
		if len(src) == 0 {
			src = ClaimStatuses()
		}
		events = append(events, fsm.EventDesc{Name: name, Src: src, Dst: def.Post.ClaimStatus})
	}
	for _, name := range asyncEventNames() {
		def := AsyncEventCatalog[name]
		if def.ResultingStatus == "" {
			continue
		}
		src := def.StatusMustBeIn
		if len(src) == 0 {
			src = ClaimStatuses()
		}
		events = append(events, fsm.EventDesc{Name: name, Src: src, Dst: def.ResultingStatus})
	}
	return events
}

func asyncEventNames() []string {
	names := make([]string, 0, len(AsyncEventCatalog))
	for name := range AsyncEventCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewClaimMachine builds a claim status machine positioned at the given
// status. Each caller gets its own instance; the machine carries no shared
// state, so validation passes stay pure and parallel-safe.
func NewClaimMachine(status string) *fsm.FSM {
	return fsm.NewFSM(status, claimEvents(), fsm.Callbacks{})
}

// ResultingClaimStatus reports the claim status an action or async event is
// required to produce, if it has a status postcondition.
func ResultingClaimStatus(event string) (string, bool) {
	if def, ok := ActionCatalog[event]; ok && def.Post.ClaimStatus != "" {
		return def.Post.ClaimStatus, true
	}
	if def, ok := AsyncEventCatalog[event]; ok && def.ResultingStatus != "" {
		return def.ResultingStatus, true
	}
	return "", false
}
