package model

import "encoding/json"

// Outcome is the pipeline's final verdict for one event.
type Outcome string

const (
	OutcomeAllow Outcome = "allow"
	OutcomeAsk   Outcome = "ask"
	OutcomeDeny  Outcome = "deny"
	// OutcomeHalt reports a post-hoc tool failure. The action already ran, so
	// this is not a denial: it tells the host to stop, after the fact.
	OutcomeHalt Outcome = "halt"
)

// Decision is the pipeline output for one event.
// Invariant: deny, ask, and halt always carry a non-empty Reason; allow may
// carry Advisory text only.
type Decision struct {
	Outcome  Outcome `json:"outcome"`
	Reason   string  `json:"reason,omitempty"`
	Advisory string  `json:"advisory,omitempty"`
}

// hookSpecificOutput is the nested payload the host reads for permission
// decisions and advisory context.
type hookSpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision,omitempty"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
	AdditionalContext        string `json:"additionalContext,omitempty"`
}

// hookResponse is the standard wire envelope for allow/ask/deny outcomes.
type hookResponse struct {
	HookSpecificOutput *hookSpecificOutput `json:"hookSpecificOutput,omitempty"`
	Continue           bool                `json:"continue"`
}

// haltResponse is the wire shape for a post-hoc hard stop.
type haltResponse struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
	Continue bool   `json:"continue"`
}

// MarshalResponse encodes the decision in the host wire format for the
// given event kind. A bare allow with no advisory yields an envelope with
// continue:true and no hookSpecificOutput.
func (d *Decision) MarshalResponse(kind EventKind) ([]byte, error) {
	if d.Outcome == OutcomeHalt {
		return json.Marshal(haltResponse{
			Decision: "block",
			Reason:   d.Reason,
			Continue: false,
		})
	}

	resp := hookResponse{Continue: true}
	hso := &hookSpecificOutput{HookEventName: string(kind)}
	populated := false

	switch d.Outcome {
	case OutcomeDeny:
		hso.PermissionDecision = "deny"
		hso.PermissionDecisionReason = d.Reason
		populated = true
	case OutcomeAsk:
		hso.PermissionDecision = "ask"
		hso.PermissionDecisionReason = d.Reason
		hso.AdditionalContext = d.Advisory
		populated = true
	case OutcomeAllow:
		if d.Advisory != "" {
			hso.AdditionalContext = d.Advisory
			populated = true
		}
	}

	if populated {
		resp.HookSpecificOutput = hso
	}
	return json.Marshal(resp)
}
