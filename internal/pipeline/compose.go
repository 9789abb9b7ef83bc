package pipeline

import (
	"strings"

	"github.com/ppiankov/hookgate/internal/model"
)

// Compose combines all findings for one event into a single decision.
//
// Precedence (must not be changed, first match wins):
//  1. Any block finding on a pre-invocation event — deny
//  2. Any warn finding — ask
//  3. Any fatal finding on a post-invocation event — halt (report-only;
//     the action already ran, so deny vocabulary does not apply)
//  4. Otherwise allow, with info findings concatenated into advisory text
//
// No finding is silently dropped: every non-empty message lands in either
// the reason or the advisory.
func Compose(kind model.EventKind, findings []model.Finding) *model.Decision {
	var blocks, warns, fatals, infos []string

	for _, f := range findings {
		if f.Message == "" {
			continue
		}
		switch f.Severity {
		case model.SeverityBlock:
			blocks = append(blocks, f.Message)
		case model.SeverityWarn:
			warns = append(warns, f.Message)
		case model.SeverityFatal:
			fatals = append(fatals, f.Message)
		default:
			infos = append(infos, f.Message)
		}
	}

	if kind == model.PreToolUse && len(blocks) > 0 {
		return &model.Decision{
			Outcome: model.OutcomeDeny,
			Reason:  strings.Join(blocks, "; "),
		}
	}

	if len(warns) > 0 {
		reason := strings.Join(warns, "; ")
		return &model.Decision{
			Outcome:  model.OutcomeAsk,
			Reason:   reason,
			Advisory: strings.Join(infos, " "),
		}
	}

	if kind == model.PostToolUse && len(fatals) > 0 {
		return &model.Decision{
			Outcome: model.OutcomeHalt,
			Reason:  strings.Join(fatals, "; "),
		}
	}

	return &model.Decision{
		Outcome:  model.OutcomeAllow,
		Advisory: strings.Join(infos, " "),
	}
}
