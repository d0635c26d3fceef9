package graph

import (
	"fmt"
	"strings"

	"github.com/latticehq/lattice/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of a flow's navigation
// graph. It applies semantic styling:
// - Welcome: ((Circle))
// - Question: [/Parallelogram/]
// - Booking: [[Subroutine]]
// - Default: [Rectangle]
// Navigation edges: next solid, go-to-step dashed, submit/redirect to
// terminal pseudo-nodes. Dangling targets render as a flagged node so
// the editor can spot them.
func GenerateMermaid(flow *domain.Flow) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if flow == nil || len(flow.Steps) == 0 {
		return sb.String()
	}

	needSubmit := false
	needEnd := false

	for _, step := range flow.Steps {
		safeID := sanitizeMermaidID(step.ID)

		opener, closer := "[", "]"
		switch step.Type {
		case domain.FlowStepWelcome:
			opener, closer = "((", "))"
		case domain.FlowStepQuestion:
			opener, closer = "[/", "/]"
		case domain.FlowStepBooking:
			opener, closer = "[[", "]]"
		}

		label := step.Name
		if label == "" {
			label = step.ID
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(label), closer))
	}

	for i, step := range flow.Steps {
		safeID := sanitizeMermaidID(step.ID)
		nav := step.EffectiveNavigation()

		switch nav.Action {
		case domain.ActionNext, "":
			if i < len(flow.Steps)-1 {
				sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeMermaidID(flow.Steps[i+1].ID)))
			} else {
				needEnd = true
				sb.WriteString(fmt.Sprintf("    %s --> flow_end\n", safeID))
			}
		case domain.ActionGoToStep:
			target := sanitizeMermaidID(nav.TargetStepID)
			if _, ok := flow.StepByID(nav.TargetStepID); !ok {
				sb.WriteString(fmt.Sprintf("    %s -. \"missing\" .-> %s_missing[\"⚠ %s\"]\n",
					safeID, target, escapeLabel(nav.TargetStepID)))
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", safeID, target))
		case domain.ActionSubmit:
			needSubmit = true
			sb.WriteString(fmt.Sprintf("    %s --> flow_submit\n", safeID))
		case domain.ActionRedirect:
			if nav.RedirectURL == "" {
				needEnd = true
				sb.WriteString(fmt.Sprintf("    %s --> flow_end\n", safeID))
				continue
			}
			urlID := sanitizeMermaidID("url_" + nav.RedirectURL)
			sb.WriteString(fmt.Sprintf("    %s --> %s[\"↗ %s\"]\n", safeID, urlID, escapeLabel(nav.RedirectURL)))
		}
	}

	if needSubmit {
		sb.WriteString("    flow_submit((\"Submitted\"))\n")
	}
	if needEnd {
		sb.WriteString("    flow_end((\"End\"))\n")
	}

	return sb.String()
}

// sanitizeMermaidID strips characters Mermaid treats as syntax.
func sanitizeMermaidID(id string) string {
	replacer := strings.NewReplacer(
		"/", "_", ".", "_", " ", "_", "-", "_",
		":", "_", "(", "_", ")", "_", "\"", "_",
	)
	return replacer.Replace(id)
}

func escapeLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
