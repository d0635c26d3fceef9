package tui

import (
	"fmt"
	"strings"

	"github.com/latticehq/lattice/pkg/domain"
)

// DocumentReport builds a markdown outline of a document plus its
// validation findings, ready for the glamour renderer.
func DocumentReport(page *domain.Page, violations []domain.Violation) string {
	var sb strings.Builder

	title := page.Slug
	if title == "" {
		title = page.ID
	}
	fmt.Fprintf(&sb, "# Funnel %s\n\n", title)
	fmt.Fprintf(&sb, "%d step(s)\n\n", len(page.Steps))

	for si, step := range page.Steps {
		name := step.Name
		if name == "" {
			name = step.ID
		}
		fmt.Fprintf(&sb, "## %d. %s", si+1, name)
		if step.Intent != "" {
			fmt.Fprintf(&sb, " _(%s)_", step.Intent)
		}
		sb.WriteString("\n\n")

		for _, frame := range step.Frames {
			label := frame.Label
			if label == "" {
				label = frame.ID
			}
			fmt.Fprintf(&sb, "- Frame **%s** (%s)\n", label, layoutName(frame.Layout))
			for _, stack := range frame.Stacks {
				for _, block := range stack.Blocks {
					fmt.Fprintf(&sb, "  - Block `%s`", block.Type)
					if block.Flow != nil {
						fmt.Fprintf(&sb, " - embedded flow, %d step(s)", len(block.Flow.Steps))
					} else if len(block.Elements) > 0 {
						fmt.Fprintf(&sb, " - %d element(s)", len(block.Elements))
					}
					sb.WriteString("\n")
				}
			}
		}
		sb.WriteString("\n")
	}

	if len(violations) == 0 {
		sb.WriteString("## Validation\n\nNo issues found. ✅\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "## Validation - %d issue(s)\n\n", len(violations))
	for _, v := range violations {
		fmt.Fprintf(&sb, "- **%s** `%s`: %s\n", v.Code, v.Path, v.Message)
	}
	return sb.String()
}

func layoutName(l domain.FrameLayout) string {
	if l == "" {
		return string(domain.LayoutContained)
	}
	return string(l)
}
