package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latticehq/lattice/internal/presentation/graph"
	"github.com/latticehq/lattice/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	flow := &domain.Flow{Steps: []domain.FlowStep{
		{ID: "intro", Name: "Intro", Type: domain.FlowStepWelcome},
		{ID: "q-1", Name: "Budget?", Type: domain.FlowStepQuestion, Navigation: &domain.StepNavigation{
			Action:       domain.ActionGoToStep,
			TargetStepID: "finish",
		}},
		{ID: "finish", Name: "Finish", Type: domain.FlowStepEnding, Navigation: &domain.StepNavigation{
			Action: domain.ActionSubmit,
		}},
	}}

	out := graph.GenerateMermaid(flow)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))

	// Node shapes by step type.
	assert.Contains(t, out, `intro(("Intro"))`)
	assert.Contains(t, out, `q_1[/"Budget?"/]`)
	assert.Contains(t, out, `finish["Finish"]`)

	// Edges: implicit next solid, go-to-step dashed, submit terminal.
	assert.Contains(t, out, "intro --> q_1")
	assert.Contains(t, out, "q_1 -.-> finish")
	assert.Contains(t, out, "finish --> flow_submit")
	assert.Contains(t, out, `flow_submit(("Submitted"))`)
}

func TestGenerateMermaid_DanglingTarget(t *testing.T) {
	flow := &domain.Flow{Steps: []domain.FlowStep{
		{ID: "a", Navigation: &domain.StepNavigation{
			Action:       domain.ActionGoToStep,
			TargetStepID: "deleted",
		}},
		{ID: "b"},
	}}

	out := graph.GenerateMermaid(flow)
	assert.Contains(t, out, "deleted_missing", "dangling target rendered as a flagged node")
	assert.Contains(t, out, "⚠ deleted")
}

func TestGenerateMermaid_Redirect(t *testing.T) {
	flow := &domain.Flow{Steps: []domain.FlowStep{
		{ID: "a", Navigation: &domain.StepNavigation{
			Action:      domain.ActionRedirect,
			RedirectURL: "https://example.com",
		}},
	}}

	out := graph.GenerateMermaid(flow)
	assert.Contains(t, out, "↗ https://example.com")
}

func TestGenerateMermaid_LastStepNext(t *testing.T) {
	flow := &domain.Flow{Steps: []domain.FlowStep{
		{ID: "only"},
	}}

	out := graph.GenerateMermaid(flow)
	assert.Contains(t, out, "only --> flow_end")
	assert.Contains(t, out, `flow_end(("End"))`)
}

func TestGenerateMermaid_Empty(t *testing.T) {
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(nil))
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(&domain.Flow{}))
}
