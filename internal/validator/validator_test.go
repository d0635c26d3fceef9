package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/validator"
	"github.com/latticehq/lattice/pkg/domain"
)

func flowPage(steps ...domain.FlowStep) *domain.Page {
	return &domain.Page{
		ID: "p",
		Steps: []domain.Step{
			{
				ID: "s1",
				Frames: []domain.Frame{
					{
						ID: "f1",
						Stacks: []domain.Stack{
							{
								ID: "k1",
								Blocks: []domain.Block{
									{
										ID:   "b1",
										Type: domain.BlockApplicationFlow,
										Flow: &domain.Flow{Steps: steps},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestValidate_CollectsAllFindings(t *testing.T) {
	// Two independent problems in one flow: a dangling reference and an
	// empty redirect URL. Both must come back in a single batch.
	page := flowPage(
		domain.FlowStep{ID: "fs-1", Navigation: &domain.StepNavigation{
			Action:       domain.ActionGoToStep,
			TargetStepID: "gone",
		}},
		domain.FlowStep{ID: "fs-2", Navigation: &domain.StepNavigation{
			Action: domain.ActionRedirect,
		}},
	)

	violations := validator.Validate(page)
	require.Len(t, violations, 2)

	codes := []domain.ViolationCode{violations[0].Code, violations[1].Code}
	assert.Contains(t, codes, domain.ViolationDanglingReference)
	assert.Contains(t, codes, domain.ViolationEmptyRedirectURL)
}

func TestValidate_SelfReference(t *testing.T) {
	page := flowPage(
		domain.FlowStep{ID: "fs-1", Navigation: &domain.StepNavigation{
			Action:       domain.ActionGoToStep,
			TargetStepID: "fs-1",
		}},
		domain.FlowStep{ID: "fs-2"},
	)

	violations := validator.Validate(page)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationSelfReference, violations[0].Code)
	assert.Equal(t, "fs-1", violations[0].NodeID)
}

func TestValidate_UnifiedShapeChecked(t *testing.T) {
	page := flowPage(
		domain.FlowStep{ID: "fs-1", Action: &domain.ButtonAction{
			Action:       domain.ActionGoToStep,
			TargetStepID: "gone",
		}},
		domain.FlowStep{ID: "fs-2"},
	)

	violations := validator.Validate(page)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationDanglingReference, violations[0].Code)
}

func TestValidate_ValidFlowIsClean(t *testing.T) {
	page := flowPage(
		domain.FlowStep{ID: "fs-1"},
		domain.FlowStep{ID: "fs-2", Navigation: &domain.StepNavigation{
			Action:       domain.ActionGoToStep,
			TargetStepID: "fs-1",
		}},
		domain.FlowStep{ID: "fs-3", Navigation: &domain.StepNavigation{
			Action: domain.ActionSubmit,
		}},
	)
	assert.Empty(t, validator.Validate(page))
}

func TestValidate_EmptyStructures(t *testing.T) {
	t.Run("page without steps", func(t *testing.T) {
		violations := validator.Validate(&domain.Page{ID: "p"})
		require.Len(t, violations, 1)
		assert.Equal(t, domain.ViolationNoSteps, violations[0].Code)
	})

	t.Run("flow block without steps", func(t *testing.T) {
		violations := validator.Validate(flowPage())
		require.Len(t, violations, 1)
		assert.Equal(t, domain.ViolationNoSteps, violations[0].Code)
		assert.Equal(t, "b1", violations[0].NodeID)
	})

	t.Run("nil page", func(t *testing.T) {
		assert.Empty(t, validator.Validate(nil))
	})
}

func TestValidate_DuplicateFlowStepElementIDs(t *testing.T) {
	page := flowPage(
		domain.FlowStep{ID: "fs-1", Elements: []domain.Element{
			{ID: "dup", Type: domain.ElementButton},
			{ID: "dup", Type: domain.ElementText},
		}},
		domain.FlowStep{ID: "fs-2"},
	)

	violations := validator.Validate(page)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationDuplicateID, violations[0].Code)
	assert.Equal(t, "dup", violations[0].NodeID)
	assert.Contains(t, violations[0].Path, "flow.steps[0].elements")
}

func TestValidate_ElementPropSchemas(t *testing.T) {
	t.Run("flow step element with bad prop", func(t *testing.T) {
		page := flowPage(
			domain.FlowStep{ID: "fs-1", Elements: []domain.Element{
				{ID: "e1", Type: domain.ElementButton, Props: map[string]any{
					"variant": "sparkly",
				}},
			}},
			domain.FlowStep{ID: "fs-2"},
		)

		violations := validator.Validate(page)
		require.Len(t, violations, 1)
		assert.Equal(t, domain.ViolationInvalidProp, violations[0].Code)
		assert.Equal(t, "e1", violations[0].NodeID)
		assert.Contains(t, violations[0].Message, "variant")
	})

	t.Run("block element with bad prop", func(t *testing.T) {
		page := flowPage(domain.FlowStep{ID: "fs-1"})
		page.Steps[0].Frames[0].Stacks[0].Blocks = append(
			page.Steps[0].Frames[0].Stacks[0].Blocks,
			domain.Block{ID: "b2", Type: domain.BlockHero, Elements: []domain.Element{
				{ID: "e2", Type: domain.ElementImage, Props: map[string]any{
					"opacity": 3.5,
				}},
			}},
		)

		violations := validator.Validate(page)
		require.Len(t, violations, 1)
		assert.Equal(t, domain.ViolationInvalidProp, violations[0].Code)
		assert.Equal(t, "e2", violations[0].NodeID)
	})

	t.Run("valid and unknown props pass", func(t *testing.T) {
		page := flowPage(
			domain.FlowStep{ID: "fs-1", Elements: []domain.Element{
				{ID: "e1", Type: domain.ElementButton, Props: map[string]any{
					"variant": "outline",
					"dataRef": "vendor-extra",
				}},
			}},
			domain.FlowStep{ID: "fs-2"},
		)
		assert.Empty(t, validator.Validate(page))
	})
}

func TestValidate_DuplicateSiblingIDs(t *testing.T) {
	page := &domain.Page{
		ID: "p",
		Steps: []domain.Step{
			{ID: "dup", Frames: []domain.Frame{}},
			{ID: "dup", Frames: []domain.Frame{}},
		},
	}

	violations := validator.Validate(page)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationDuplicateID, violations[0].Code)
	assert.Equal(t, "dup", violations[0].NodeID)
}
