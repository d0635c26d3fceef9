package lattice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice"
	"github.com/latticehq/lattice/pkg/domain"
)

func seedEditor(t *testing.T) (*lattice.Editor, string) {
	t.Helper()
	ed := lattice.New()

	page := &domain.Page{
		ID:   "doc-1",
		Slug: "demo",
		Steps: []domain.Step{
			{ID: "s1", Name: "Landing", Frames: []domain.Frame{
				{ID: "f1", Stacks: []domain.Stack{
					{ID: "k1", Blocks: []domain.Block{
						{ID: "b1", Type: domain.BlockHero, Elements: []domain.Element{
							{ID: "el1", Type: domain.ElementText, Content: "Hi"},
						}},
						{ID: "b2", Type: domain.BlockApplicationFlow, Flow: &domain.Flow{Steps: []domain.FlowStep{
							{ID: "fs-1", Type: domain.FlowStepWelcome},
							{ID: "fs-2", Type: domain.FlowStepEnding, Navigation: &domain.StepNavigation{Action: domain.ActionSubmit}},
						}}},
					}},
				}},
			}},
		},
	}

	id, err := ed.Create(context.Background(), page)
	require.NoError(t, err)
	return ed, id
}

func TestEditor_ApplyAndGet(t *testing.T) {
	ed, docID := seedEditor(t)
	ctx := context.Background()

	applied, err := ed.Apply(ctx, docID, "el1", domain.Patch{
		Mode:   domain.ModeTablet,
		Styles: map[string]any{"fontSize": "18px"},
	})
	require.NoError(t, err)
	assert.True(t, applied)

	page, err := ed.Get(ctx, docID)
	require.NoError(t, err)
	el := page.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[0]
	assert.Equal(t, "18px", el.Responsive[domain.ModeTablet].Styles["fontSize"])

	t.Run("missing node is a soft no-op", func(t *testing.T) {
		applied, err := ed.Apply(ctx, docID, "ghost", domain.Patch{Styles: map[string]any{"x": 1}})
		require.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestEditor_ResolveModes(t *testing.T) {
	ed, docID := seedEditor(t)
	ctx := context.Background()

	res, err := ed.Resolve(ctx, docID, "b2", "fs-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionStep, res.Kind)
	assert.Equal(t, "fs-2", res.StepID)

	t.Run("unknown block", func(t *testing.T) {
		_, err := ed.Resolve(ctx, docID, "b1", "fs-1")
		assert.ErrorIs(t, err, domain.ErrFlowNotFound)
	})

	t.Run("dangling reference strict vs runtime", func(t *testing.T) {
		_, err := ed.Apply(ctx, docID, "fs-1", domain.Patch{
			Navigation: &domain.StepNavigation{
				Action:       domain.ActionGoToStep,
				TargetStepID: "gone",
			},
		})
		require.NoError(t, err)

		var dangling *domain.DanglingReferenceError
		_, err = ed.Resolve(ctx, docID, "b2", "fs-1")
		require.ErrorAs(t, err, &dangling)

		res, err := ed.ResolveRuntime(ctx, docID, "b2", "fs-1")
		require.NoError(t, err)
		assert.Equal(t, domain.ResolutionTerminal, res.Kind)
	})
}

func TestEditor_StepManagement(t *testing.T) {
	ed, docID := seedEditor(t)
	ctx := context.Background()

	id, err := ed.AddStep(ctx, docID, "Thanks")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	dupID, applied, err := ed.DuplicateStep(ctx, docID, "s1")
	require.NoError(t, err)
	require.True(t, applied)

	page, err := ed.Get(ctx, docID)
	require.NoError(t, err)
	require.Len(t, page.Steps, 3)
	assert.Equal(t, dupID, page.Steps[1].ID)

	t.Run("delete keeps the page non-empty", func(t *testing.T) {
		for _, stepID := range []string{dupID, id} {
			applied, err := ed.DeleteStep(ctx, docID, stepID)
			require.NoError(t, err)
			assert.True(t, applied)
		}
		applied, err := ed.DeleteStep(ctx, docID, "s1")
		require.NoError(t, err)
		assert.False(t, applied, "last step survives")
	})
}

func TestEditor_ValidateAfterDelete(t *testing.T) {
	ed, docID := seedEditor(t)
	ctx := context.Background()

	// Point fs-2 at fs-1, then delete fs-1: the orphaned reference must
	// be reported by validation, not silently repaired.
	_, err := ed.Apply(ctx, docID, "fs-2", domain.Patch{
		Navigation: &domain.StepNavigation{
			Action:       domain.ActionGoToStep,
			TargetStepID: "fs-1",
		},
	})
	require.NoError(t, err)

	applied, err := ed.DeleteFlowStep(ctx, docID, "b2", "fs-1")
	require.NoError(t, err)
	require.True(t, applied)

	violations, err := ed.Validate(ctx, docID)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationDanglingReference, violations[0].Code)
	assert.Equal(t, "fs-2", violations[0].NodeID)
}

func TestEditor_Hooks(t *testing.T) {
	var updates []domain.UpdateEvent
	ed := lattice.New(lattice.WithEditHooks(domain.EditHooks{
		OnUpdate: func(ctx context.Context, e *domain.UpdateEvent) {
			updates = append(updates, *e)
		},
	}))

	ctx := context.Background()
	_, err := ed.Create(ctx, &domain.Page{
		ID:    "doc-h",
		Steps: []domain.Step{{ID: "s1", Frames: []domain.Frame{}}},
	})
	require.NoError(t, err)

	name := "Renamed"
	applied, err := ed.Apply(ctx, "doc-h", "s1", domain.Patch{Name: &name})
	require.NoError(t, err)
	require.True(t, applied)

	require.Len(t, updates, 1)
	assert.Equal(t, domain.KindStep, updates[0].Kind)
	assert.True(t, updates[0].Applied)
}

func TestEditor_Parse(t *testing.T) {
	ed := lattice.New()
	page, err := ed.Parse([]byte(`{"id": "p1", "steps": [{"id": "s1", "frames": []}]}`))
	require.NoError(t, err)
	assert.Equal(t, "p1", page.ID)

	_, err = ed.Parse([]byte(`{"steps": []}`))
	assert.Error(t, err)
}

func TestEditor_Graph(t *testing.T) {
	ed, docID := seedEditor(t)
	src, err := ed.Graph(context.Background(), docID, "b2")
	require.NoError(t, err)
	assert.Contains(t, src, "graph TD")
	assert.Contains(t, src, "fs_1")
}

func TestEditor_DraftSession(t *testing.T) {
	ed, docID := seedEditor(t)
	ctx := context.Background()

	draft, err := ed.Edit(ctx, docID)
	require.NoError(t, err)

	draft.Stage("el1", domain.Patch{Styles: map[string]any{"opacity": 0.5}})
	draft.Stage("el1", domain.Patch{Styles: map[string]any{"opacity": 0.8}})

	page, err := draft.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.8, page.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[0].Styles["opacity"])

	// The committed tree is what subsequent loads see.
	loaded, err := ed.Get(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, 0.8, loaded.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[0].Styles["opacity"])
}
