package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/internal/runtime"
	"github.com/latticehq/lattice/pkg/domain"
)

func TestApplyUpdate_Locality(t *testing.T) {
	page := fixturePage()

	next, applied := runtime.ApplyUpdate(page, "el-headline", domain.Patch{
		Styles: map[string]any{"fontSize": "40px"},
	})
	require.True(t, applied)
	require.NotSame(t, page, next, "a new tree comes back")

	// Target changed in the new tree only.
	assert.Equal(t, "40px", next.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[0].Styles["fontSize"])
	assert.Equal(t, "32px", page.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[0].Styles["fontSize"])

	// Sibling element of the target keeps its identity fields.
	assert.Equal(t, "Subtitle", next.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[1].Content)

	// Untouched subtrees are shared, not copied: the sibling block's
	// flow and the untouched outer step survive by reference.
	assert.Same(t, page.Steps[0].Frames[0].Stacks[0].Blocks[1].Flow,
		next.Steps[0].Frames[0].Stacks[0].Blocks[1].Flow)

	// Unrelated fields of the target are untouched.
	assert.Equal(t, "Welcome", next.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[0].Content)
	assert.Equal(t, "black", next.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[0].Styles["color"])
}

func TestApplyUpdate_MissingTargetIsNoOp(t *testing.T) {
	page := fixturePage()
	next, applied := runtime.ApplyUpdate(page, "no-such-node", domain.Patch{
		Styles: map[string]any{"x": 1},
	})
	assert.False(t, applied)
	assert.Same(t, page, next, "the input tree comes back unchanged")
}

func TestApplyUpdate_MergeByKey(t *testing.T) {
	page := fixturePage()

	t.Run("sibling keys preserved", func(t *testing.T) {
		next, applied := runtime.ApplyUpdate(page, "el-headline", domain.Patch{
			Styles: map[string]any{"fontSize": "40px"},
		})
		require.True(t, applied)
		styles := next.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[0].Styles
		assert.Equal(t, "40px", styles["fontSize"])
		assert.Equal(t, "black", styles["color"])
	})

	t.Run("nil value deletes the key", func(t *testing.T) {
		next, applied := runtime.ApplyUpdate(page, "el-headline", domain.Patch{
			Styles: map[string]any{"color": nil},
		})
		require.True(t, applied)
		styles := next.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[0].Styles
		_, present := styles["color"]
		assert.False(t, present)
		assert.Equal(t, "32px", styles["fontSize"])
	})
}

func TestApplyUpdate_ResponsiveRedirect(t *testing.T) {
	page := fixturePage()

	next, applied := runtime.ApplyUpdate(page, "el-headline", domain.Patch{
		Mode:   domain.ModeMobile,
		Styles: map[string]any{"fontSize": "14px"},
	})
	require.True(t, applied)

	el := next.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[0]

	// The write landed in the mobile slot, not the base map.
	assert.Equal(t, "32px", el.Styles["fontSize"])
	assert.Equal(t, "14px", el.Responsive[domain.ModeMobile].Styles["fontSize"])

	// Tablet is unaffected: no cross-mode inheritance.
	_, hasTablet := el.Responsive[domain.ModeTablet]
	assert.False(t, hasTablet)

	// Reads resolve per the fallback chain.
	assert.Equal(t, "14px", domain.EffectiveValue(&el, "fontSize", domain.ModeMobile, nil))
	assert.Equal(t, "32px", domain.EffectiveValue(&el, "fontSize", domain.ModeTablet, nil))
	assert.Equal(t, "32px", domain.EffectiveValue(&el, "fontSize", domain.ModeDesktop, nil))
}

func TestApplyUpdate_DesktopWritesBase(t *testing.T) {
	page := fixturePage()

	next, applied := runtime.ApplyUpdate(page, "el-headline", domain.Patch{
		Mode:   domain.ModeDesktop,
		Styles: map[string]any{"fontSize": "48px"},
	})
	require.True(t, applied)

	el := next.Steps[0].Frames[0].Stacks[0].Blocks[0].Elements[0]
	assert.Equal(t, "48px", el.Styles["fontSize"])
	assert.Empty(t, el.Responsive)
}

func TestApplyUpdate_FlowStepActionMirror(t *testing.T) {
	page := fixturePage()

	next, applied := runtime.ApplyUpdate(page, "fs-1", domain.Patch{
		Action: &domain.ButtonAction{
			Action:       domain.ActionGoToStep,
			TargetStepID: "fs-3",
		},
	})
	require.True(t, applied)

	flow := next.Steps[0].Frames[0].Stacks[0].Blocks[1].Flow
	step, ok := flow.StepByID("fs-1")
	require.True(t, ok)

	require.NotNil(t, step.Action)
	assert.Equal(t, "fs-3", step.Action.TargetStepID)

	// The wire form stays authoritative: settings carries the mirror.
	raw, ok := step.Settings["buttonAction"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "go-to-step", raw["action"])
	assert.Equal(t, "fs-3", raw["targetStepId"])
}

func TestApplyUpdate_PageAndStructuralNodes(t *testing.T) {
	page := fixturePage()

	t.Run("page slug", func(t *testing.T) {
		slug := "renamed"
		next, applied := runtime.ApplyUpdate(page, "page-1", domain.Patch{Slug: &slug})
		require.True(t, applied)
		assert.Equal(t, "renamed", next.Slug)
		assert.Equal(t, "", page.Slug)
	})

	t.Run("step name and intent", func(t *testing.T) {
		name := "Hero"
		intent := domain.IntentQualify
		next, applied := runtime.ApplyUpdate(page, "step-1", domain.Patch{Name: &name, Intent: &intent})
		require.True(t, applied)
		assert.Equal(t, "Hero", next.Steps[0].Name)
		assert.Equal(t, domain.IntentQualify, next.Steps[0].Intent)
	})

	t.Run("frame layout", func(t *testing.T) {
		layout := domain.LayoutFullWidth
		next, applied := runtime.ApplyUpdate(page, "frame-1", domain.Patch{Layout: &layout})
		require.True(t, applied)
		assert.Equal(t, domain.LayoutFullWidth, next.Steps[0].Frames[0].Layout)
	})

	t.Run("stack direction", func(t *testing.T) {
		dir := domain.StackHorizontal
		next, applied := runtime.ApplyUpdate(page, "stack-1", domain.Patch{Direction: &dir})
		require.True(t, applied)
		assert.Equal(t, domain.StackHorizontal, next.Steps[0].Frames[0].Stacks[0].Direction)
	})
}
