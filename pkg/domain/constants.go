package domain

// DeviceMode keys responsive overrides. Desktop is the base mode; the
// other modes override it independently (no tablet -> mobile cascade).
type DeviceMode string

const (
	ModeDesktop DeviceMode = "desktop"
	ModeTablet  DeviceMode = "tablet"
	ModeMobile  DeviceMode = "mobile"
)

// IsBase reports whether writes for this mode land on the base
// styles/props rather than a responsive override slot.
func (m DeviceMode) IsBase() bool {
	return m == "" || m == ModeDesktop
}

// NodeKind identifies the level of the document tree a node lives at.
type NodeKind string

const (
	KindPage     NodeKind = "page"
	KindStep     NodeKind = "step"
	KindFrame    NodeKind = "frame"
	KindStack    NodeKind = "stack"
	KindBlock    NodeKind = "block"
	KindElement  NodeKind = "element"
	KindFlowStep NodeKind = "flow-step"
)

// StepIntent categorizes a document-level step for the editor UI.
// It carries no runtime behavior.
type StepIntent string

const (
	IntentCapture  StepIntent = "capture"
	IntentQualify  StepIntent = "qualify"
	IntentSchedule StepIntent = "schedule"
	IntentConvert  StepIntent = "convert"
	IntentComplete StepIntent = "complete"
)

// FrameLayout controls the horizontal sizing of a frame.
type FrameLayout string

const (
	LayoutContained FrameLayout = "contained"
	LayoutFullWidth FrameLayout = "full-width"
)

// StackDirection is the flex direction of a stack.
type StackDirection string

const (
	StackVertical   StackDirection = "vertical"
	StackHorizontal StackDirection = "horizontal"
)

// BlockType constants. The list is open-ended except for
// BlockApplicationFlow, which is reserved: such a block embeds an
// entire secondary step graph (Flow).
type BlockType string

const (
	BlockHero            BlockType = "hero"
	BlockFormField       BlockType = "form-field"
	BlockCTA             BlockType = "cta"
	BlockTestimonial     BlockType = "testimonial"
	BlockApplicationFlow BlockType = "application-flow"
)

// ElementType constants for the common leaf primitives.
type ElementType string

const (
	ElementButton ElementType = "button"
	ElementText   ElementType = "text"
	ElementImage  ElementType = "image"
	ElementInput  ElementType = "input"
	ElementSelect ElementType = "select"
	ElementScale  ElementType = "scale"
	ElementVideo  ElementType = "video"
)

// FlowStepType classifies a step inside an embedded flow. Unlike
// StepIntent this enum has semantic meaning: the resolver and the
// graph renderer branch on it.
type FlowStepType string

const (
	FlowStepWelcome  FlowStepType = "welcome"
	FlowStepQuestion FlowStepType = "question"
	FlowStepCapture  FlowStepType = "capture"
	FlowStepBooking  FlowStepType = "booking"
	FlowStepEnding   FlowStepType = "ending"
)

// NavigationAction is what happens when a flow step is completed.
type NavigationAction string

const (
	ActionNext     NavigationAction = "next"
	ActionGoToStep NavigationAction = "go-to-step"
	ActionSubmit   NavigationAction = "submit"
	ActionRedirect NavigationAction = "redirect"
)
