package domain

// Patch is a partial update for exactly one node. Unset fields are
// left untouched. Props/Styles/Settings merge by key: each named
// sub-key replaces its counterpart, sibling sub-keys are preserved,
// and a nil value deletes the key. There is no deep recursive merge.
//
// Mode redirects style/prop writes on elements: with a non-base mode
// set, the keys land in Responsive[mode] instead of the base maps.
type Patch struct {
	Mode DeviceMode `json:"mode,omitempty"`

	Name       *string         `json:"name,omitempty"`
	Slug       *string         `json:"slug,omitempty"`
	Label      *string         `json:"label,omitempty"`
	Content    *string         `json:"content,omitempty"`
	Intent     *StepIntent     `json:"step_intent,omitempty"`
	SubmitMode *string         `json:"submit_mode,omitempty"`
	Layout     *FrameLayout    `json:"layout,omitempty"`
	Direction  *StackDirection `json:"direction,omitempty"`

	Props    map[string]any `json:"props,omitempty"`
	Styles   map[string]any `json:"styles,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`

	Background *Background `json:"background,omitempty"`
	Visibility *Visibility `json:"visibility,omitempty"`
	Animation  *Animation  `json:"animation,omitempty"`

	// Navigation writes the legacy record on a flow step; Action writes
	// the unified shape (mirrored into settings["buttonAction"] so the
	// wire form stays authoritative).
	Navigation *StepNavigation `json:"navigation,omitempty"`
	Action     *ButtonAction   `json:"buttonAction,omitempty"`
}

// IsZero reports whether the patch carries no changes at all.
func (p Patch) IsZero() bool {
	return p.Name == nil && p.Slug == nil && p.Label == nil && p.Content == nil &&
		p.Intent == nil && p.SubmitMode == nil && p.Layout == nil && p.Direction == nil &&
		len(p.Props) == 0 && len(p.Styles) == 0 && len(p.Settings) == 0 &&
		p.Background == nil && p.Visibility == nil && p.Animation == nil &&
		p.Navigation == nil && p.Action == nil
}

// MergedWith overlays later onto p, last write wins per field and per
// map key. Used by draft sessions to collapse many staged writes into
// one committed patch.
func (p Patch) MergedWith(later Patch) Patch {
	out := p
	if later.Mode != "" {
		out.Mode = later.Mode
	}
	if later.Name != nil {
		out.Name = later.Name
	}
	if later.Slug != nil {
		out.Slug = later.Slug
	}
	if later.Label != nil {
		out.Label = later.Label
	}
	if later.Content != nil {
		out.Content = later.Content
	}
	if later.Intent != nil {
		out.Intent = later.Intent
	}
	if later.SubmitMode != nil {
		out.SubmitMode = later.SubmitMode
	}
	if later.Layout != nil {
		out.Layout = later.Layout
	}
	if later.Direction != nil {
		out.Direction = later.Direction
	}
	out.Props = overlayKeys(p.Props, later.Props)
	out.Styles = overlayKeys(p.Styles, later.Styles)
	out.Settings = overlayKeys(p.Settings, later.Settings)
	if later.Background != nil {
		out.Background = later.Background
	}
	if later.Visibility != nil {
		out.Visibility = later.Visibility
	}
	if later.Animation != nil {
		out.Animation = later.Animation
	}
	if later.Navigation != nil {
		out.Navigation = later.Navigation
	}
	if later.Action != nil {
		out.Action = later.Action
	}
	return out
}

func overlayKeys(base, extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return base
	}
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// EffectiveValue resolves a style/prop key on an element for a device
// mode. Non-base modes check their override slot first and fall back
// to the desktop base; the base is styles, then props, then fallback.
func EffectiveValue(el *Element, key string, mode DeviceMode, fallback any) any {
	if el == nil {
		return fallback
	}
	if !mode.IsBase() {
		if ov, ok := el.Responsive[mode]; ok {
			if v, ok := ov.Styles[key]; ok {
				return v
			}
			if v, ok := ov.Props[key]; ok {
				return v
			}
		}
	}
	if v, ok := el.Styles[key]; ok {
		return v
	}
	if v, ok := el.Props[key]; ok {
		return v
	}
	return fallback
}
