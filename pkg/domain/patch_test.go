package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latticehq/lattice/pkg/domain"
)

func TestEffectiveValue(t *testing.T) {
	el := &domain.Element{
		ID:     "el-1",
		Type:   domain.ElementText,
		Styles: map[string]any{"fontSize": "16px", "color": "black"},
		Props:  map[string]any{"weight": "bold"},
		Responsive: map[domain.DeviceMode]domain.Override{
			domain.ModeMobile: {
				Styles: map[string]any{"fontSize": "13px"},
			},
		},
	}

	tests := []struct {
		name     string
		key      string
		mode     domain.DeviceMode
		fallback any
		want     any
	}{
		{"desktop reads base style", "fontSize", domain.ModeDesktop, nil, "16px"},
		{"mobile override wins", "fontSize", domain.ModeMobile, nil, "13px"},
		{"mobile falls back to base for unset key", "color", domain.ModeMobile, nil, "black"},
		{"tablet does not inherit mobile override", "fontSize", domain.ModeTablet, nil, "16px"},
		{"props back the styles", "weight", domain.ModeDesktop, nil, "bold"},
		{"fallback for unknown key", "margin", domain.ModeDesktop, "0", "0"},
		{"empty mode behaves as desktop", "fontSize", "", nil, "16px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.EffectiveValue(el, tt.key, tt.mode, tt.fallback))
		})
	}

	t.Run("nil element yields fallback", func(t *testing.T) {
		assert.Equal(t, "x", domain.EffectiveValue(nil, "anything", domain.ModeDesktop, "x"))
	})
}

func TestPatch_MergedWith(t *testing.T) {
	name1 := "first"
	name2 := "second"
	content := "hello"

	base := domain.Patch{
		Name:   &name1,
		Styles: map[string]any{"color": "red", "fontSize": "16px"},
	}
	later := domain.Patch{
		Name:    &name2,
		Content: &content,
		Styles:  map[string]any{"color": "blue"},
	}

	merged := base.MergedWith(later)

	assert.Equal(t, "second", *merged.Name, "last write wins per field")
	assert.Equal(t, "hello", *merged.Content)
	assert.Equal(t, "blue", merged.Styles["color"], "last write wins per key")
	assert.Equal(t, "16px", merged.Styles["fontSize"], "untouched keys survive")

	// The inputs stay untouched.
	assert.Equal(t, "red", base.Styles["color"])
}

func TestPatch_IsZero(t *testing.T) {
	assert.True(t, domain.Patch{}.IsZero())
	assert.True(t, domain.Patch{Mode: domain.ModeMobile}.IsZero(), "mode alone changes nothing")

	v := "x"
	assert.False(t, domain.Patch{Name: &v}.IsZero())
	assert.False(t, domain.Patch{Styles: map[string]any{"a": 1}}.IsZero())
}
