package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/latticehq/lattice/pkg/domain"
)

// Parser converts raw document bytes into a normalized Page.
//
// Normalization is the versioned import at the document boundary: it
// lifts legacy props["steps"] payloads of application-flow blocks into
// the typed Flow field, and lifts settings["buttonAction"] of every
// flow step into the canonical Action. The raw maps are left in place
// so unmigrated documents round-trip byte-for-byte in meaning.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes JSON or YAML document bytes and normalizes the result.
func (p *Parser) Parse(data []byte) (*domain.Page, error) {
	var page domain.Page

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
	}

	if page.ID == "" {
		return nil, fmt.Errorf("document missing id")
	}
	if err := p.Normalize(&page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Serialize encodes a page as indented JSON, the document wire form.
func (p *Parser) Serialize(page *domain.Page) ([]byte, error) {
	return json.MarshalIndent(page, "", "  ")
}

// Normalize applies the legacy lifts in place. Safe to call on
// documents constructed programmatically as well as on parsed ones.
func (p *Parser) Normalize(page *domain.Page) error {
	for si := range page.Steps {
		step := &page.Steps[si]
		for fi := range step.Frames {
			for ki := range step.Frames[fi].Stacks {
				stack := &step.Frames[fi].Stacks[ki]
				for bi := range stack.Blocks {
					if err := p.normalizeBlock(&stack.Blocks[bi]); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func (p *Parser) normalizeBlock(block *domain.Block) error {
	if block.Type != domain.BlockApplicationFlow {
		return nil
	}

	// Legacy documents embed the flow under props["steps"]; newer ones
	// carry the typed flow field. The typed field wins when both exist.
	if block.Flow == nil {
		if raw, ok := block.Props["steps"]; ok {
			var steps []domain.FlowStep
			if err := decodeLoose(raw, &steps); err != nil {
				return fmt.Errorf("block %s: invalid embedded flow: %w", block.ID, err)
			}
			block.Flow = &domain.Flow{Steps: steps}
		}
	}
	if block.Flow == nil {
		return nil
	}

	for i := range block.Flow.Steps {
		step := &block.Flow.Steps[i]
		raw, ok := step.Settings["buttonAction"]
		if !ok || raw == nil {
			continue
		}
		var action domain.ButtonAction
		if err := decodeLoose(raw, &action); err != nil {
			return fmt.Errorf("flow step %s: invalid buttonAction: %w", step.ID, err)
		}
		step.Action = &action
	}
	return nil
}

// decodeLoose maps free-form document data onto a typed struct. Keys
// follow the json tags; unknown keys are ignored so forward-compatible
// documents still load.
func decodeLoose(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
