package runtime_test

import "github.com/latticehq/lattice/pkg/domain"

func fixturePage() *domain.Page {
	return &domain.Page{
		ID: "page-1",
		Steps: []domain.Step{
			{
				ID:   "step-1",
				Name: "Landing",
				Frames: []domain.Frame{
					{
						ID: "frame-1",
						Stacks: []domain.Stack{
							{
								ID: "stack-1",
								Blocks: []domain.Block{
									{
										ID:   "block-hero",
										Type: domain.BlockHero,
										Elements: []domain.Element{
											{
												ID:      "el-headline",
												Type:    domain.ElementText,
												Content: "Welcome",
												Styles:  map[string]any{"fontSize": "32px", "color": "black"},
											},
											{
												ID:      "el-sub",
												Type:    domain.ElementText,
												Content: "Subtitle",
											},
										},
									},
									{
										ID:   "block-flow",
										Type: domain.BlockApplicationFlow,
										Flow: &domain.Flow{
											Steps: []domain.FlowStep{
												{ID: "fs-1", Type: domain.FlowStepWelcome},
												{ID: "fs-2", Type: domain.FlowStepQuestion},
												{ID: "fs-3", Type: domain.FlowStepEnding},
											},
										},
									},
								},
							},
						},
					},
				},
			},
			{ID: "step-2", Name: "Thanks", Frames: []domain.Frame{}},
		},
	}
}
