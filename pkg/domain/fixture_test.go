package domain_test

import "github.com/latticehq/lattice/pkg/domain"

// fixturePage builds a small but fully populated document: two outer
// steps, one application-flow block with a three-step embedded flow,
// and a leaf element carrying responsive overrides.
func fixturePage() *domain.Page {
	return &domain.Page{
		ID:   "page-1",
		Slug: "demo-funnel",
		Steps: []domain.Step{
			{
				ID:     "step-1",
				Name:   "Landing",
				Intent: domain.IntentCapture,
				Frames: []domain.Frame{
					{
						ID:     "frame-1",
						Layout: domain.LayoutContained,
						Stacks: []domain.Stack{
							{
								ID:        "stack-1",
								Direction: domain.StackVertical,
								Blocks: []domain.Block{
									{
										ID:   "block-hero",
										Type: domain.BlockHero,
										Elements: []domain.Element{
											{
												ID:      "el-headline",
												Type:    domain.ElementText,
												Content: "Welcome",
												Styles:  map[string]any{"fontSize": "32px"},
												Responsive: map[domain.DeviceMode]domain.Override{
													domain.ModeMobile: {
														Styles: map[string]any{"fontSize": "20px"},
													},
												},
											},
										},
									},
									{
										ID:   "block-flow",
										Type: domain.BlockApplicationFlow,
										Flow: &domain.Flow{
											Steps: []domain.FlowStep{
												{
													ID:   "fs-1",
													Type: domain.FlowStepWelcome,
													Elements: []domain.Element{
														{ID: "fs-el-1", Type: domain.ElementButton, Content: "Start"},
													},
												},
												{
													ID:   "fs-2",
													Type: domain.FlowStepQuestion,
													Navigation: &domain.StepNavigation{
														Action:       domain.ActionGoToStep,
														TargetStepID: "fs-3",
													},
												},
												{
													ID:   "fs-3",
													Type: domain.FlowStepEnding,
													Navigation: &domain.StepNavigation{
														Action: domain.ActionSubmit,
													},
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
			{
				ID:     "step-2",
				Name:   "Thanks",
				Frames: []domain.Frame{},
			},
		},
	}
}
