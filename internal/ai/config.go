package ai

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for cheap, high-volume generations (job scans, task lists)
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction and analysis
	TierStandard ModelTier = "standard"
	// TierAdvanced is for multi-phase planning (roadmaps)
	TierAdvanced ModelTier = "advanced"
)

// ModelConfig maps tiers to provider model names.
type ModelConfig struct {
	Models map[ModelTier]string
}

// DefaultModelConfig returns the default Gemini tier mapping.
func DefaultModelConfig() *ModelConfig {
	return &ModelConfig{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// Model returns the model name for a given tier, falling back through
// standard and lite when the tier is unmapped.
func (c *ModelConfig) Model(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
