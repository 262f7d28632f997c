package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		tier   ModelTier
		want   string
	}{
		{name: "default lite", config: DefaultConfig(), tier: TierLite, want: "gemini-2.5-flash-lite"},
		{name: "default standard", config: DefaultConfig(), tier: TierStandard, want: "gemini-2.5-flash"},
		{name: "default advanced", config: DefaultConfig(), tier: TierAdvanced, want: "gemini-2.5-pro"},
		{
			name:   "unknown tier falls back to standard",
			config: &Config{Models: map[ModelTier]string{TierStandard: "std-model", TierLite: "lite-model"}},
			tier:   "unknown",
			want:   "std-model",
		},
		{
			name:   "falls back to lite when standard missing",
			config: &Config{Models: map[ModelTier]string{TierLite: "lite-model"}},
			tier:   TierAdvanced,
			want:   "lite-model",
		},
		{
			name:   "empty config yields empty model",
			config: &Config{Models: map[ModelTier]string{}},
			tier:   TierAdvanced,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.GetModel(tt.tier))
		})
	}
}

func TestWithModel(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "custom-model", custom.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", custom.GetModel(TierLite))
	// The original config is never mutated.
	assert.Equal(t, "gemini-2.5-pro", base.GetModel(TierAdvanced))
}
