package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 120000, cfg.TaskTimeout(TaskPlan))
	assert.Equal(t, 45000, cfg.TaskTimeout(TaskIcon))
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskType("other")))
}

func TestApplyEnv_Overrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyEnv(lookupFrom(map[string]string{
		"GRINDFIT_LLM_ENABLED":         "false",
		"GRINDFIT_LLM_LOG_CALLS":       "1",
		"GRINDFIT_LLM_ENDPOINT":        "http://gpu-box:11434",
		"GRINDFIT_LLM_MODEL":           "qwen2.5",
		"GRINDFIT_LLM_API_KEY":         "k",
		"GRINDFIT_LLM_TIMEOUT_MS":      "9000",
		"GRINDFIT_LLM_MAX_RETRIES":     "0",
		"GRINDFIT_LLM_PLAN_TIMEOUT_MS": "60000",
	}))

	assert.False(t, cfg.Enabled)
	assert.True(t, cfg.LogCalls)
	assert.Equal(t, "http://gpu-box:11434", cfg.Endpoint)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 60000, cfg.TaskTimeout(TaskPlan))
	assert.Equal(t, 45000, cfg.TaskTimeout(TaskIcon))
}

func TestApplyEnv_InvalidValuesIgnored(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyEnv(lookupFrom(map[string]string{
		"GRINDFIT_LLM_ENABLED":         "maybe",
		"GRINDFIT_LLM_TIMEOUT_MS":      "-5",
		"GRINDFIT_LLM_MAX_RETRIES":     "many",
		"GRINDFIT_LLM_ICON_TIMEOUT_MS": "soon",
	}))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSetTaskTimeout_NilTasks(t *testing.T) {
	var cfg LLMConfig
	cfg.SetTaskTimeout(TaskIcon, 10)
	assert.Equal(t, 10, cfg.TaskTimeout(TaskIcon))
	cfg.SetTaskTimeout(TaskIcon, 0)
	assert.Equal(t, 10, cfg.TaskTimeout(TaskIcon))
}
