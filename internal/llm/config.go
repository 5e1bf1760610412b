package llm

import (
	"strconv"
)

// TaskType identifies the kind of generation being performed.
type TaskType string

const (
	TaskPlan TaskType = "plan"
	TaskIcon TaskType = "icon"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig configures the Ollama-compatible endpoint used for plan and icon
// generation.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig targets a local Ollama server. Plan generation gets a long
// timeout since a four-week plan is a large completion.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    true,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskPlan: {Temperature: 0.4, MaxTokens: 8192, TimeoutMs: 120000},
			TaskIcon: {Temperature: 0.6, MaxTokens: 2048, TimeoutMs: 45000},
		},
	}
}

// ApplyEnv overrides fields from GRINDFIT_LLM_* variables. lookup is usually
// os.LookupEnv. Malformed values are ignored.
func (c *LLMConfig) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("GRINDFIT_LLM_ENABLED"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v, ok := lookup("GRINDFIT_LLM_LOG_CALLS"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogCalls = b
		}
	}
	if v, ok := lookup("GRINDFIT_LLM_ENDPOINT"); ok && v != "" {
		c.Endpoint = v
	}
	if v, ok := lookup("GRINDFIT_LLM_MODEL"); ok && v != "" {
		c.Model = v
	}
	if v, ok := lookup("GRINDFIT_LLM_API_KEY"); ok {
		c.APIKey = v
	}
	if v, ok := lookup("GRINDFIT_LLM_TIMEOUT_MS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutMs = n
		}
	}
	if v, ok := lookup("GRINDFIT_LLM_MAX_RETRIES"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.MaxRetries = n
		}
	}
	c.applyTaskTimeout(lookup, TaskPlan, "GRINDFIT_LLM_PLAN_TIMEOUT_MS")
	c.applyTaskTimeout(lookup, TaskIcon, "GRINDFIT_LLM_ICON_TIMEOUT_MS")
}

// SetTaskTimeout overrides the timeout of one task. Non-positive values are
// ignored.
func (c *LLMConfig) SetTaskTimeout(task TaskType, ms int) {
	if ms <= 0 {
		return
	}
	if c.Tasks == nil {
		c.Tasks = map[TaskType]TaskConfig{}
	}
	tc := c.Tasks[task]
	tc.TimeoutMs = ms
	c.Tasks[task] = tc
}

// TaskTimeout returns the task-specific timeout, falling back to the global one.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func (c *LLMConfig) applyTaskTimeout(lookup func(string) (string, bool), task TaskType, name string) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		c.SetTaskTimeout(task, n)
	}
}
