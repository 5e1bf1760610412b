package intelligence

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/llm"
)

// IconGenerator produces an image reference for a task category.
type IconGenerator interface {
	// GenerateIcon returns a data URI, or "" when the model produced no image.
	GenerateIcon(ctx context.Context, t domain.TaskType) (string, error)
}

type iconGenerator struct {
	client llm.LLMClient
}

func NewIconGenerator(client llm.LLMClient) IconGenerator {
	return &iconGenerator{client: client}
}

func (g *iconGenerator) GenerateIcon(ctx context.Context, t domain.TaskType) (string, error) {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskIcon,
		SystemPrompt: iconSystemPrompt,
		UserPrompt:   buildIconPrompt(t),
	})
	if err != nil {
		return "", fmt.Errorf("generating %s icon: %w", t, err)
	}
	svg := llm.ExtractSVG(resp.Text)
	if svg == "" {
		return "", nil
	}
	return SVGDataURI(svg), nil
}

// SVGDataURI encodes an SVG document as a base64 data URI.
func SVGDataURI(svg string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
