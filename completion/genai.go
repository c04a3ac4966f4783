package completion

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/hanjelito/hackatonNasa2025/domain"
)

// GenAIClient generates replies using Google's Gemini API.
type GenAIClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGenAIClient creates a Gemini-backed completer.
func NewGenAIClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate performs one completion round trip. The call is bounded by the
// configured timeout; once dispatched it either returns text or fails.
func (c *GenAIClient) Generate(ctx context.Context, systemInstruction string, messages []domain.Turn) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	contents := make([]*genai.Content, len(messages))
	for i, msg := range messages {
		contents[i] = genai.NewContentFromText(msg.Content, toGenAIRole(msg.Role))
	}

	var cfg *genai.GenerateContentConfig
	if systemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return result.Text(), nil
}

func toGenAIRole(role string) genai.Role {
	if role == domain.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// Name returns the backend identifier.
func (c *GenAIClient) Name() string {
	return fmt.Sprintf("genai:%s", c.model)
}
