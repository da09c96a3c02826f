package providers

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// EinoProvider adapts an eino ChatModel to the coursetools
// LLMProvider interface. The ChatModel comes from
// ai/component.NewChatModel.
type EinoProvider struct {
	chatModel model.ChatModel
}

// NewEinoProvider creates an eino-backed LLM provider.
func NewEinoProvider(chatModel model.ChatModel) *EinoProvider {
	return &EinoProvider{
		chatModel: chatModel,
	}
}

// Generate produces text from a prompt. The per-call temperature
// overrides the model default; repair calls pass 0 for
// reproducibility.
func (p *EinoProvider) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	if p.chatModel == nil {
		return "", fmt.Errorf("chatModel is required")
	}

	messages := []*schema.Message{
		schema.UserMessage(prompt),
	}

	response, err := p.chatModel.Generate(ctx, messages, model.WithTemperature(float32(temperature)))
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	content := response.Content
	if content == "" {
		return "", fmt.Errorf("empty response from chat model")
	}

	return content, nil
}
