package component

import (
	"context"
	"fmt"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"revcast/internal/config"
)

// NewChatModel creates a ChatModel for the configured provider.
// Supported providers: openai, azure, ark.
func NewChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	switch cfg.Provider {
	case "openai", "":
		return newOpenAIChatModel(ctx, cfg)
	case "azure":
		return newAzureChatModel(ctx, cfg)
	case "ark":
		return newArkChatModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

func newOpenAIChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	modelCfg := &openai.ChatModelConfig{
		Model:  cfg.Model,
		APIKey: cfg.APIKey,
	}

	// Base URL for proxies or compatible APIs.
	if cfg.BaseURL != "" {
		modelCfg.BaseURL = cfg.BaseURL
	}

	if cfg.Options.Temperature > 0 {
		temp := float32(cfg.Options.Temperature)
		modelCfg.Temperature = &temp
	}
	if cfg.Options.MaxTokens > 0 {
		modelCfg.MaxTokens = &cfg.Options.MaxTokens
	}
	if cfg.Options.TopP > 0 {
		topP := float32(cfg.Options.TopP)
		modelCfg.TopP = &topP
	}

	return openai.NewChatModel(ctx, modelCfg)
}

func newAzureChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	modelCfg := &openai.ChatModelConfig{
		Model:   cfg.Model,
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		ByAzure: true,
	}

	if cfg.Options.Temperature > 0 {
		temp := float32(cfg.Options.Temperature)
		modelCfg.Temperature = &temp
	}

	return openai.NewChatModel(ctx, modelCfg)
}

func newArkChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://ark.cn-beijing.volces.com/api/v3"
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "doubao-seed-1-6-flash-250615"
	}

	modelCfg := &arkext.ChatModelConfig{
		Model:   modelName,
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
	}

	if cfg.Options.Temperature > 0 {
		temp := float32(cfg.Options.Temperature)
		modelCfg.Temperature = &temp
	}
	if cfg.Options.MaxTokens > 0 {
		modelCfg.MaxTokens = &cfg.Options.MaxTokens
	}
	if cfg.Options.TopP > 0 {
		topP := float32(cfg.Options.TopP)
		modelCfg.TopP = &topP
	}

	return arkext.NewChatModel(ctx, modelCfg)
}
