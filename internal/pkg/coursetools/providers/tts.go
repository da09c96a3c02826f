package providers

import (
	"context"
	"time"

	"revcast/internal/pkg/coursetools"
	"revcast/internal/pkg/tts"
)

// VolcTTSProvider adapts the openspeech TTS client to the coursetools
// TTSProvider interface.
type VolcTTSProvider struct {
	client *tts.Client
}

// NewVolcTTSProvider creates a TTS provider backed by pkg/tts.
func NewVolcTTSProvider(client *tts.Client) *VolcTTSProvider {
	return &VolcTTSProvider{
		client: client,
	}
}

// Synthesize converts one dialogue segment to audio.
func (p *VolcTTSProvider) Synthesize(ctx context.Context, text, voiceType string) (*coursetools.TTSResult, error) {
	if p.client == nil {
		return &coursetools.TTSResult{
			Success:      false,
			ErrorMessage: "TTS client is required",
		}, nil
	}

	result, err := p.client.Synthesize(ctx, text, voiceType)
	if err != nil {
		return &coursetools.TTSResult{
			Success:      false,
			ErrorMessage: err.Error(),
		}, err
	}

	return &coursetools.TTSResult{
		Success:      result.Success,
		AudioData:    result.AudioData,
		Duration:     result.Duration,
		ErrorMessage: result.ErrorMessage,
		GeneratedAt:  time.Now(),
	}, nil
}
