package coursetools

import (
	"context"
	"time"

	"revcast/internal/model/course"
)

// LLMProvider abstracts a raw text completion call. How the model is
// called is injected by the caller, which keeps this package testable
// without network access.
type LLMProvider interface {
	// Generate produces text from a prompt.
	//
	// Args:
	//   - ctx: context
	//   - prompt: rendered prompt text
	//   - temperature: sampling temperature; repair passes always use 0
	//
	// Returns:
	//   - text: generated text
	//   - err: error
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}

// GenerationRequest is one call to the content generator boundary.
type GenerationRequest struct {
	PromptType  string  // first-pass prompt name or a regen_* action
	Prompt      string  // fully rendered prompt
	Temperature float64 // 0 during repair for reproducibility
}

// EpisodeContent is the artifact pair produced by the content
// generator for one episode. Repair replaces the whole value
// atomically, never patching fields in place.
type EpisodeContent struct {
	Script        *course.Script
	MCQs          *course.MCQSet
	ChangeSummary string
}

// ContentGenerator is the external generation boundary. Any call may
// fail with a timeout or unparsable output; callers count such
// failures against their retry budget.
type ContentGenerator interface {
	Generate(ctx context.Context, req *GenerationRequest) (*EpisodeContent, error)
}

// TTSProvider synthesizes one dialogue segment with a given voice.
type TTSProvider interface {
	// Synthesize converts text to audio.
	//
	// Args:
	//   - ctx: context
	//   - text: segment text without the speaker tag
	//   - voiceType: provider voice id for the segment's speaker
	//
	// Returns:
	//   - result: audio bytes and measured duration
	//   - err: error
	Synthesize(ctx context.Context, text, voiceType string) (*TTSResult, error)
}

// TTSResult is the synthesis result for one segment.
type TTSResult struct {
	Success      bool      `json:"success"`
	AudioData    []byte    `json:"-"`
	Duration     float64   `json:"duration"` // seconds
	ErrorMessage string    `json:"error_message"`
	GeneratedAt  time.Time `json:"generated_at"`
}
