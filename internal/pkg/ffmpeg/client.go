package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client wraps ffmpeg/ffprobe command invocations for audio assembly.
type Client struct {
	ffmpegPath  string
	ffprobePath string
}

// NewClient creates an ffmpeg client. Binary paths can be overridden
// with FFMPEG_PATH and FFPROBE_PATH.
func NewClient() *Client {
	ffmpegPath := os.Getenv("FFMPEG_PATH")
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	ffprobePath := os.Getenv("FFPROBE_PATH")
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}

	return &Client{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
}

// AudioInfo holds probed audio metadata.
type AudioInfo struct {
	Duration float64 // seconds
}

// GetAudioInfo probes an audio file for its measured duration.
func (c *Client) GetAudioInfo(ctx context.Context, audioPath string) (*AudioInfo, error) {
	cmd := exec.CommandContext(ctx, c.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		audioPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	outputStr := string(output)
	var info AudioInfo
	if idx := strings.Index(outputStr, `"duration":`); idx != -1 {
		var duration float64
		if _, err := fmt.Sscanf(outputStr[idx:], `"duration":"%f"`, &duration); err == nil {
			info.Duration = duration
		}
	}

	return &info, nil
}

// CreateSilence writes a silent mp3 of the given length, used as the
// gap between dialogue segments.
func (c *Client) CreateSilence(ctx context.Context, outputPath string, durationMs int) error {
	args := []string{
		"-y",
		"-f", "lavfi",
		"-i", "anullsrc=r=44100:cl=mono",
		"-t", fmt.Sprintf("%.3f", float64(durationMs)/1000),
		"-c:a", "libmp3lame",
		"-b:a", "128k",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg silence failed: %w", err)
	}
	return nil
}

// ConcatAudio joins audio files in order using the concat demuxer.
func (c *Client) ConcatAudio(ctx context.Context, audioPaths []string, outputPath string) error {
	if len(audioPaths) == 0 {
		return fmt.Errorf("no audio files to concat")
	}

	tempDir := filepath.Dir(outputPath)
	concatListFile := filepath.Join(tempDir, fmt.Sprintf("concat_list_%d.txt", time.Now().UnixNano()))

	file, err := os.Create(concatListFile)
	if err != nil {
		return fmt.Errorf("create concat list file: %w", err)
	}
	defer os.Remove(concatListFile)

	for _, audioPath := range audioPaths {
		absPath, err := filepath.Abs(audioPath)
		if err != nil {
			file.Close()
			return fmt.Errorf("get absolute path: %w", err)
		}
		fmt.Fprintf(file, "file '%s'\n", absPath)
	}
	file.Close()

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", concatListFile,
		"-c:a", "libmp3lame",
		"-b:a", "128k",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg concat failed: %w", err)
	}

	log.Info().
		Int("count", len(audioPaths)).
		Str("output", outputPath).
		Msg("audio concatenated")

	return nil
}

// ConcatAudioWithGaps joins segments with a fixed silence between
// each pair.
func (c *Client) ConcatAudioWithGaps(ctx context.Context, audioPaths []string, outputPath string, gapMs int) error {
	if len(audioPaths) == 0 {
		return fmt.Errorf("no audio files to concat")
	}
	if gapMs <= 0 || len(audioPaths) == 1 {
		return c.ConcatAudio(ctx, audioPaths, outputPath)
	}

	silencePath := filepath.Join(filepath.Dir(outputPath), fmt.Sprintf("silence_%dms_%d.mp3", gapMs, time.Now().UnixNano()))
	if err := c.CreateSilence(ctx, silencePath, gapMs); err != nil {
		return err
	}
	defer os.Remove(silencePath)

	interleaved := make([]string, 0, len(audioPaths)*2-1)
	for i, p := range audioPaths {
		if i > 0 {
			interleaved = append(interleaved, silencePath)
		}
		interleaved = append(interleaved, p)
	}

	return c.ConcatAudio(ctx, interleaved, outputPath)
}
