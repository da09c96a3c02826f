package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"revcast/internal/config"
	"revcast/internal/pkg/id"
)

// Client calls a volcengine openspeech style TTS API. Each call picks
// the voice for one dialogue speaker; the voice map lives in config.
type Client struct {
	apiURL      string
	accessToken string
	appID       string
	cluster     string
	sampleRate  int
	speedRatio  float64
	httpClient  *http.Client
}

// NewClient creates a TTS client.
func NewClient(cfg *config.TTSConfig) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("TTS access token is required")
	}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = "https://openspeech.bytedance.com/api/v1/tts"
	}

	cluster := cfg.Cluster
	if cluster == "" {
		cluster = "volcano_tts"
	}

	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = 44100
	}

	speedRatio := cfg.SpeedRatio
	if speedRatio == 0 {
		speedRatio = 1.0
	}

	return &Client{
		apiURL:      apiURL,
		accessToken: cfg.AccessToken,
		appID:       cfg.AppID,
		cluster:     cluster,
		sampleRate:  sampleRate,
		speedRatio:  speedRatio,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Result is one synthesis result.
type Result struct {
	Success      bool    `json:"success"`
	AudioData    []byte  `json:"-"`
	Duration     float64 `json:"duration"` // seconds
	ErrorMessage string  `json:"error_message"`
}

// Synthesize converts one text segment to audio with the given voice.
func (c *Client) Synthesize(ctx context.Context, text, voiceType string) (*Result, error) {
	result := &Result{Success: false}

	requestID := id.New()
	reqBody, err := json.Marshal(c.buildRequestConfig(text, voiceType, requestID))
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to marshal request: %v", err)
		return result, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to create request: %v", err)
		return result, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer; %s", c.accessToken))
	req.Header.Set("Content-Type", "application/json")

	log.Debug().
		Str("request_id", requestID).
		Str("voice_type", voiceType).
		Int("text_len", len(text)).
		Msg("sending TTS request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to send request: %v", err)
		return result, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to read response: %v", err)
		return result, err
	}

	if resp.StatusCode != http.StatusOK {
		result.ErrorMessage = fmt.Sprintf("API request failed, status: %d, body: %s", resp.StatusCode, string(respBody))
		return result, fmt.Errorf("API request failed: status %d", resp.StatusCode)
	}

	var apiResp map[string]interface{}
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		fixedBody := fixJSON(string(respBody))
		if err := json.Unmarshal([]byte(fixedBody), &apiResp); err != nil {
			result.ErrorMessage = fmt.Sprintf("failed to parse JSON response: %v", err)
			return result, err
		}
	}

	code, _ := apiResp["code"].(float64)
	if code != 3000 {
		message, _ := apiResp["message"].(string)
		if message == "" {
			message = "unknown error"
		}
		result.ErrorMessage = fmt.Sprintf("API response error: %s (code: %.0f)", message, code)
		return result, fmt.Errorf("API response error: %s", message)
	}

	audioDataBase64, ok := apiResp["data"].(string)
	if !ok {
		result.ErrorMessage = "audio data not found in response"
		return result, fmt.Errorf("audio data not found")
	}

	audioData, err := base64.StdEncoding.DecodeString(audioDataBase64)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to decode audio data: %v", err)
		return result, err
	}

	result.Success = true
	result.AudioData = audioData
	result.Duration = parseDuration(apiResp)
	return result, nil
}

// buildRequestConfig builds the openspeech request payload.
func (c *Client) buildRequestConfig(text, voiceType, requestID string) map[string]interface{} {
	appConfig := map[string]interface{}{
		"token":   c.accessToken,
		"cluster": c.cluster,
	}
	if c.appID != "" {
		appConfig["appid"] = c.appID
	}

	audioConfig := map[string]interface{}{
		"voice_type":       voiceType,
		"encoding":         "mp3",
		"compression_rate": 1,
		"rate":             c.sampleRate,
		"speed_ratio":      c.speedRatio,
		"volume_ratio":     1.0,
		"pitch_ratio":      1.0,
	}

	requestConfig := map[string]interface{}{
		"reqid":            requestID,
		"text":             text,
		"text_type":        "plain",
		"operation":        "query",
		"silence_duration": "125",
		"pure_english_opt": "1",
	}

	return map[string]interface{}{
		"app":     appConfig,
		"user":    map[string]interface{}{"uid": requestID},
		"audio":   audioConfig,
		"request": requestConfig,
	}
}

// parseDuration reads the measured duration from the addition field.
// The API reports milliseconds, as either a string or a number.
func parseDuration(apiResp map[string]interface{}) float64 {
	addition, ok := apiResp["addition"].(map[string]interface{})
	if !ok {
		return 0
	}
	if durationStr, ok := addition["duration"].(string); ok {
		if parsed, err := strconv.ParseFloat(durationStr, 64); err == nil {
			return parsed / 1000.0
		}
	}
	if durationNum, ok := addition["duration"].(float64); ok {
		return durationNum / 1000.0
	}
	return 0
}

// fixJSON patches missing commas the API occasionally emits between
// adjacent objects.
func fixJSON(jsonStr string) string {
	fixed := strings.ReplaceAll(jsonStr, "}{", "},{")
	fixed = strings.ReplaceAll(fixed, "\"}{\"", "\"},{\"")
	return fixed
}
