package config

import (
	"errors"
	"time"
)

// Config is the application configuration root.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	AI       AIConfig       `mapstructure:"ai"`
	Log      LogConfig      `mapstructure:"log"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	TTS      TTSConfig      `mapstructure:"tts"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig holds LLM provider settings.
type AIConfig struct {
	Provider string          `mapstructure:"provider"`
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig holds model parameters for first-pass generation.
// Repair calls pin temperature to 0 regardless of these settings.
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// LogConfig holds zerolog settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig holds MongoDB settings.
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig selects the audio artifact storage backend.
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
}

// LocalConfig configures filesystem storage.
type LocalConfig struct {
	BasePath      string `mapstructure:"base_path"`
	BaseURL       string `mapstructure:"base_url"`
	PresignExpiry int    `mapstructure:"presign_expiry"` // seconds
}

// OSSConfig configures Aliyun OSS storage.
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	PresignExpiry   int    `mapstructure:"presign_expiry"` // seconds
}

// TTSConfig holds text-to-speech API settings.
// Voices maps dialogue speaker names to provider voice types.
type TTSConfig struct {
	APIURL      string            `mapstructure:"api_url"`
	AccessToken string            `mapstructure:"access_token"`
	AppID       string            `mapstructure:"app_id"`
	Cluster     string            `mapstructure:"cluster"`
	Voices      map[string]string `mapstructure:"voices"`
	SampleRate  int               `mapstructure:"sample_rate"`
	SpeedRatio  float64           `mapstructure:"speed_ratio"`
}

// PipelineConfig holds content pipeline settings.
type PipelineConfig struct {
	Speaker1Name       string `mapstructure:"speaker1_name"`
	Speaker2Name       string `mapstructure:"speaker2_name"`
	Language           string `mapstructure:"language"`
	MaxRepairAttempts  int    `mapstructure:"max_repair_attempts"`
	EpisodeConcurrency int    `mapstructure:"episode_concurrency"` // in-flight generations per chapter
	SegmentGapMs       int    `mapstructure:"segment_gap_ms"`      // silence between dialogue segments
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if c.Pipeline.MaxRepairAttempts <= 0 {
		return errors.New("pipeline.max_repair_attempts must be positive")
	}
	if c.Pipeline.EpisodeConcurrency <= 0 {
		return errors.New("pipeline.episode_concurrency must be positive")
	}
	if c.Pipeline.SegmentGapMs < 200 || c.Pipeline.SegmentGapMs > 800 {
		return errors.New("pipeline.segment_gap_ms must be between 200 and 800")
	}

	return nil
}
