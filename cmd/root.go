package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"revcast/internal/config"
	"revcast/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "revcast",
	Short: "Revcast - textbook chapters to audio revision episodes",
	Long: `Revcast turns textbook chapters into review-gated audio revision
episodes: concept extraction, episode planning, two-voice script and
question generation with automated repair, and audio synthesis.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.revcast")
	}

	viper.SetEnvPrefix("REVCAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")

	// AI
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.model", "gpt-4")
	viper.SetDefault("ai.options.temperature", 0.7)
	viper.SetDefault("ai.options.max_tokens", 4096)
	viper.SetDefault("ai.options.top_p", 1.0)

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")

	// MongoDB
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "revcast")
	viper.SetDefault("mongo.max_pool_size", 100)
	viper.SetDefault("mongo.min_pool_size", 10)

	// Redis
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	// Storage
	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local.base_path", "./data/audio")
	viper.SetDefault("storage.local.base_url", "http://localhost:8080/files")
	viper.SetDefault("storage.local.presign_expiry", 3600)

	// TTS
	viper.SetDefault("tts.api_url", "https://openspeech.bytedance.com/api/v1/tts")
	viper.SetDefault("tts.cluster", "volcano_tts")
	viper.SetDefault("tts.sample_rate", 24000)
	viper.SetDefault("tts.speed_ratio", 1.0)

	// Pipeline
	viper.SetDefault("pipeline.speaker1_name", "Maya")
	viper.SetDefault("pipeline.speaker2_name", "Rohan")
	viper.SetDefault("pipeline.language", "en")
	viper.SetDefault("pipeline.max_repair_attempts", 3)
	viper.SetDefault("pipeline.episode_concurrency", 3)
	viper.SetDefault("pipeline.segment_gap_ms", 300)
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
