package conf

import (
	"fmt"

	"github.com/spf13/viper"

	chattypes "github.com/hellodash/dashboard-backend/internal/chat/types"
	movietypes "github.com/hellodash/dashboard-backend/internal/movies/types"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	TMDB     movietypes.Config `mapstructure:"tmdb"`
	OpenAI   chattypes.Config  `mapstructure:"openai"`
	Explorer ExplorerConfig
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

type ExplorerConfig struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	// API keys come from the environment when the file leaves them blank.
	viper.MustBindEnv("tmdb.api_key", "TMDB_API_KEY")
	viper.MustBindEnv("openai.api_key", "OPENAI_API_KEY")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("log.output", "console")

	viper.SetDefault("tmdb.api_host", "https://api.themoviedb.org/3")
	viper.SetDefault("tmdb.poster_size", "w500")
	viper.SetDefault("tmdb.timeout", 10)

	viper.SetDefault("openai.api_host", "https://api.openai.com/v1")
	viper.SetDefault("openai.default_model", "gpt-3.5-turbo")
	viper.SetDefault("openai.temperature", 0.7)
	viper.SetDefault("openai.timeout", 30)

	viper.SetDefault("explorer.max_upload_bytes", 10<<20)
}
