package types

// Config holds the chat-completions client settings.
type Config struct {
	// APIHost is the API base URL, e.g. https://api.openai.com/v1.
	APIHost string `mapstructure:"api_host"`

	// APIKey authenticates via a bearer header. May be empty; every
	// operation then short-circuits without network I/O.
	APIKey string `mapstructure:"api_key"`

	// DefaultModel is used when a request leaves the model blank.
	DefaultModel string `mapstructure:"default_model"`

	// Temperature is the default sampling temperature.
	Temperature float64 `mapstructure:"temperature"`

	// Timeout in seconds for completion calls. Defaults to 30. Probe and
	// model-list calls always use the shorter probe timeout.
	Timeout int `mapstructure:"timeout"`
}

// Validate checks the settings a client cannot default.
func (c *Config) Validate() error {
	if c.APIHost == "" {
		return ErrInvalidAPIHost
	}
	return nil
}
