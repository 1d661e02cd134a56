package types

// Config holds the TMDB client settings.
type Config struct {
	// APIHost is the API base URL, e.g. https://api.themoviedb.org/3.
	APIHost string `mapstructure:"api_host"`

	// APIKey authenticates via the api_key query parameter. May be empty;
	// every operation then short-circuits without network I/O.
	APIKey string `mapstructure:"api_key"`

	// PosterSize selects the image rendition (w92..w780, original).
	PosterSize string `mapstructure:"poster_size"`

	// Timeout in seconds for every request. Defaults to 10.
	Timeout int `mapstructure:"timeout"`
}

// Validate checks the settings a client cannot default.
func (c *Config) Validate() error {
	if c.APIHost == "" {
		return ErrInvalidAPIHost
	}
	return nil
}
