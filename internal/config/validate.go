package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute URL, got %q", c.APIURL)
	}
	if c.Interval < 0 {
		return errors.New("interval must be > 0")
	}
	if c.RequestTimeout < 0 {
		return errors.New("request_timeout must be > 0")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Window.Width < 200 || c.Window.Height < 200 {
		return fmt.Errorf("window must be at least 200x200, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
