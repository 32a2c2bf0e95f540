package apiclient

import (
	"fmt"
	"maps"
	"net/url"
	"strings"
	"time"

	"github.com/roomwaves/roomwaves/internal/model"
)

// Config is the process-wide transport configuration. A Client keeps its
// own copy, so later changes to the value passed in have no effect.
type Config struct {
	BaseURL   string
	Headers   map[string]string
	Timeout   time.Duration // per request; 0 disables
	UserAgent string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		BaseURL:   model.DefaultAPIURL,
		Timeout:   model.DefaultAPITimeout,
		UserAgent: "roomwaves",
	}
}

func (c Config) clone() Config {
	c.Headers = maps.Clone(c.Headers)
	return c
}

func (c Config) parseBaseURL() (*url.URL, error) {
	raw := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if raw == "" {
		return nil, fmt.Errorf("apiclient: base url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: base url %q must be http or https", c.BaseURL)
	}
	return u, nil
}
