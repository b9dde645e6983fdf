package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/kforge/pkg/infra/gemini"
)

// Gemini holds generative-language API configuration. Without an API key
// the service runs in degraded mode and only produces fallback suites.
type Gemini struct {
	Endpoint string
	Model    string
	APIKey   string `masq:"secret"`
	Timeout  time.Duration
}

// Configured reports whether LLM-backed generation is available
func (c *Gemini) Configured() bool {
	return c.APIKey != ""
}

// Flags returns CLI flags for Gemini configuration
func (c *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-endpoint",
			Usage:       "Generative language API base URL",
			Value:       gemini.DefaultEndpoint,
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("KFORGE_GEMINI_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model to use",
			Value:       "gemini-2.5-flash",
			Destination: &c.Model,
			Sources:     cli.EnvVars("KFORGE_GEMINI_MODEL"),
		},
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key (omit to run in fallback-only mode)",
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("KFORGE_GEMINI_API_KEY", "GEMINI_API_KEY"),
		},
		&cli.DurationFlag{
			Name:        "gemini-timeout",
			Usage:       "Timeout for generation requests",
			Value:       60 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("KFORGE_GEMINI_TIMEOUT"),
		},
	}
}
