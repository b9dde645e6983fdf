package config

import (
	"github.com/urfave/cli/v3"

	ctrl "github.com/m-mizutani/kforge/pkg/controller/http"
)

// Server holds server configuration
type Server struct {
	Addr        string
	MaxBodySize int64
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("KFORGE_ADDR"),
		},
		&cli.Int64Flag{
			Name:        "max-body-size",
			Usage:       "Maximum request body size in bytes",
			Value:       ctrl.DefaultMaxBodySize,
			Destination: &c.MaxBodySize,
			Sources:     cli.EnvVars("KFORGE_MAX_BODY_SIZE"),
		},
	}
}
