package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/taskmanager/internal/api"
	"github.com/teemow/taskmanager/internal/logging"
)

// Supported MCP transports.
const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"
)

// serveConfig holds the settings of the REST API server.
type serveConfig struct {
	Host           string
	Port           int
	Debug          bool
	LogFormat      string
	MetricsEnabled bool
	MetricsAddr    string
}

// Addr returns the listen address.
func (c serveConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate rejects configuration that would fail once listeners open.
func (c serveConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if err := logging.ValidateFormat(c.LogFormat); err != nil {
		return err
	}
	if c.MetricsEnabled && c.MetricsAddr == "" {
		return fmt.Errorf("metrics address must not be empty when metrics are enabled")
	}
	return nil
}

// mcpConfig holds the settings of the MCP tool server.
type mcpConfig struct {
	Transport  string
	HTTPAddr   string
	APIURL     string
	APITimeout time.Duration
	Local      bool
	StrictArgs bool
	Debug      bool
	LogFormat  string
}

// Validate rejects configuration that would fail once the server starts.
func (c mcpConfig) Validate() error {
	switch c.Transport {
	case transportStdio, transportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: %s, %s)", c.Transport, transportStdio, transportStreamableHTTP)
	}
	if err := logging.ValidateFormat(c.LogFormat); err != nil {
		return err
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("invalid api timeout %s: must be positive", c.APITimeout)
	}
	if !c.Local {
		if _, err := api.ParseBaseURL(c.APIURL); err != nil {
			return fmt.Errorf("invalid api url: %w", err)
		}
	}
	return nil
}

// The env helpers below only apply a variable when the matching flag was not
// set explicitly. Unparseable values are reported as errors.

func envString(cmd *cobra.Command, flag, env string, target *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v := os.Getenv(env); v != "" {
		*target = v
	}
}

func envBool(cmd *cobra.Command, flag, env string, target *bool) error {
	if cmd.Flags().Changed(flag) {
		return nil
	}
	v := os.Getenv(env)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", env, v, err)
	}
	*target = b
	return nil
}

func envInt(cmd *cobra.Command, flag, env string, target *int) error {
	if cmd.Flags().Changed(flag) {
		return nil
	}
	v := os.Getenv(env)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", env, v, err)
	}
	*target = n
	return nil
}

func envDuration(cmd *cobra.Command, flag, env string, target *time.Duration) error {
	if cmd.Flags().Changed(flag) {
		return nil
	}
	v := os.Getenv(env)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", env, v, err)
	}
	*target = d
	return nil
}
