package commands

import (
	"fmt"
	"time"

	"github.com/reybeld94/terminal-api/internal/app"
	"github.com/reybeld94/terminal-api/internal/config"
)

// RunIssueToken issues a bearer token for the given subject and prints it to
// stdout. A zero TTL uses the configured default.
func RunIssueToken(subject string, ttl time.Duration) error {
	if subject == "" {
		return fmt.Errorf("subject is required")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	container := app.NewContainer(cfg)

	token, err := container.TokenService().Issue(subject, ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Println(token)
	return nil
}
