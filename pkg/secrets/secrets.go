// Package secrets resolves template variables from the environment or
// an external vault CLI. Values are fetched fresh per run and never
// persisted.
package secrets

import (
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/arthur-debert/dotkit/pkg/logging"
	"github.com/rs/zerolog"
)

// Resolver resolves a variable name to its value. A lookup failure is
// reported as SECRET_NOT_FOUND; a resolver that cannot be reached at
// all reports EXTERNAL_UNAVAILABLE.
type Resolver interface {
	Resolve(name string) (string, error)
}

// EnvResolver resolves variables from process environment variables
type EnvResolver struct{}

// Resolve implements Resolver
func (EnvResolver) Resolve(name string) (string, error) {
	if value, ok := os.LookupEnv(name); ok {
		return value, nil
	}
	return "", errors.Newf(errors.ErrSecretNotFound,
		"environment variable %s is not set", name)
}

// VaultResolver resolves variables by invoking an external vault CLI
// once per variable. The command template's {name} placeholder is
// replaced with the variable name.
type VaultResolver struct {
	// Command is the invocation template, e.g.
	// ["op", "read", "op://Personal/{name}/password"]
	Command []string

	// Attempts is how often a failed invocation is retried before the
	// lookup fails; transient vault outages should not surface as
	// missing secrets on the first blip.
	Attempts int

	// backoff between attempts; overridable in tests
	Backoff time.Duration

	logger zerolog.Logger
}

// NewVaultResolver creates a VaultResolver
func NewVaultResolver(command []string, attempts int) *VaultResolver {
	if attempts <= 0 {
		attempts = 1
	}
	return &VaultResolver{
		Command:  command,
		Attempts: attempts,
		Backoff:  500 * time.Millisecond,
		logger:   logging.GetLogger("secrets.vault"),
	}
}

// Resolve implements Resolver
func (v *VaultResolver) Resolve(name string) (string, error) {
	if len(v.Command) == 0 {
		return "", errors.New(errors.ErrExternalUnavailable,
			"no vault command configured")
	}

	args := make([]string, len(v.Command))
	for idx, arg := range v.Command {
		args[idx] = strings.ReplaceAll(arg, "{name}", name)
	}

	if _, err := exec.LookPath(args[0]); err != nil {
		return "", errors.Wrapf(err, errors.ErrExternalUnavailable,
			"vault command %s not found", args[0])
	}

	var lastErr error
	for attempt := 1; attempt <= v.Attempts; attempt++ {
		output, err := exec.Command(args[0], args[1:]...).Output()
		if err == nil {
			return strings.TrimRight(string(output), "\n"), nil
		}
		lastErr = err

		v.logger.Debug().
			Err(err).
			Str("variable", name).
			Int("attempt", attempt).
			Msg("Vault lookup failed")

		if attempt < v.Attempts {
			time.Sleep(v.Backoff)
		}
	}

	return "", errors.Wrapf(lastErr, errors.ErrSecretNotFound,
		"vault lookup for %s failed after %d attempts", name, v.Attempts)
}

// ChainResolver tries each resolver in order, returning the first
// resolved value. Unavailable resolvers are skipped; the last error
// is returned when nothing resolves.
type ChainResolver struct {
	Resolvers []Resolver
}

// NewChainResolver creates a ChainResolver
func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{Resolvers: resolvers}
}

// Resolve implements Resolver
func (c *ChainResolver) Resolve(name string) (string, error) {
	if len(c.Resolvers) == 0 {
		return "", errors.New(errors.ErrExternalUnavailable, "no resolvers configured")
	}

	var lastErr error
	for _, r := range c.Resolvers {
		value, err := r.Resolve(name)
		if err == nil {
			return value, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// MapResolver resolves from a fixed map; used in tests
type MapResolver map[string]string

// Resolve implements Resolver
func (m MapResolver) Resolve(name string) (string, error) {
	if value, ok := m[name]; ok {
		return value, nil
	}
	return "", errors.Newf(errors.ErrSecretNotFound, "no value for %s", name)
}
