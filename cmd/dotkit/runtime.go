package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotkit/pkg/config"
	"github.com/arthur-debert/dotkit/pkg/filesystem"
	"github.com/arthur-debert/dotkit/pkg/packs"
	"github.com/arthur-debert/dotkit/pkg/paths"
	"github.com/arthur-debert/dotkit/pkg/secrets"
	"github.com/arthur-debert/dotkit/pkg/style"
	"github.com/arthur-debert/dotkit/pkg/types"
	"github.com/rs/zerolog/log"
)

// runtime bundles the dependencies every command needs
type runtime struct {
	fs       types.FS
	paths    paths.Paths
	cfg      *config.Config
	renderer style.Renderer
}

// newRuntime resolves paths and loads configuration
func newRuntime() (*runtime, error) {
	p, err := paths.New(dotfilesRoot)
	if err != nil {
		return nil, err
	}

	if p.UsedFallback() {
		log.Warn().
			Str("root", p.DotfilesRoot()).
			Msg("DOTFILES_ROOT not set and no git root found, using current directory")
	}

	cfg, err := config.Load(p.RootConfigPath())
	if err != nil {
		return nil, err
	}

	return &runtime{
		fs:       filesystem.NewOS(),
		paths:    p,
		cfg:      cfg,
		renderer: newRenderer(),
	}, nil
}

// newRenderer picks a renderer from terminal capabilities
func newRenderer() style.Renderer {
	return style.NewRenderer(style.DetectFormat(os.Stdout))
}

// discover loads the selected packages (all when names is empty)
func (rt *runtime) discover(names []string) ([]types.Package, error) {
	return packs.Discover(rt.fs, rt.paths, rt.cfg, names)
}

// resolver builds the variable resolution chain: environment first,
// then the configured vault CLI
func (rt *runtime) resolver() secrets.Resolver {
	chain := []secrets.Resolver{secrets.EnvResolver{}}
	if len(rt.cfg.Secrets.Command) > 0 {
		chain = append(chain, secrets.NewVaultResolver(rt.cfg.Secrets.Command, rt.cfg.Secrets.Attempts))
	}
	return secrets.NewChainResolver(chain...)
}

// print writes user-facing output unless --quiet is set
func (rt *runtime) print(s string) {
	if !quiet && s != "" {
		fmt.Println(s)
	}
}
