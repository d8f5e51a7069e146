package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docmeta/internal/config"
	derrors "git.home.luguber.info/inful/docmeta/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path, _ := root.ConfigPath()
	return RunInit(g, path, i.Force)
}

func RunInit(g *Global, configPath string, force bool) error {
	if err := config.Init(configPath, force); err != nil {
		return derrors.ConfigError("initialization failed").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	_, _ = fmt.Fprintf(g.Out, "Wrote configuration to %s\n", configPath)
	return nil
}
