package config

import (
	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/domain"
)

func list(args *cli.Bound, deps Deps) (any, error) {
	values, err := deps.GetAll()
	if err != nil {
		return nil, err
	}

	all := args.Bool("all")
	shown := 0
	// Only show visible (non-hidden) keys
	for _, key := range domain.VisibleConfigKeys() {
		value, exists := values[key.Name]
		if !exists || (value == "" && key.HideIfEmpty && !all) {
			continue
		}
		_, _ = deps.Printf("%s=%s\n", key.Name, value)
		shown++
	}
	return shown, nil
}
