package config

import (
	"strings"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/errs"
)

func set(args *cli.Bound, deps Deps) (any, error) {
	key := args.String("key", "")
	if key == "" {
		return nil, errs.MissingArgument("key")
	}
	value := strings.Join(args.Strings("value"), " ")

	if err := deps.Set(key, value); err != nil {
		return nil, err
	}

	_, _ = deps.Printf("%s=%s\n", key, value)
	return value, nil
}
