package config

import (
	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/errs"
)

func unset(args *cli.Bound, deps Deps) (any, error) {
	key := args.String("key", "")
	if key == "" {
		return nil, errs.MissingArgument("key")
	}
	if !domain.IsValidConfigKey(key) {
		return nil, errs.InvalidValue("key", key, errUnknownKey)
	}

	if err := deps.Unset(key); err != nil {
		return nil, err
	}

	_, _ = deps.Printf("unset %s\n", key)
	return nil, nil
}
