package config

import (
	"errors"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/errs"
)

var errUnknownKey = errors.New("not a configuration key")

func get(args *cli.Bound, deps Deps) (any, error) {
	key := args.String("key", "")
	if key == "" {
		return nil, errs.MissingArgument("key")
	}

	value, found := deps.Get(key)
	if !found {
		return nil, errs.InvalidValue("key", key, errUnknownKey)
	}

	_, _ = deps.Println(value)
	return value, nil
}
