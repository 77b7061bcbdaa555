package pref

import (
	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/errs"
)

func get(args *cli.Bound, deps Deps) (any, error) {
	key := args.String("key", "")
	if key == "" {
		return nil, errs.MissingArgument("key")
	}

	value, found, err := deps.Get(key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.InvalidValue("key", key, errNotSet)
	}

	_, _ = deps.Printf("%s\n", value)
	return value, nil
}
