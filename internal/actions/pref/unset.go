package pref

import (
	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/errs"
)

func unset(args *cli.Bound, deps Deps) (any, error) {
	if args.Bool("all") {
		if args.Has("key") {
			return nil, errs.ExtraArgument(args.String("key", ""))
		}

		prefs, err := deps.List()
		if err != nil {
			return nil, err
		}
		for key := range prefs {
			if err := deps.Delete(key); err != nil {
				return nil, err
			}
		}

		_, _ = deps.Printf("all preferences removed\n")
		return len(prefs), nil
	}

	key := args.String("key", "")
	if key == "" {
		return nil, errs.MissingArgument("key")
	}

	_, found, err := deps.Get(key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.InvalidValue("key", key, errNotSet)
	}

	if err := deps.Delete(key); err != nil {
		return nil, err
	}

	_, _ = deps.Printf("unset %s\n", key)
	return nil, nil
}
