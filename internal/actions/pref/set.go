package pref

import (
	"errors"
	"strings"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/errs"
)

var errNotSet = errors.New("preference is not set")

func set(args *cli.Bound, deps Deps) (any, error) {
	key := args.String("key", "")
	if key == "" {
		return nil, errs.MissingArgument("key")
	}
	value := strings.Join(args.Strings("value"), " ")

	_, existed, err := deps.Get(key)
	if err != nil {
		return nil, err
	}

	if err := deps.Put(key, value); err != nil {
		return nil, err
	}

	action := "added"
	if existed {
		action = "updated"
	}
	_, _ = deps.Printf("%s %s=%s\n", action, key, value)
	return value, nil
}
