package pref

import (
	"sort"

	"github.com/footprint-tools/gshell/internal/cli"
)

func list(_ *cli.Bound, deps Deps) (any, error) {
	prefs, err := deps.List()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(prefs))
	for key := range prefs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		_, _ = deps.Printf("%s=%s\n", key, prefs[key])
	}
	return len(keys), nil
}
