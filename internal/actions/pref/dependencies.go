package pref

import (
	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/ui"
)

type Deps struct {
	Get    func(string) (string, bool, error)
	Put    func(string, string) error
	Delete func(string) error
	List   func() (map[string]string, error)
	Printf func(string, ...any) (int, error)
}

func DefaultDeps(store domain.PreferenceStore, out *ui.Writer) Deps {
	return Deps{
		Get:    store.GetPreference,
		Put:    store.PutPreference,
		Delete: store.DeletePreference,
		List:   store.ListPreferences,
		Printf: out.Printf,
	}
}
