package config

import (
	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/ui"
)

type Deps struct {
	Get     func(string) (string, bool)
	GetAll  func() (map[string]string, error)
	Set     func(string, string) error
	Unset   func(string) error
	Printf  func(string, ...any) (int, error)
	Println func(...any) (int, error)
}

func DefaultDeps(provider domain.ConfigProvider, out *ui.Writer) Deps {
	return Deps{
		Get:     provider.Get,
		GetAll:  provider.GetAll,
		Set:     provider.Set,
		Unset:   provider.Unset,
		Printf:  out.Printf,
		Println: out.Println,
	}
}
