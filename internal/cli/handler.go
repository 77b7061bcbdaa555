package cli

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Handler converts the token bound to a parameter into a typed value.
type Handler interface {
	// Name is shown in usage text when a parameter has no value hint.
	Name() string

	// TakesValue reports whether an option consumes a value token.
	TakesValue() bool

	Convert(token string) (any, error)
}

// Collector is implemented by handlers that take every remaining positional
// token instead of a single one.
type Collector interface {
	Collect(tokens []string) (any, error)
}

// Built-in handlers.
var (
	String Handler = stringHandler{}
	Int    Handler = intHandler{}
	Bool   Handler = boolHandler{}
	File   Handler = fileHandler{}
	URI    Handler = uriHandler{}
	Rest   Handler = restHandler{}

	// Location takes a path, or a URI when the token has a scheme:// prefix.
	Location Handler = locationHandler{}

	// Stop marks an option after which every token is positional, even
	// tokens that look like flags.
	Stop Handler = stopHandler{}
)

type stringHandler struct{}

func (stringHandler) Name() string     { return "string" }
func (stringHandler) TakesValue() bool { return true }

func (stringHandler) Convert(token string) (any, error) {
	return token, nil
}

type intHandler struct{}

func (intHandler) Name() string     { return "int" }
func (intHandler) TakesValue() bool { return true }

func (intHandler) Convert(token string) (any, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return nil, errors.New("not an integer")
	}
	return n, nil
}

type boolHandler struct{}

func (boolHandler) Name() string     { return "bool" }
func (boolHandler) TakesValue() bool { return false }

func (boolHandler) Convert(token string) (any, error) {
	b, err := strconv.ParseBool(token)
	if err != nil {
		return nil, errors.New("not a boolean")
	}
	return b, nil
}

type fileHandler struct{}

func (fileHandler) Name() string     { return "path" }
func (fileHandler) TakesValue() bool { return true }

func (fileHandler) Convert(token string) (any, error) {
	if token == "" {
		return nil, errors.New("empty path")
	}
	if strings.ContainsRune(token, 0) {
		return nil, errors.New("path contains NUL")
	}
	return filepath.Clean(token), nil
}

type uriHandler struct{}

func (uriHandler) Name() string     { return "uri" }
func (uriHandler) TakesValue() bool { return true }

func (uriHandler) Convert(token string) (any, error) {
	u, err := url.Parse(token)
	if err != nil {
		return nil, errors.New("malformed URI")
	}
	if u.Scheme == "" {
		return nil, errors.New("URI has no scheme")
	}
	return u, nil
}

type locationHandler struct{}

func (locationHandler) Name() string     { return "location" }
func (locationHandler) TakesValue() bool { return true }

func (locationHandler) Convert(token string) (any, error) {
	if strings.Contains(token, "://") {
		return uriHandler{}.Convert(token)
	}
	return fileHandler{}.Convert(token)
}

type restHandler struct{}

func (restHandler) Name() string     { return "args" }
func (restHandler) TakesValue() bool { return true }

func (restHandler) Convert(token string) (any, error) {
	return []string{token}, nil
}

func (restHandler) Collect(tokens []string) (any, error) {
	return slices.Clone(tokens), nil
}

type stopHandler struct{}

func (stopHandler) Name() string     { return "" }
func (stopHandler) TakesValue() bool { return false }

func (stopHandler) Convert(string) (any, error) {
	return true, nil
}

type enumHandler struct {
	values []string
}

// Enum accepts exactly one of values.
func Enum(values ...string) Handler {
	return enumHandler{values: slices.Clone(values)}
}

func (h enumHandler) Name() string     { return strings.Join(h.values, "|") }
func (h enumHandler) TakesValue() bool { return true }

func (h enumHandler) Convert(token string) (any, error) {
	if slices.Contains(h.values, token) {
		return token, nil
	}
	return nil, fmt.Errorf("expected one of %s", strings.Join(h.values, ", "))
}

func isStop(h Handler) bool {
	_, ok := h.(stopHandler)
	return ok
}
