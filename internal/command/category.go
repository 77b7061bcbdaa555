package command

type Category int

const (
	CategoryUncategorized Category = iota
	CategoryShell                  // session control: exit, history, version
	CategoryNavigation             // cd, pwd, group
	CategoryVariables              // set, unset, pref
	CategoryAliases                // alias, unalias
	CategoryScripting              // echo, source
	CategoryHelp                   // help, stats
)

func (c Category) String() string {
	switch c {
	case CategoryShell:
		return "session"
	case CategoryNavigation:
		return "navigate"
	case CategoryVariables:
		return "variables and preferences"
	case CategoryAliases:
		return "aliases"
	case CategoryScripting:
		return "scripting"
	case CategoryHelp:
		return "help and diagnostics"
	default:
		return "other commands"
	}
}

var categoryOrder = []Category{
	CategoryShell,
	CategoryNavigation,
	CategoryVariables,
	CategoryAliases,
	CategoryScripting,
	CategoryHelp,
	CategoryUncategorized,
}

// CategoryOrder returns the display order for categories.
func CategoryOrder() []Category {
	return categoryOrder
}

// ParseCategory maps a category name used in manifests to a Category.
func ParseCategory(s string) Category {
	for _, c := range categoryOrder {
		if c.String() == s {
			return c
		}
	}
	switch s {
	case "shell":
		return CategoryShell
	case "navigation":
		return CategoryNavigation
	case "variables":
		return CategoryVariables
	case "help":
		return CategoryHelp
	}
	return CategoryUncategorized
}
