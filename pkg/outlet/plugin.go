package outlet

import (
	"sort"

	"github.com/rs/zerolog"
)

var plugins = make(map[string]Plugin)

type Plugin interface {
	// Name returns the name of the plugin
	Name() string

	// Init initializes the plugin. Plugins register their routes, commands
	// and background tasks here.
	Init(*Bot, *zerolog.Logger) error
}

// Register adds a plugin to the global registry, for plugins that register
// themselves from init(). Plugins passed to WithPlugins don't need it.
func Register(plug Plugin) {
	name := plug.Name()
	if _, ok := plugins[name]; ok {
		panic("plugin already registered: " + name)
	}

	plugins[name] = plug
}

// registered returns the globally registered plugins, ordered by name.
func registered() []Plugin {
	out := make([]Plugin, 0, len(plugins))
	for _, p := range plugins {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })

	return out
}
