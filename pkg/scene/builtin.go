package scene

import "sort"

// builtinScenes maps scene IDs to their constructors
var builtinScenes = map[string]func() *Config{
	"default":     NewDefaultScene,
	"shadows":     NewShadowsScene,
	"sphere-grid": NewSphereGridScene,
}

// BuiltinNames returns the sorted IDs of the built-in scenes
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a fresh copy of the named built-in scene
func Builtin(name string) (*Config, bool) {
	ctor, ok := builtinScenes[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}
