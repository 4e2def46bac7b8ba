package registry

import (
	"embed"
	"io/fs"
)

//go:embed presets/*.yaml
var embeddedPresets embed.FS

// PresetsFS returns the bundled schema presets.
func PresetsFS() fs.FS {
	sub, err := fs.Sub(embeddedPresets, "presets")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
