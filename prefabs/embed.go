package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var PrefabsFS embed.FS

// DiskDir is checked before the embedded copies so edited prefabs take effect
// without a rebuild.
var DiskDir = "prefabs"

// Load returns a prefab file, preferring the copy under DiskDir.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript returns a tengo script from the scripts directory.
func LoadScript(name string) ([]byte, error) {
	return Load(path.Join("scripts", strings.TrimPrefix(cleanPrefabPath(name), "scripts/")))
}

func cleanPrefabPath(p string) string {
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, DiskDir+"/"); ok {
		return after
	}
	return strings.TrimPrefix(s, "prefabs/")
}
