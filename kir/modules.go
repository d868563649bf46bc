// kir/modules.go
package kir

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultCacheDir is where compiled module documents are persisted, relative
// to the working directory, unless KRYON_CACHE_DIR overrides it.
const DefaultCacheDir = ".kryon_cache"

// ModuleCache memoizes the component definitions exported by other KIR
// documents. Loading happens once per module id; the cache is append-only
// for the life of the process.
type ModuleCache struct {
	dir string

	mu      sync.Mutex
	modules map[string][]Definition
	failed  map[string]error
}

// NewModuleCache returns a cache rooted at dir; an empty dir falls back to
// KRYON_CACHE_DIR, then DefaultCacheDir.
func NewModuleCache(dir string) *ModuleCache {
	if dir == "" {
		dir = os.Getenv("KRYON_CACHE_DIR")
	}
	if dir == "" {
		dir = DefaultCacheDir
	}
	return &ModuleCache{
		dir:     dir,
		modules: map[string][]Definition{},
		failed:  map[string]error{},
	}
}

// Register seeds the cache with a module's definitions without touching
// storage, for front ends that hold modules in memory and for tests.
func (mc *ModuleCache) Register(moduleID string, defs []Definition) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.modules[moduleID] = defs
}

// Lookup resolves one export of a module, loading and memoizing the module's
// document on first use. An empty exportName matches a definition named like
// the module or the module's only definition.
func (mc *ModuleCache) Lookup(moduleID, exportName string) (*Definition, error) {
	defs, err := mc.load(moduleID)
	if err != nil {
		return nil, err
	}
	if exportName == "" {
		if len(defs) == 1 {
			return &defs[0], nil
		}
		exportName = moduleID
	}
	for i := range defs {
		if defs[i].Name == exportName {
			return &defs[i], nil
		}
		// Scoped definition names take the form "moduleId/exportName".
		if defs[i].Name == moduleID+"/"+exportName {
			return &defs[i], nil
		}
	}
	return nil, fmt.Errorf("module %q has no export %q", moduleID, exportName)
}

func (mc *ModuleCache) load(moduleID string) ([]Definition, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if defs, ok := mc.modules[moduleID]; ok {
		return defs, nil
	}
	if err, ok := mc.failed[moduleID]; ok {
		return nil, err
	}

	path := filepath.Join(mc.dir, moduleID+".kir")
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("module %q not in cache: %w", moduleID, err)
		mc.failed[moduleID] = err
		return nil, err
	}

	var raw struct {
		Definitions []any `json:"component_definitions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		err = fmt.Errorf("module %q is malformed: %w", moduleID, err)
		mc.failed[moduleID] = err
		return nil, err
	}
	defs := parseDefinitions(raw.Definitions)
	mc.modules[moduleID] = defs
	return defs, nil
}
