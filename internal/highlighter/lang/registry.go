package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/weave/internal/logger"
)

var registry = struct {
	sync.RWMutex
	languages     []*Language
	extToLanguage map[string]*Language
}{extToLanguage: make(map[string]*Language)}

// Register adds a language; a later registration wins an extension.
func Register(lang *Language) {
	registry.Lock()
	defer registry.Unlock()

	registry.languages = append(registry.languages, lang)
	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[lowerExt]; ok && existing != lang {
			logger.Warnf("Extension %s already registered to %s, overriding with %s", lowerExt, existing.Name, lang.Name)
		}
		registry.extToLanguage[lowerExt] = lang
	}
	logger.DebugTagf("highlight", "Registered language: %s with extensions: %v", lang.Name, lang.Extensions)
}

// GetForFile returns the language of filePath by extension, or nil.
func GetForFile(filePath string) *Language {
	registry.RLock()
	defer registry.RUnlock()
	return registry.extToLanguage[strings.ToLower(filepath.Ext(filePath))]
}

// GetAll returns all registered languages.
func GetAll() []*Language {
	registry.RLock()
	defer registry.RUnlock()
	return append([]*Language(nil), registry.languages...)
}
