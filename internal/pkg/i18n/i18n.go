// Package i18n holds the user-facing message catalogs, one per locale.
package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	messagesFile   = "messages.yaml"
	fallbackLocale = "en"
)

type Translations map[string]string

type catalogFile struct {
	Messages Translations `yaml:"MESSAGES"`
}

var (
	mu       sync.RWMutex
	catalogs = map[string]Translations{}
)

// LoadTranslations reads <root>/<locale>/messages.yaml for every locale directory.
// Directories without a messages file are skipped.
func LoadTranslations(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	loaded := make(map[string]Translations, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		file := filepath.Join(root, entry.Name(), messagesFile)
		msgs, err := readCatalog(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		loaded[entry.Name()] = msgs
	}

	mu.Lock()
	defer mu.Unlock()
	for locale, msgs := range loaded {
		catalogs[locale] = msgs
	}
	return nil
}

func readCatalog(file string) (Translations, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return cf.Messages, nil
}

// Register installs a catalog directly, replacing any loaded one.
func Register(locale string, messages Translations) {
	mu.Lock()
	defer mu.Unlock()
	catalogs[locale] = messages
}

// Translate looks key up in locale, then in English. Unknown keys come back unchanged.
func Translate(locale, key string) string {
	mu.RLock()
	defer mu.RUnlock()

	for _, l := range [...]string{locale, fallbackLocale} {
		if msg, ok := catalogs[l][key]; ok {
			return msg
		}
	}
	return key
}

func Translatef(locale, key string, args ...any) string {
	return fmt.Sprintf(Translate(locale, key), args...)
}
