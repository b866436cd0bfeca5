package i18n

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var translations = make(map[string]map[string]string)

const DefaultLang = "en"

// LoadTranslations reads every <lang>.json catalog found in dir. Adding a
// language is a matter of dropping another file in. The English catalog is
// the fallback and must be present.
func LoadTranslations(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	haveDefault := false
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		var t map[string]string
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		lang := strings.TrimSuffix(name, ".json")
		translations[lang] = t
		if lang == DefaultLang {
			haveDefault = true
		}
	}

	if !haveDefault {
		return fmt.Errorf("no %s.json catalog in %s", DefaultLang, dir)
	}
	return nil
}

// T looks up a message key for a language, falling back to English and
// finally to the key itself.
func T(lang, key string) string {
	if t, ok := translations[lang]; ok {
		if val, ok := t[key]; ok {
			return val
		}
	}
	if lang != DefaultLang {
		return T(DefaultLang, key)
	}
	return key
}

// DetectLanguage picks the first language from the Accept-Language header
// that has a loaded translation.
func DetectLanguage(r *http.Request) string {
	accept := r.Header.Get("Accept-Language")
	if accept != "" {
		// Example: fr-CH, fr;q=0.9, en;q=0.8, de;q=0.7, *;q=0.5
		for _, part := range strings.Split(accept, ",") {
			lang := strings.TrimSpace(strings.Split(part, ";")[0])
			if len(lang) >= 2 {
				lang = lang[:2] // e.g., "en-US" -> "en"
				if _, ok := translations[lang]; ok {
					return lang
				}
			}
		}
	}

	return DefaultLang
}
