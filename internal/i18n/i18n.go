// Package i18n localizes challenge prompts and shape names.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLanguage is used when a request carries no usable language.
const DefaultLanguage = "en"

// promptKey is the catalog key of the challenge prompt template. Its value
// must contain one %s placeholder for the shape name.
const promptKey = "prompt_click_shape"

// Catalog holds per-language key/value message tables.
type Catalog struct {
	languages map[string]map[string]string
	fallback  string
}

// Load parses the embedded locale files.
func Load() (*Catalog, error) {
	c := &Catalog{
		languages: make(map[string]map[string]string),
		fallback:  DefaultLanguage,
	}

	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		lang := strings.TrimSuffix(name, path.Ext(name))
		data, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("i18n: read locale %s: %w", name, err)
		}
		table := make(map[string]string)
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("i18n: parse locale %s: %w", name, err)
		}
		c.languages[lang] = table
	}
	return c, nil
}

// Languages returns the loaded language codes.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.languages))
	for lang := range c.languages {
		out = append(out, lang)
	}
	return out
}

// Translate looks the key up in the requested language, then in the
// fallback language. An untranslated key degrades to the key itself with
// underscores replaced by spaces, so new shape families always produce a
// readable prompt.
func (c *Catalog) Translate(lang, key string) string {
	if table, ok := c.languages[lang]; ok {
		if text, ok := table[key]; ok {
			return text
		}
	}
	if table, ok := c.languages[c.fallback]; ok {
		if text, ok := table[key]; ok {
			return text
		}
	}
	return strings.ReplaceAll(key, "_", " ")
}

// Prompt renders the localized click prompt for a shape type.
func (c *Catalog) Prompt(lang, typeName string) string {
	template := c.Translate(lang, promptKey)
	if !strings.Contains(template, "%s") {
		template = "%s"
	}
	return fmt.Sprintf(template, c.Translate(lang, typeName))
}
