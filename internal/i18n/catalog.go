package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// Translator resolves a message id for a locale
type Translator interface {
	Translate(locale, msgid string) string
}

// Catalog is a Translator backed by an x/text message catalog
type Catalog struct {
	builder  *catalog.Builder
	fallback language.Tag
	tags     []language.Tag
	matcher  language.Matcher
	known    map[language.Tag]map[string]struct{}
	printers map[language.Tag]*message.Printer
	mu       sync.RWMutex
}

// NewCatalog creates an empty catalog with the given default locale
func NewCatalog(defaultLocale string) (*Catalog, error) {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}

	return &Catalog{
		builder:  catalog.NewBuilder(catalog.Fallback(fallback)),
		fallback: fallback,
		tags:     []language.Tag{fallback},
		matcher:  language.NewMatcher([]language.Tag{fallback}),
		known:    make(map[language.Tag]map[string]struct{}),
		printers: make(map[language.Tag]*message.Printer),
	}, nil
}

// LoadDir creates a catalog from every *.yaml / *.yml file in dir. A missing
// directory yields an empty catalog.
func LoadDir(dir, defaultLocale string) (*Catalog, error) {
	c, err := NewCatalog(defaultLocale)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read locales dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		locale := strings.TrimSuffix(entry.Name(), ext)
		if err := c.loadFile(locale, filepath.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Catalog) loadFile(locale, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	messages := make(map[string]string)
	if err := yaml.Unmarshal(raw, &messages); err != nil {
		return fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	return c.Add(locale, messages)
}

// Add registers translations for locale
func (c *Catalog) Add(locale string, messages map[string]string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	known, ok := c.known[tag]
	if !ok {
		known = make(map[string]struct{}, len(messages))
		c.known[tag] = known
	}
	for msgid, text := range messages {
		// Translations are literal text, not format strings.
		if err := c.builder.SetString(tag, msgid, strings.ReplaceAll(text, "%", "%%")); err != nil {
			return fmt.Errorf("locale %s: failed to set %q: %w", locale, msgid, err)
		}
		known[msgid] = struct{}{}
	}

	if !c.hasTag(tag) {
		c.tags = append(c.tags, tag)
		c.matcher = language.NewMatcher(c.tags)
	}
	// Printers snapshot catalog state, drop them after a change.
	c.printers = make(map[language.Tag]*message.Printer)

	return nil
}

// Translate returns the catalog text of msgid for locale verbatim. A message
// missing from both the matched locale and the default locale comes back unchanged.
func (c *Catalog) Translate(locale, msgid string) string {
	c.mu.RLock()
	tag := c.match(locale)
	_, inLocale := c.known[tag][msgid]
	_, inFallback := c.known[c.fallback][msgid]
	c.mu.RUnlock()
	if !inLocale && !inFallback {
		return msgid
	}
	if !inLocale {
		tag = c.fallback
	}

	return c.printer(tag).Sprintf(msgid)
}

// Locales returns the loaded language tags, default first
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.tags))
	for i, tag := range c.tags {
		out[i] = tag.String()
	}
	return out
}

func (c *Catalog) printer(tag language.Tag) *message.Printer {
	c.mu.RLock()
	p, ok := c.printers[tag]
	c.mu.RUnlock()
	if ok {
		return p
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.printers[tag]; ok {
		return p
	}
	p = message.NewPrinter(tag, message.Catalog(c.builder))
	c.printers[tag] = p
	return p
}

// match must be called with c.mu held
func (c *Catalog) match(locale string) language.Tag {
	if locale == "" {
		return c.fallback
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return c.fallback
	}
	_, idx, confidence := c.matcher.Match(requested)
	if confidence == language.No {
		return c.fallback
	}
	return c.tags[idx]
}

func (c *Catalog) hasTag(tag language.Tag) bool {
	for _, t := range c.tags {
		if t == tag {
			return true
		}
	}
	return false
}
