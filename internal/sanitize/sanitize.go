// Package sanitize strips block markup down to an allow-list of tags and
// attributes.
package sanitize

import (
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Config maps an allowed tag to its allowed attributes. A tag with no
// attributes is allowed bare; anything not listed is removed, keeping its
// text unless it is a script or style element.
type Config map[string][]string

// CopyConfig is the allow-list used for clipboard copies of selected blocks
var CopyConfig = Config{
	"p":   nil,
	"h1":  nil,
	"h2":  nil,
	"h3":  nil,
	"h4":  nil,
	"h5":  nil,
	"h6":  nil,
	"ol":  nil,
	"ul":  nil,
	"li":  nil,
	"br":  nil,
	"img": {"src", "width", "height"},
	"a":   {"href"},
	"b":   nil,
	"i":   nil,
	"u":   nil,
}

// key returns a stable identity for the config so policies can be cached
func (c Config) key() string {
	tags := make([]string, 0, len(c))
	for tag := range c {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var sb strings.Builder
	for _, tag := range tags {
		attrs := append([]string(nil), c[tag]...)
		sort.Strings(attrs)
		sb.WriteString(tag)
		sb.WriteByte('[')
		sb.WriteString(strings.Join(attrs, ","))
		sb.WriteString("];")
	}
	return sb.String()
}

// Sanitizer cleans markup with bluemonday policies built from Configs
type Sanitizer struct {
	mu       sync.Mutex
	policies map[string]*bluemonday.Policy
}

// New creates a sanitizer
func New() *Sanitizer {
	return &Sanitizer{
		policies: make(map[string]*bluemonday.Policy),
	}
}

// Clean returns markup with everything outside cfg removed
func (s *Sanitizer) Clean(markup string, cfg Config) string {
	return s.policy(cfg).Sanitize(markup)
}

// Text strips every tag from markup and returns the unescaped text
func (s *Sanitizer) Text(markup string) string {
	return html.UnescapeString(s.Clean(markup, Config{}))
}

func (s *Sanitizer) policy(cfg Config) *bluemonday.Policy {
	k := cfg.key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.policies[k]; ok {
		return p
	}

	p := bluemonday.NewPolicy()
	for tag, attrs := range cfg {
		if len(attrs) == 0 {
			p.AllowElements(tag)
			continue
		}
		p.AllowAttrs(attrs...).OnElements(tag)
	}
	s.policies[k] = p
	return p
}
