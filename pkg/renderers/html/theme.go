package html

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// StaticSelector resolves themes from a fixed set of manifests. An empty
// name picks the first manifest; a variant the manifest does not declare is
// reported as an error.
type StaticSelector struct {
	manifests []*theme.Manifest
}

var _ theme.ThemeSelector = (*StaticSelector)(nil)

// NewStaticSelector returns a selector over manifests, skipping nil entries.
func NewStaticSelector(manifests ...*theme.Manifest) *StaticSelector {
	s := &StaticSelector{}
	for _, manifest := range manifests {
		if manifest != nil {
			s.manifests = append(s.manifests, manifest)
		}
	}
	return s
}

// Select implements theme.ThemeSelector.
func (s *StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	for _, manifest := range s.manifests {
		if name != "" && manifest.Name != name {
			continue
		}
		if variant != "" {
			if _, ok := manifest.Variants[variant]; !ok {
				return nil, fmt.Errorf("html: theme %q has no variant %q", manifest.Name, variant)
			}
		}
		return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
	}
	return nil, fmt.Errorf("html: theme %q not found", name)
}

// DefaultManifest is the built-in preview theme with a light and a dark
// variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "formbuilder",
		Version: "1.0.0",
		Tokens: map[string]string{
			"fb-font":       "system-ui, sans-serif",
			"fb-background": "#ffffff",
			"fb-foreground": "#1f2933",
			"fb-accent":     "#3f51b5",
			"fb-error":      "#c62828",
			"fb-spacing":    "0.75rem",
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"fb-background": "#121212",
					"fb-foreground": "#e4e7eb",
					"fb-accent":     "#9fa8da",
				},
			},
		},
	}
}

// themeTokens overlays the selected variant's tokens onto the manifest
// tokens.
func themeTokens(selection *theme.Selection) map[string]string {
	tokens := make(map[string]string)
	if selection == nil || selection.Manifest == nil {
		return tokens
	}
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	return tokens
}

// cssVarsStyle renders tokens as sorted custom property declarations.
// Tokens whose name or value could break out of the declaration are dropped.
func cssVarsStyle(tokens map[string]string) string {
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := strings.TrimPrefix(strings.TrimSpace(key), "--")
		value := strings.TrimSpace(tokens[key])
		if name == "" || value == "" || strings.ContainsAny(name+value, "<>{};\\\"") {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "--%s: %s;", name, value)
	}
	return b.String()
}
