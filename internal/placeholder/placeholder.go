package placeholder

import (
	"regexp"
	"sort"
	"strings"
)

var markerRe = regexp.MustCompile(`\{\{([^}]+?)\}\}`)

// Extract returns the distinct placeholder names found in template, sorted.
// A name is the text between {{ and }}. Unbalanced markers are ignored.
//
// There is no escape for a literal "{{" in content: any {{X}} sequence is
// treated as a placeholder.
func Extract(template string) []string {
	matches := markerRe.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	sort.Strings(names)
	return names
}

// Fill replaces every {{key}} in template with values[key].
// Placeholders without a value are left as-is.
func Fill(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(values))
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Missing returns the names in want that have no entry in values.
func Missing(want []string, values map[string]string) []string {
	var missing []string
	for _, name := range want {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
