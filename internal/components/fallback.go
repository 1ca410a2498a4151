package components

import (
	"strings"
)

type fallbackRule struct {
	tokens []string
	value  func(w WebsiteContext) string
}

// Rules are checked in order; the first rule with a token in the name wins.
var fallbackRules = []fallbackRule{
	{[]string{"COPYRIGHT"}, func(w WebsiteContext) string {
		return "© " + siteName(w) + ". All rights reserved."
	}},
	{[]string{"CONTACT", "EMAIL", "PHONE"}, func(w WebsiteContext) string {
		return "Get in touch with " + siteName(w)
	}},
	{[]string{"CTA", "BUTTON", "ACTION"}, func(WebsiteContext) string {
		return "Get Started"
	}},
	{[]string{"SUBHEADLINE", "SUBTITLE", "SUBHEADING", "TAGLINE"}, func(w WebsiteContext) string {
		return "Trusted " + industry(w) + " for people who care about quality"
	}},
	{[]string{"HEADLINE", "TITLE", "HEADING"}, func(w WebsiteContext) string {
		return "Welcome to " + siteName(w)
	}},
	{[]string{"DESCRIPTION", "ABOUT", "SUMMARY"}, func(w WebsiteContext) string {
		if w.Description != "" {
			return w.Description
		}
		return siteName(w) + " brings you the best in " + industry(w) + "."
	}},
	{[]string{"INDUSTRY"}, industry},
	{[]string{"BRAND", "NAME", "COMPANY", "LOGO"}, siteName},
}

// Fallback returns a value for every name without calling a model. Known
// names map to copy derived from w; others map to their humanized name.
func Fallback(names []string, w WebsiteContext) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = fallbackValue(name, w)
	}
	return out
}

func fallbackValue(name string, w WebsiteContext) string {
	tokens := strings.FieldsFunc(strings.ToUpper(name), func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	for _, rule := range fallbackRules {
		for _, want := range rule.tokens {
			for _, tok := range tokens {
				if tok == want {
					return rule.value(w)
				}
			}
		}
	}
	return humanize(name)
}

func humanize(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(name), "_", " "))
}

func siteName(w WebsiteContext) string {
	if w.Name != "" {
		return w.Name
	}
	return "Our Company"
}

func industry(w WebsiteContext) string {
	if w.Industry != "" {
		return w.Industry
	}
	return "services"
}
