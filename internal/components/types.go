// Package components generates filled component templates for a website,
// one independent task per requested kind.
package components

import (
	"errors"

	"github.com/jorge-barreto/sitegen/internal/backup"
)

// ErrNoTemplates reports a kind with no candidates in the template library.
var ErrNoTemplates = errors.New("no templates available")

// ErrInvalidKind reports a kind name that cannot be mapped to a file name.
var ErrInvalidKind = errors.New("invalid kind name")

// ErrFileConflict reports a kind whose file name is already claimed by an
// earlier kind in the same request.
var ErrFileConflict = errors.New("file name already used by another kind")

// WebsiteContext describes the site components are written for.
type WebsiteContext struct {
	Name             string `json:"name"`
	Industry         string `json:"industry"`
	Description      string `json:"description"`
	StylePreference  string `json:"stylePreference"`
	BrandPersonality string `json:"brandPersonality"`
}

// Request is one component generation invocation.
type Request struct {
	Website    WebsiteContext
	Kinds      []string
	Creativity Creativity
}

// Source says where a component's copy came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
	SourceTemplate Source = "template" // body has no placeholders
)

// Result is the outcome for one requested kind.
type Result struct {
	Kind       string
	TemplateID string
	Body       string
	Path       string
	Source     Source
	Changes    string
	Succeeded  bool
	Err        error
}

// ErrorMessage returns the failure text, or "" on success.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Report holds one Result per requested kind, in request order.
type Report struct {
	RunID   string
	Results []Result
	Backup  *backup.Record
}

// Failed returns the results that did not succeed.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Succeeded {
			out = append(out, res)
		}
	}
	return out
}
