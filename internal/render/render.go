// Package render maps a stored resume onto one of three fixed A4 layouts.
// All strategies consume the same view model and share one visibility rule:
// a section is rendered only when its backing data is non-empty.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"careerprep/internal/domain"
	"careerprep/internal/shared"

	"golang.org/x/net/publicsuffix"
)

// TemplateID selects the active rendering strategy.
type TemplateID string

const (
	ClassicProfessional TemplateID = "classic"
	ModernMinimal       TemplateID = "modern"
	CreativeColorful    TemplateID = "creative"
)

// TemplateIDs lists the strategies in display order.
func TemplateIDs() []TemplateID {
	return []TemplateID{ClassicProfessional, ModernMinimal, CreativeColorful}
}

// ParseTemplateID resolves a template id from its wire form.
func ParseTemplateID(s string) (TemplateID, error) {
	switch TemplateID(s) {
	case ClassicProfessional, ModernMinimal, CreativeColorful:
		return TemplateID(s), nil
	}
	return "", fmt.Errorf("%w: unknown template %q", shared.ErrInvalidInput, s)
}

//go:embed templates/*.html
var templateFS embed.FS

// Engine renders stored resumes into standalone print-ready HTML documents.
// Rendering is a pure function of the resume: the same input produces
// byte-identical output on every call.
type Engine struct {
	tpl *template.Template
}

func NewEngine() *Engine {
	return &Engine{tpl: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

// Render produces the isolated export document for one template choice.
// The output contains nothing but the chosen layout, sized for A4 with
// zero page margins.
func (e *Engine) Render(id TemplateID, r *domain.StoredResume) (string, error) {
	if _, err := ParseTemplateID(string(id)); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := e.tpl.ExecuteTemplate(&buf, string(id)+".html", newView(r)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// view is the single data projection shared by every template. The HasX
// flags are the one place the omit-if-empty rule lives; templates never
// test emptiness themselves.
type view struct {
	R *domain.StoredResume

	HasSummary    bool
	HasExperience bool
	HasEducation  bool
	HasSkills     bool
	HasInterests  bool
	HasReferences bool
	HasLinks      bool

	LinkedinLabel   string
	WebsiteLabel    string
	InterestsJoined string
}

func newView(r *domain.StoredResume) view {
	return view{
		R:               r,
		HasSummary:      visibleText(r.Summary),
		HasExperience:   len(r.WorkExperience) > 0,
		HasEducation:    len(r.Education) > 0,
		HasSkills:       len(r.Skills) > 0,
		HasInterests:    len(r.Interests) > 0,
		HasReferences:   len(r.References) > 0,
		HasLinks:        visibleText(r.LinkedinURL) || visibleText(r.WebsiteURL),
		LinkedinLabel:   linkLabel(r.LinkedinURL, "LinkedIn"),
		WebsiteLabel:    linkLabel(r.WebsiteURL, "Portfolio"),
		InterestsJoined: strings.Join(r.Interests, ", "),
	}
}

func visibleText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// linkLabel derives a short display label for a contact link, preferring
// the registrable domain of the URL over the raw address.
func linkLabel(raw, fallback string) string {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return fallback
	}
	host := u.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}
