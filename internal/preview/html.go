package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// pageTemplate renders a layout as a standalone A4-styled HTML document.
// Rich-text fragments (work and project summaries) are injected verbatim
// via the rich helper; the rich-text collaborator emits them pre-sanitized.
var pageTemplate = template.Must(template.New("resume").Funcs(template.FuncMap{
	"rich": func(s string) template.HTML { return template.HTML(s) },
	"dots": ratingDots,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: A4; margin: 0; }
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1f2937; margin: 0; }
  .page { width: 210mm; min-height: 297mm; box-sizing: border-box; padding: 14mm 16mm; }
  .banner { height: 6px; background: {{.ThemeColor}}; margin: -14mm -16mm 10mm; }
  .name { font-size: 26px; font-weight: 700; color: {{.ThemeColor}}; }
  .job-title { font-size: 14px; color: #4b5563; margin-top: 2px; }
  .contact { font-size: 11px; color: #6b7280; margin-top: 6px; }
  .section { margin-top: 18px; }
  .section h2 { font-size: 14px; color: {{.ThemeColor}}; border-bottom: 2px solid {{.ThemeColor}};
                padding-bottom: 3px; margin: 0 0 8px; text-transform: uppercase; letter-spacing: 1px; }
  .entry { margin-bottom: 10px; }
  .entry-title { font-size: 12px; font-weight: 600; }
  .entry-meta { font-size: 10px; color: #6b7280; }
  .entry-body { font-size: 11px; margin-top: 3px; }
  .skill { display: flex; justify-content: space-between; font-size: 11px; margin-bottom: 4px; }
  .skill-dots { color: {{.ThemeColor}}; letter-spacing: 2px; }
</style>
</head>
<body>
<div class="page">
  <div class="banner"></div>
  <div class="header">
    {{- if .Header.FullName}}<div class="name">{{.Header.FullName}}</div>{{end}}
    {{- if .Header.JobTitle}}<div class="job-title">{{.Header.JobTitle}}</div>{{end}}
    <div class="contact">
      {{- if .Header.Address}}<span>{{.Header.Address}}</span> {{end}}
      {{- if .Header.Phone}}<span>{{.Header.Phone}}</span> {{end}}
      {{- if .Header.Email}}<span>{{.Header.Email}}</span>{{end}}
    </div>
  </div>
  {{- range .Blocks}}
  <div class="section" data-section="{{.Kind}}">
    <h2>{{.Title}}</h2>
    {{- if eq .Kind "summary"}}
    <div class="entry-body">{{.Summary}}</div>
    {{- else if eq .Kind "experience"}}
    {{- range .Experience}}
    <div class="entry">
      <div class="entry-title">{{.Title}}{{if .CompanyName}} &mdash; {{.CompanyName}}{{end}}</div>
      <div class="entry-meta">
        {{- if .City}}{{.City}}{{if .State}}, {{.State}}{{end}} &middot; {{end}}
        {{- .StartDate}}{{if .CurrentlyWorking}} &ndash; Present{{else if .EndDate}} &ndash; {{.EndDate}}{{end}}
      </div>
      {{- if .WorkSummary}}<div class="entry-body">{{rich .WorkSummary}}</div>{{end}}
    </div>
    {{- end}}
    {{- else if eq .Kind "projects"}}
    {{- range .Projects}}
    <div class="entry">
      <div class="entry-title">{{.ProjectName}}</div>
      {{- if .TechStack}}<div class="entry-meta">{{.TechStack}}</div>{{end}}
      {{- if .ProjectSummary}}<div class="entry-body">{{rich .ProjectSummary}}</div>{{end}}
    </div>
    {{- end}}
    {{- else if eq .Kind "education"}}
    {{- range .Education}}
    <div class="entry">
      <div class="entry-title">{{.UniversityName}}</div>
      <div class="entry-meta">
        {{- .Degree}}{{if .Major}} in {{.Major}}{{end}}
        {{- if .Grade}} &middot; {{.GradeType}}: {{.Grade}}{{end}}
        {{- if .StartDate}} &middot; {{.StartDate}}{{if .EndDate}} &ndash; {{.EndDate}}{{end}}{{end}}
      </div>
      {{- if .Description}}<div class="entry-body">{{.Description}}</div>{{end}}
    </div>
    {{- end}}
    {{- else if eq .Kind "skills"}}
    {{- range .Skills}}
    <div class="skill">
      <span>{{.Name}}</span>
      <span class="skill-dots">{{dots .Rating}}</span>
    </div>
    {{- end}}
    {{- end}}
  </div>
  {{- end}}
</div>
</body>
</html>
`))

// RenderHTML renders the canonical layout as a standalone HTML document,
// suitable for rasterization by the export pipeline.
func RenderHTML(layout Layout) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, layout); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.String(), nil
}

// ratingDots renders a 0-5 proficiency rating as filled and empty dots.
func ratingDots(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("●", rating) + strings.Repeat("○", 5-rating)
}
