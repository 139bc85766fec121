package preview

import (
	"html/template"
	"strings"
)

var docTemplate = template.Must(template.New("resume").Parse(`<div class="resume-page" style="aspect-ratio: {{.PageWidthMM}} / {{.PageHeightMM}}; transform: scale({{.Scale}}); transform-origin: top left;">
  <header class="resume-header">
    {{- if .Header.PhotoURL}}
    <img src="{{.Header.PhotoURL}}" alt="" style="border-radius: {{.Header.PhotoRadius}};">
    {{- end}}
    <h1 style="color: {{.ColorHex}};">{{.Header.FirstName}} {{.Header.LastName}}</h1>
    {{- if .Header.JobTitle}}
    <p class="job-title" style="color: {{.ColorHex}};">{{.Header.JobTitle}}</p>
    {{- end}}
    {{- if .Header.Location}}
    <p class="location">{{.Header.Location}}</p>
    {{- end}}
    {{- if .Header.Contact}}
    <p class="contact">{{.Header.Contact}}</p>
    {{- end}}
  </header>
  {{- if .Summary}}
  <section class="summary">
    <h2 style="color: {{.ColorHex}};">Professional profile</h2>
    <p>{{.Summary}}</p>
  </section>
  {{- end}}
  {{- if .WorkEntries}}
  <section class="work-experience">
    <h2 style="color: {{.ColorHex}};">Work experience</h2>
    {{- range .WorkEntries}}
    <article>
      <h3 style="color: {{$.ColorHex}};">{{.Position}}</h3>
      {{- if .DateRange}}<span class="dates">{{.DateRange}}</span>{{end}}
      {{- if .Company}}<p class="company">{{.Company}}</p>{{end}}
      {{- if .Description}}<p>{{.Description}}</p>{{end}}
    </article>
    {{- end}}
  </section>
  {{- end}}
  {{- if .Educations}}
  <section class="education">
    <h2 style="color: {{.ColorHex}};">Education</h2>
    {{- range .Educations}}
    <article>
      <h3 style="color: {{$.ColorHex}};">{{.Degree}}</h3>
      {{- if .DateRange}}<span class="dates">{{.DateRange}}</span>{{end}}
      {{- if .School}}<p class="school">{{.School}}</p>{{end}}
    </article>
    {{- end}}
  </section>
  {{- end}}
  {{- if .Skills}}
  <section class="skills">
    <h2 style="color: {{.ColorHex}};">Skills</h2>
    <ul>
      {{- range .Skills}}
      <li class="badge" style="background: {{$.ColorHex}};">{{.}}</li>
      {{- end}}
    </ul>
  </section>
  {{- end}}
</div>
`))

// RenderHTML renders the document as a standalone HTML fragment.
func RenderHTML(doc Document) (string, error) {
	var buf strings.Builder
	if err := docTemplate.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
