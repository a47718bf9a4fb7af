package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/kalebj25/news-aggregator/internal/newsapi"
)

// html/template escapes text, attributes and URLs by context, so url and
// image values are filtered as well as title and description.
var templates = template.Must(template.New("render").Parse(`
{{- define "feed" -}}
{{range .}}<a class="{{.Class}}" href="{{.URL}}" target="_blank" rel="noopener">
{{- if .ShowImage}}
  <div class="card-image">
    <img src="{{.Image}}" alt="" onerror="this.parentElement.innerHTML='<div class=\'card-image-placeholder\'>📰</div>'">
    {{- if .Hero}}
    <div class="card-image-gradient"></div>
    {{- end}}
  </div>
{{- end}}
  <div class="card-body">
    <div class="card-meta">
      <span class="card-sector-dot" style="background:{{.Color}};"></span>
      <span class="card-source" style="color:{{.Color}};">{{.Source}}</span>
      <span class="card-time">• {{.TimeAgo}}</span>
    </div>
    <h3 class="card-title">{{.Title}}</h3>
    {{- if .ShowDescription}}
    <p class="card-desc">{{.Description}}</p>
    {{- end}}
    <div class="card-actions">
      <button type="button" class="card-action" onclick="event.preventDefault(); event.stopPropagation(); this.classList.toggle('saved');">🔖 Read Later</button>
      <button type="button" class="card-action" onclick="event.preventDefault(); event.stopPropagation(); this.classList.toggle('favorited');">★ Favorite</button>
    </div>
  </div>
</a>
{{end}}
{{- end -}}

{{- define "headlines" -}}
{{range .}}<a class="headline-item" href="{{.URL}}" target="_blank" rel="noopener">
  <div class="headline-dot" style="background:{{.Color}};"></div>
  <div class="headline-content">
    <div class="headline-title">{{.Title}}</div>
    <div class="headline-meta">
      <span class="headline-source" style="color:{{.Color}};">{{.Source}}</span>
      <span class="headline-time">• {{.TimeAgo}}</span>
    </div>
  </div>
</a>
{{end}}
{{- end -}}

{{- define "error" -}}
<div class="error-message">{{.}}</div>
{{- end -}}

{{- define "empty" -}}
<div class="empty-state"><p>{{.}}</p></div>
{{- end -}}

{{- define "page" -}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{range .Sections}}<section class="feed-section">
<h2 class="view-title">{{.Title}}</h2>
{{- if .TierTag}}
<span class="tier-tag" style="color:{{.Color}};">{{.TierTag}}</span>
{{- end}}
<div class="{{.ContainerClass}}">
{{.Body}}</div>
</section>
{{end}}</body>
</html>
{{end -}}
`))

type cardData struct {
	Class           string
	URL             string
	Image           string
	Hero            bool
	ShowImage       bool
	ShowDescription bool
	Color           string
	Source          string
	TimeAgo         string
	Title           string
	Description     string
}

func cards(articles []newsapi.Article, color string, now time.Time) []cardData {
	out := make([]cardData, len(articles))
	for i, a := range articles {
		kind := LayoutFor(i)
		out[i] = cardData{
			Class:           kind.Class(),
			URL:             a.URL,
			Image:           a.Image,
			Hero:            kind == CardHero,
			ShowImage:       ShowImage(i, a),
			ShowDescription: ShowDescription(i, a),
			Color:           color,
			Source:          a.Source,
			TimeAgo:         TimeAgo(a.Published, now),
			Title:           a.Title,
			Description:     Description(a),
		}
	}
	return out
}

// Feed renders the card grid markup for articles, accented with color.
func Feed(articles []newsapi.Article, color string, now time.Time) (string, error) {
	return execute("feed", cards(articles, color, now))
}

// Headlines renders the compact list markup.
func Headlines(articles []newsapi.Article, color string, now time.Time) (string, error) {
	return execute("headlines", cards(articles, color, now))
}

// NoArticles is the empty-state text.
const NoArticles = "No articles found."

// Notice renders the placeholder for a result that has no cards: the error
// message verbatim, or the empty state.
func Notice(res newsapi.Result) (string, error) {
	if res.Outcome == newsapi.OutcomeError {
		return execute("error", res.Message)
	}
	return execute("empty", NoArticles)
}

// Section is one titled fragment inside an exported page.
type Section struct {
	Title     string
	TierTag   string
	Color     string
	Headlines bool
	Body      template.HTML
}

func (s Section) ContainerClass() string {
	if s.Headlines {
		return "headlines-list"
	}
	return "feed-grid"
}

// Page wraps rendered sections into a standalone document.
func Page(title string, sections []Section) (string, error) {
	return execute("page", struct {
		Title    string
		Sections []Section
	}{title, sections})
}

// EscapeHTML escapes text for insertion into markup.
func EscapeHTML(s string) string {
	return template.HTMLEscapeString(s)
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}
