package render

import (
	"fmt"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/kalebj25/news-aggregator/internal/newsapi"
)

func articles(n int) []newsapi.Article {
	out := make([]newsapi.Article, n)
	for i := range out {
		out[i] = newsapi.Article{
			Title:       fmt.Sprintf("Story %d", i),
			Description: fmt.Sprintf("Desc %d", i),
			URL:         fmt.Sprintf("https://news.example/%d", i),
			Source:      "Wire",
			Published:   "2024-03-01T12:00:00Z",
		}
	}
	return out
}

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		index int
		want  CardKind
		class string
	}{
		{0, CardHero, "news-card card-hero"},
		{1, CardStandard, "news-card"},
		{4, CardStandard, "news-card"},
		{5, CardWide, "news-card card-wide"},
		{6, CardPlain, "news-card"},
		{15, CardPlain, "news-card"},
	}
	for _, tt := range tests {
		got := LayoutFor(tt.index)
		if got != tt.want {
			t.Errorf("LayoutFor(%d) = %s, want %s", tt.index, got, tt.want)
		}
		if got.Class() != tt.class {
			t.Errorf("LayoutFor(%d).Class() = %q, want %q", tt.index, got.Class(), tt.class)
		}
	}
}

func TestShowImage(t *testing.T) {
	withImg := newsapi.Article{Image: "https://img.example/a.jpg"}
	noImg := newsapi.Article{}

	for i := 0; i <= 2; i++ {
		if !ShowImage(i, withImg) {
			t.Errorf("ShowImage(%d, with image) = false", i)
		}
		if ShowImage(i, noImg) {
			t.Errorf("ShowImage(%d, no image) = true", i)
		}
	}
	if ShowImage(3, withImg) {
		t.Error("ShowImage(3) should be false")
	}
}

func TestShowDescription(t *testing.T) {
	withImg := newsapi.Article{Image: "https://img.example/a.jpg"}
	if ShowDescription(0, withImg) {
		t.Error("hero with image should hide description")
	}
	if !ShowDescription(0, newsapi.Article{}) {
		t.Error("hero without image should show description")
	}
	if !ShowDescription(1, withImg) {
		t.Error("non-hero with image should show description")
	}
}

func cardClasses(markup string) []string {
	var classes []string
	for _, part := range strings.Split(markup, `<a class="`)[1:] {
		classes = append(classes, part[:strings.Index(part, `"`)])
	}
	return classes
}

func TestFeedClassesByIndex(t *testing.T) {
	out, err := Feed(articles(8), "#8B5CF6", time.Now())
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	want := []string{
		"news-card card-hero", "news-card", "news-card", "news-card", "news-card",
		"news-card card-wide", "news-card", "news-card",
	}
	got := cardClasses(out)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("classes = %v, want %v", got, want)
	}
	if !strings.Contains(out, "background:#8B5CF6;") {
		t.Error("expected accent color on sector dot")
	}
}

func TestFeedImages(t *testing.T) {
	as := articles(4)
	for i := range as {
		as[i].Image = fmt.Sprintf("https://img.example/%d.jpg", i)
	}
	out, err := Feed(as, "#fff", time.Now())
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if n := strings.Count(out, "<img "); n != 3 {
		t.Errorf("expected 3 images, got %d", n)
	}
	if strings.Contains(out, "https://img.example/3.jpg") {
		t.Error("fourth card should not render its image")
	}
	if n := strings.Count(out, "card-image-gradient"); n != 1 {
		t.Errorf("expected gradient only on hero, got %d", n)
	}
	if strings.Contains(out, "Desc 0") {
		t.Error("hero with image should omit its description")
	}
	if !strings.Contains(out, "Desc 1") {
		t.Error("standard card should keep its description")
	}
	if !strings.Contains(out, "card-image-placeholder") {
		t.Error("expected image failure placeholder handler")
	}
}

func TestFeedMissingDescription(t *testing.T) {
	as := articles(1)
	as[0].Description = ""
	out, err := Feed(as, "#fff", time.Now())
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if !strings.Contains(out, "No description available.") {
		t.Error("expected description placeholder")
	}
}

func TestFeedEscapesText(t *testing.T) {
	as := articles(2)
	as[0].Title = "<script>alert(1)</script>"
	as[1].Description = `<img src=x onerror="steal()">`
	out, err := Feed(as, "#fff", time.Now())
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Error("title was not escaped")
	}
	if strings.Contains(out, "<img src=x") {
		t.Error("description was not escaped")
	}
}

func TestFeedFiltersUnsafeURLs(t *testing.T) {
	as := articles(1)
	as[0].URL = "javascript:alert(1)"
	as[0].Image = "javascript:alert(2)"
	out, err := Feed(as, "#fff", time.Now())
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if strings.Contains(out, "javascript:") {
		t.Errorf("unsafe URL leaked into markup:\n%s", out)
	}
}

func TestHeadlines(t *testing.T) {
	now := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	out, err := Headlines(articles(3), "#10B981", now)
	if err != nil {
		t.Fatalf("Headlines: %v", err)
	}
	if n := strings.Count(out, `class="headline-item"`); n != 3 {
		t.Errorf("expected 3 headline items, got %d", n)
	}
	if !strings.Contains(out, "• 3h ago") {
		t.Error("expected relative time in headline meta")
	}
	if strings.Contains(out, "Desc 0") {
		t.Error("headlines should not include descriptions")
	}
}

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML("<script>x</script>")
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Errorf("EscapeHTML left markup: %q", got)
	}
	if got != "&lt;script&gt;x&lt;/script&gt;" {
		t.Errorf("EscapeHTML = %q", got)
	}
	if EscapeHTML("") != "" {
		t.Error("EscapeHTML(\"\") should be empty")
	}
}

func TestFeedCardActions(t *testing.T) {
	out, err := Feed(articles(3), "#fff", time.Now())
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if n := strings.Count(out, `class="card-actions"`); n != 3 {
		t.Errorf("expected actions on every card, got %d", n)
	}
	if !strings.Contains(out, "🔖 Read Later") || !strings.Contains(out, "★ Favorite") {
		t.Error("expected Read Later and Favorite buttons")
	}

	out, err = Headlines(articles(3), "#fff", time.Now())
	if err != nil {
		t.Fatalf("Headlines: %v", err)
	}
	if strings.Contains(out, "card-actions") {
		t.Error("headlines should not carry card actions")
	}
}

func TestNotice(t *testing.T) {
	out, err := Notice(newsapi.Result{Outcome: newsapi.OutcomeError, Message: "rate limited"})
	if err != nil {
		t.Fatalf("Notice: %v", err)
	}
	if !strings.Contains(out, ">rate limited<") {
		t.Errorf("error notice should carry the message verbatim, got %q", out)
	}

	out, err = Notice(newsapi.Result{Outcome: newsapi.OutcomeError, Message: "<b>bad</b>"})
	if err != nil {
		t.Fatalf("Notice: %v", err)
	}
	if strings.Contains(out, "<b>") {
		t.Errorf("error notice must be escaped, got %q", out)
	}

	out, err = Notice(newsapi.Result{Outcome: newsapi.OutcomeEmpty})
	if err != nil {
		t.Fatalf("Notice: %v", err)
	}
	if !strings.Contains(out, NoArticles) || strings.Contains(out, "news-card") {
		t.Errorf("unexpected empty notice %q", out)
	}
}

func TestPage(t *testing.T) {
	body, err := Feed(articles(1), "#fff", time.Now())
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	out, err := Page("moreover <AI>", []Section{
		{Title: "AI / Machine Learning", TierTag: "Tier V — Self-Actualization", Color: "#8B5CF6", Body: template.HTML(body)},
		{Title: "Energy", Headlines: true, Body: ""},
	})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("expected doctype")
	}
	if !strings.Contains(out, "moreover &lt;AI&gt;") {
		t.Error("expected escaped page title")
	}
	if !strings.Contains(out, "Tier V — Self-Actualization") {
		t.Error("expected tier tag")
	}
	if !strings.Contains(out, `class="feed-grid"`) || !strings.Contains(out, `class="headlines-list"`) {
		t.Error("expected both container classes")
	}
	if !strings.Contains(out, "Story 0") {
		t.Error("expected section body to be embedded")
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) string { return now.Add(-d).Format(time.RFC3339) }

	tests := []struct {
		input string
		want  string
	}{
		{at(30 * time.Second), "Just now"},
		{at(5 * time.Minute), "5m ago"},
		{at(3 * time.Hour), "3h ago"},
		{at(2 * 24 * time.Hour), "2d ago"},
		{at(10 * 24 * time.Hour), "Jun 10"},
		{now.Add(time.Hour).Format(time.RFC3339), "Just now"},
		{"", ""},
		{"not a date", ""},
	}
	for _, tt := range tests {
		if got := TimeAgo(tt.input, now); got != tt.want {
			t.Errorf("TimeAgo(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseTimeFormats(t *testing.T) {
	want := time.Date(2024, 6, 20, 10, 30, 0, 0, time.UTC)
	inputs := []string{
		"2024-06-20T10:30:00Z",
		"2024-06-20T10:30:00.000Z",
		"2024-06-20T10:30:00+0000",
		"2024-06-20T12:30:00+02:00",
		"Thu, 20 Jun 2024 10:30:00 +0000",
		"Thu, 20 Jun 2024 10:30:00 GMT",
	}
	for _, in := range inputs {
		got, ok := ParseTime(in)
		if !ok {
			t.Errorf("ParseTime(%q) failed", in)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseTime(%q) = %v, want %v", in, got, want)
		}
	}

	if _, ok := ParseTime("2024-06-20"); !ok {
		t.Error("expected bare date to parse")
	}
}
