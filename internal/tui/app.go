package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kalebj25/news-aggregator/internal/bookmarks"
	"github.com/kalebj25/news-aggregator/internal/browser"
	"github.com/kalebj25/news-aggregator/internal/catalog"
	"github.com/kalebj25/news-aggregator/internal/nav"
	"github.com/kalebj25/news-aggregator/internal/newsapi"
	"github.com/kalebj25/news-aggregator/internal/render"
)

// NewsSource fetches articles for a filter or a search query.
type NewsSource interface {
	News(ctx context.Context, param, key string, count int) newsapi.Result
	Search(ctx context.Context, query string, count int) newsapi.Result
}

// BookmarkStore persists Read Later and Favorite marks.
type BookmarkStore interface {
	Toggle(b bookmarks.Bookmark) (bool, error)
	MarkSet() (map[string]bookmarks.Marks, error)
}

type phase int

const (
	phaseLoading phase = iota
	phaseError
	phaseEmpty
	phaseReady
)

const (
	headerHeight  = 1
	statusHeight  = 1
	viewBarHeight = 2
)

type App struct {
	table  catalog.Table
	state  nav.State
	source NewsSource
	store  BookmarkStore
	keys   keyMap
	logger *zap.Logger

	phase    phase
	articles []newsapi.Article
	errMsg   string
	cursor   int
	marks    map[string]bookmarks.Marks
	status   string

	width  int
	height int

	searching   bool
	showHelp    bool
	searchInput textinput.Model
	spinner     spinner.Model
	viewport    viewport.Model

	feedCount   int
	searchCount int
	timeout     time.Duration
	now         func() time.Time
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Table       catalog.Table
	Source      NewsSource
	Store       BookmarkStore // optional
	Filter      string
	View        nav.View
	FeedCount   int
	SearchCount int
	Timeout     time.Duration
	Logger      *zap.Logger
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search news..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &App{
		table:       opts.Table,
		state:       nav.Initial(opts.Table, opts.Filter, opts.View),
		source:      opts.Source,
		store:       opts.Store,
		keys:        newKeyMap(opts.Table.HasTiers()),
		logger:      logger,
		marks:       map[string]bookmarks.Marks{},
		searchInput: ti,
		spinner:     sp,
		viewport:    viewport.New(0, 0),
		feedCount:   opts.FeedCount,
		searchCount: opts.SearchCount,
		timeout:     opts.Timeout,
		now:         time.Now,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.apply(nav.Refresh{}), a.loadMarksCmd())
}

// apply runs a navigation event through nav.Apply and starts the fetch it
// asks for. The previous results are discarded as soon as loading starts.
func (a *App) apply(ev nav.Event) tea.Cmd {
	next, req := nav.Apply(a.table, a.state, ev)
	a.state = next
	if req == nil {
		a.refreshContent()
		return nil
	}

	a.phase = phaseLoading
	a.articles = nil
	a.errMsg = ""
	a.cursor = 0
	a.viewport.SetYOffset(0)
	a.logger.Debug("fetching",
		zap.Uint64("generation", req.Generation),
		zap.String("key", req.Key),
		zap.String("query", req.Query))
	return tea.Batch(a.fetchCmd(*req), a.spinner.Tick)
}

// fetchCmd captures the request into the closure; the response is tagged
// with its generation so stale ones can be told apart.
func (a *App) fetchCmd(req nav.Request) tea.Cmd {
	src := a.source
	timeout := a.timeout
	feedCount, searchCount := a.feedCount, a.searchCount
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		var res newsapi.Result
		if req.IsSearch() {
			res = src.Search(ctx, req.Query, searchCount)
		} else {
			res = src.News(ctx, req.Param, req.Key, feedCount)
		}
		return newsLoadedMsg{gen: req.Generation, result: res}
	}
}

func (a *App) loadMarksCmd() tea.Cmd {
	if a.store == nil {
		return nil
	}
	store := a.store
	return func() tea.Msg {
		marks, err := store.MarkSet()
		return marksLoadedMsg{marks: marks, err: err}
	}
}

func (a *App) toggleCmd(kind bookmarks.Kind) tea.Cmd {
	art, ok := a.selected()
	if !ok {
		return nil
	}
	if a.store == nil {
		a.status = "bookmarks unavailable"
		return nil
	}
	store := a.store
	b := bookmarks.Bookmark{
		URL:         art.URL,
		Kind:        kind,
		Title:       art.Title,
		Source:      art.Source,
		Description: art.Description,
		Image:       art.Image,
		Published:   art.Published,
	}
	return func() tea.Msg {
		saved, err := store.Toggle(b)
		return bookmarkToggledMsg{url: b.URL, kind: kind, saved: saved, err: err}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return openFailedMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = a.mainWidth()
		a.viewport.Height = a.contentHeight()
		a.refreshContent()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case newsLoadedMsg:
		if !a.state.Accepts(msg.gen) {
			a.logger.Debug("dropping stale response",
				zap.Uint64("generation", msg.gen),
				zap.Uint64("current", a.state.Generation))
			return a, nil
		}
		a.setResult(msg.result)
		return a, nil

	case marksLoadedMsg:
		if msg.err != nil {
			a.logger.Warn("loading bookmarks", zap.Error(msg.err))
			a.status = "could not load bookmarks"
			return a, nil
		}
		if msg.marks != nil {
			a.marks = msg.marks
		}
		a.refreshContent()
		return a, nil

	case bookmarkToggledMsg:
		if msg.err != nil {
			a.logger.Warn("toggling bookmark", zap.String("url", msg.url), zap.Error(msg.err))
			a.status = "could not save bookmark"
			return a, nil
		}
		m := a.marks[msg.url]
		switch msg.kind {
		case bookmarks.KindReadLater:
			m.ReadLater = msg.saved
		case bookmarks.KindFavorite:
			m.Favorite = msg.saved
		}
		a.marks[msg.url] = m
		a.status = toggleStatus(msg.kind, msg.saved)
		a.refreshContent()
		return a, nil

	case openFailedMsg:
		a.logger.Warn("opening article", zap.Error(msg.err))
		a.status = msg.err.Error()
		return a, nil

	case spinner.TickMsg:
		if a.phase == phaseLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) setResult(res newsapi.Result) {
	switch res.Outcome {
	case newsapi.OutcomeError:
		a.phase = phaseError
		a.errMsg = res.Message
		a.articles = nil
	case newsapi.OutcomeEmpty:
		a.phase = phaseEmpty
		a.articles = nil
	default:
		a.phase = phaseReady
		a.articles = res.Articles
	}
	a.cursor = 0
	a.viewport.SetYOffset(0)
	a.refreshContent()
}

func toggleStatus(kind bookmarks.Kind, saved bool) string {
	list := "Read Later"
	if kind == bookmarks.KindFavorite {
		list = "Favorites"
	}
	if saved {
		return "saved to " + list
	}
	return "removed from " + list
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.searching {
		return a.handleSearchKey(msg)
	}
	if a.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			a.showHelp = false
		}
		return a, nil
	}

	a.status = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.NextFilter):
		return a, a.apply(nav.SelectFilter{Key: a.stepFilter(1)})
	case key.Matches(msg, a.keys.PrevFilter):
		return a, a.apply(nav.SelectFilter{Key: a.stepFilter(-1)})
	case key.Matches(msg, a.keys.Tier):
		ti, ok := a.table.TierByLevel(int(msg.String()[0] - '0'))
		if !ok {
			return a, nil
		}
		return a, a.apply(nav.SelectTier{Tier: ti.Key})
	case key.Matches(msg, a.keys.ToggleView):
		v := nav.ViewHeadlines
		if a.state.View == nav.ViewHeadlines {
			v = nav.ViewFeed
		}
		a.viewport.SetYOffset(0)
		return a, a.apply(nav.SetView{View: v})
	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.searchInput.SetValue(a.state.Query)
		a.searchInput.Focus()
		return a, textinput.Blink
	case key.Matches(msg, a.keys.Open):
		if art, ok := a.selected(); ok {
			return a, openBrowserCmd(art.URL)
		}
	case key.Matches(msg, a.keys.ReadLater):
		return a, a.toggleCmd(bookmarks.KindReadLater)
	case key.Matches(msg, a.keys.Favorite):
		return a, a.toggleCmd(bookmarks.KindFavorite)
	case key.Matches(msg, a.keys.Refresh):
		return a, a.apply(nav.Refresh{})
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.searching = false
		a.searchInput.Blur()
		a.searchInput.SetValue("")
		return a, nil
	case "enter":
		query := a.searchInput.Value()
		a.searching = false
		a.searchInput.Blur()
		return a, a.apply(nav.Search{Query: query})
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

// stepFilter returns the key delta entries away from the active filter,
// wrapping at both ends. During a search it starts from the table's edges.
func (a *App) stepFilter(delta int) string {
	keys := a.table.Keys()
	idx := a.table.Index(a.state.Filter)
	if idx < 0 {
		if delta > 0 {
			return keys[0]
		}
		return keys[len(keys)-1]
	}
	n := len(keys)
	return keys[((idx+delta)%n+n)%n]
}

func (a *App) moveCursor(delta int) {
	if a.phase != phaseReady || len(a.articles) == 0 {
		return
	}
	next := a.cursor + delta
	if next < 0 || next >= len(a.articles) {
		return
	}
	a.cursor = next
	a.refreshContent()
}

func (a *App) selected() (newsapi.Article, bool) {
	if a.phase != phaseReady || a.cursor >= len(a.articles) {
		return newsapi.Article{}, false
	}
	return a.articles[a.cursor], true
}

func (a *App) mainWidth() int {
	w := a.width - sidebarWidth - 1
	if w < 20 {
		w = 20
	}
	return w
}

func (a *App) contentHeight() int {
	h := a.height - headerHeight - statusHeight - viewBarHeight
	if h < 3 {
		h = 3
	}
	return h
}

// refreshContent re-renders the article list into the viewport and scrolls
// the cursor into view.
func (a *App) refreshContent() {
	if a.phase != phaseReady {
		a.viewport.SetContent("")
		return
	}
	v := listView{
		articles: a.articles,
		cursor:   a.cursor,
		marks:    a.marks,
		color:    a.table.Color(a.state.ColorKey(a.table)),
		width:    a.mainWidth(),
		now:      a.now(),
	}

	var (
		content string
		starts  []int
	)
	if a.state.View == nav.ViewHeadlines {
		content, starts = renderHeadlines(v)
	} else {
		content, starts = renderFeed(v)
	}
	a.viewport.SetContent(content)
	if a.cursor < len(starts) {
		a.viewport.SetYOffset(scrollTo(a.viewport.YOffset, starts[a.cursor], a.viewport.Height))
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  moreover")
	}
	if a.showHelp {
		return a.renderHelp()
	}

	headerLeft := headerStyle.Render("moreover")
	headerRight := headerDateStyle.Render(a.now().Format("Monday, January 2, 2006"))
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	bodyHeight := a.height - headerHeight - statusHeight
	sidebar := renderSidebar(a.table, a.state, bodyHeight-2)

	main := lipgloss.JoinVertical(lipgloss.Left,
		a.viewBar(),
		placeholderStyle.Render(strings.Repeat("─", a.mainWidth())),
		a.content(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)

	label := ""
	if d, ok := a.table.Lookup(a.state.Filter); ok && !a.state.Searching() {
		label = d.Label
	}
	status := renderStatusBar(statusInfo{
		count:     len(a.articles),
		label:     label,
		phase:     a.phase,
		searching: a.searching,
		message:   a.status,
	}, a.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (a *App) viewBar() string {
	if a.searching {
		return a.searchInput.View()
	}
	color := a.table.Color(a.state.ColorKey(a.table))

	var tabs []string
	if a.table.HasTiers() {
		for _, t := range viewTabs {
			if t.view == a.state.View {
				tabs = append(tabs, tabActiveStyle.Render(t.label))
			} else {
				tabs = append(tabs, tabInactiveStyle.Render(t.label))
			}
		}
	}
	return renderViewBar(a.state.Title(a.table), a.state.TierTag(a.table), color, tabs, a.mainWidth())
}

func (a *App) content() string {
	w, h := a.mainWidth(), a.contentHeight()
	switch a.phase {
	case phaseLoading:
		return centerIn(a.spinner.View()+" Loading news...", w, h)
	case phaseError:
		return centerIn(errorStyle.Render(a.errMsg), w, h)
	case phaseEmpty:
		return centerIn(placeholderStyle.Render(render.NoArticles), w, h)
	}
	return a.viewport.View()
}

var viewTabs = []struct {
	view  nav.View
	label string
}{
	{nav.ViewFeed, "Feed"},
	{nav.ViewHeadlines, "Headlines"},
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
