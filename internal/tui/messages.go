package tui

import (
	"github.com/kalebj25/news-aggregator/internal/bookmarks"
	"github.com/kalebj25/news-aggregator/internal/newsapi"
)

// newsLoadedMsg carries the generation of the request that produced it.
type newsLoadedMsg struct {
	gen    uint64
	result newsapi.Result
}

type marksLoadedMsg struct {
	marks map[string]bookmarks.Marks
	err   error
}

type bookmarkToggledMsg struct {
	url   string
	kind  bookmarks.Kind
	saved bool
	err   error
}

type openFailedMsg struct {
	err error
}
