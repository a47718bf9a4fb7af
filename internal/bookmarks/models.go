package bookmarks

import "time"

// Kind is the list an article is saved to.
type Kind string

const (
	KindReadLater Kind = "read_later"
	KindFavorite  Kind = "favorite"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindReadLater, KindFavorite:
		return Kind(s), true
	}
	return "", false
}

type Bookmark struct {
	URL         string
	Kind        Kind
	Title       string
	Source      string
	Description string
	Image       string
	Published   string
	SavedAt     time.Time
}

// Marks records which lists an article URL is on.
type Marks struct {
	ReadLater bool
	Favorite  bool
}

func (m Marks) Has(k Kind) bool {
	switch k {
	case KindReadLater:
		return m.ReadLater
	case KindFavorite:
		return m.Favorite
	}
	return false
}

type QueryOpts struct {
	Kind   Kind
	Search string
	Limit  int
}
