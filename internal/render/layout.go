package render

import "github.com/kalebj25/news-aggregator/internal/newsapi"

// CardKind is the positional layout a feed card gets.
type CardKind int

const (
	CardHero CardKind = iota
	CardStandard
	CardWide
	// CardPlain falls back to standard styling without an explicit class.
	CardPlain
)

const (
	heroIndex    = 0
	lastStandard = 4
	wideIndex    = 5
	lastImage    = 2
)

// LayoutFor depends on the index only.
func LayoutFor(i int) CardKind {
	switch {
	case i == heroIndex:
		return CardHero
	case i > heroIndex && i <= lastStandard:
		return CardStandard
	case i == wideIndex:
		return CardWide
	default:
		return CardPlain
	}
}

func (k CardKind) Class() string {
	switch k {
	case CardHero:
		return "news-card card-hero"
	case CardWide:
		return "news-card card-wide"
	default:
		return "news-card"
	}
}

func (k CardKind) String() string {
	switch k {
	case CardHero:
		return "hero"
	case CardStandard:
		return "standard"
	case CardWide:
		return "wide"
	default:
		return "plain"
	}
}

// ShowImage is true for the first three cards when the article has an image.
func ShowImage(i int, a newsapi.Article) bool {
	return a.Image != "" && i >= 0 && i <= lastImage
}

// ShowDescription hides the description only on a hero that shows an image.
func ShowDescription(i int, a newsapi.Article) bool {
	return !ShowImage(i, a) || i != heroIndex
}

const noDescription = "No description available."

// Description returns the article description or the placeholder text.
func Description(a newsapi.Article) string {
	if a.Description == "" {
		return noDescription
	}
	return a.Description
}
