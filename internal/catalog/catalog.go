package catalog

import (
	"errors"
	"fmt"
)

// Mode selects which filter taxonomy the dashboard runs with.
type Mode string

const (
	ModeSector   Mode = "sector"
	ModeCategory Mode = "category"
)

// ErrUnknownMode is returned by ForMode for anything other than sector or category.
var ErrUnknownMode = errors.New("unknown mode")

// Tier is a Maslow-hierarchy grouping attached to sectors.
type Tier string

const (
	TierNone          Tier = ""
	TierActualization Tier = "actualization"
	TierEsteem        Tier = "esteem"
	TierBelonging     Tier = "belonging"
	TierSafety        Tier = "safety"
	TierPhysiological Tier = "physiological"
)

type TierInfo struct {
	Key   Tier
	Label string
	Roman string
	Color string
	Level int // 1 (physiological) .. 5 (actualization)
}

// Descriptor is one selectable filter: a sector or a legacy category.
type Descriptor struct {
	Key   string
	Label string
	Tier  Tier
	Color string
	Icon  string
}

const colorAccent = "#F25D94"

var tiers = []TierInfo{
	{Key: TierActualization, Label: "Self-Actualization", Roman: "V", Color: "#8B5CF6", Level: 5},
	{Key: TierEsteem, Label: "Esteem", Roman: "IV", Color: "#EC4899", Level: 4},
	{Key: TierBelonging, Label: "Belonging", Roman: "III", Color: "#3B82F6", Level: 3},
	{Key: TierSafety, Label: "Safety & Security", Roman: "II", Color: "#10B981", Level: 2},
	{Key: TierPhysiological, Label: "Physiological", Roman: "I", Color: "#F59E0B", Level: 1},
}

func tierColor(t Tier) string {
	for _, ti := range tiers {
		if ti.Key == t {
			return ti.Color
		}
	}
	return colorAccent
}

func sector(key, label string, tier Tier, icon string) Descriptor {
	return Descriptor{Key: key, Label: label, Tier: tier, Color: tierColor(tier), Icon: icon}
}

var sectors = []Descriptor{
	sector("all", "All Sectors", TierNone, "◉"),
	sector("ai", "AI / Machine Learning", TierActualization, "🧠"),
	sector("technology", "Technology", TierActualization, "💻"),
	sector("space", "Space / Aerospace", TierActualization, "🚀"),
	sector("sneakers", "Sneakers / Streetwear", TierEsteem, "👟"),
	sector("geopolitics", "Global / Geopolitics", TierBelonging, "🌍"),
	sector("climate", "Climate / ESG", TierBelonging, "🌱"),
	sector("financial", "Financial / Markets", TierSafety, "📈"),
	sector("realestate", "Real Estate", TierSafety, "🏠"),
	sector("crypto", "Crypto / Blockchain", TierSafety, "₿"),
	sector("commodities", "Commodities", TierSafety, "⛏"),
	sector("energy", "Energy", TierPhysiological, "⚡"),
	sector("healthcare", "Healthcare / Pharma", TierPhysiological, "💊"),
	sector("automotive", "Automotive", TierPhysiological, "🚗"),
}

var categories = []Descriptor{
	{Key: "general", Label: "Top Stories", Color: colorAccent, Icon: "📰"},
	{Key: "business", Label: "Business", Color: "#10B981", Icon: "💼"},
	{Key: "technology", Label: "Technology", Color: "#8B5CF6", Icon: "💻"},
	{Key: "science", Label: "Science", Color: "#3B82F6", Icon: "🔬"},
	{Key: "health", Label: "Health", Color: "#F59E0B", Icon: "🩺"},
	{Key: "sports", Label: "Sports", Color: "#EF4444", Icon: "🏆"},
	{Key: "entertainment", Label: "Entertainment", Color: "#EC4899", Icon: "🎬"},
}

// Table is the immutable filter configuration for one mode.
type Table struct {
	mode    Mode
	param   string
	def     string
	entries []Descriptor
	tiers   []TierInfo
}

// ForMode returns the filter table for mode.
func ForMode(mode Mode) (Table, error) {
	switch mode {
	case ModeSector:
		return Table{mode: ModeSector, param: "sector", def: "all", entries: sectors, tiers: tiers}, nil
	case ModeCategory:
		return Table{mode: ModeCategory, param: "category", def: "general", entries: categories}, nil
	default:
		return Table{}, fmt.Errorf("%w: %q (valid: sector, category)", ErrUnknownMode, mode)
	}
}

func (t Table) Mode() Mode { return t.mode }

// Param is the query parameter name the backend expects for this mode.
func (t Table) Param() string { return t.param }

func (t Table) Default() string { return t.def }

// HasTiers reports whether the table groups entries into Maslow tiers.
func (t Table) HasTiers() bool { return len(t.tiers) > 0 }

func (t Table) Lookup(key string) (Descriptor, bool) {
	for _, d := range t.entries {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Descriptors returns the entries in display order.
func (t Table) Descriptors() []Descriptor {
	out := make([]Descriptor, len(t.entries))
	copy(out, t.entries)
	return out
}

// Keys returns the entry keys in display order.
func (t Table) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, d := range t.entries {
		keys[i] = d.Key
	}
	return keys
}

// Index returns the display position of key, or -1.
func (t Table) Index(key string) int {
	for i, d := range t.entries {
		if d.Key == key {
			return i
		}
	}
	return -1
}

// Tiers returns tier metadata in pyramid order, top (V) to bottom (I).
func (t Table) Tiers() []TierInfo {
	out := make([]TierInfo, len(t.tiers))
	copy(out, t.tiers)
	return out
}

func (t Table) Tier(key Tier) (TierInfo, bool) {
	for _, ti := range t.tiers {
		if ti.Key == key {
			return ti, true
		}
	}
	return TierInfo{}, false
}

// TierByLevel maps a pyramid level (1..5) to its tier.
func (t Table) TierByLevel(level int) (TierInfo, bool) {
	for _, ti := range t.tiers {
		if ti.Level == level {
			return ti, true
		}
	}
	return TierInfo{}, false
}

// FirstInTier returns the first entry, in display order, belonging to tier.
func (t Table) FirstInTier(tier Tier) (Descriptor, bool) {
	if tier == TierNone {
		return Descriptor{}, false
	}
	for _, d := range t.entries {
		if d.Tier == tier {
			return d, true
		}
	}
	return Descriptor{}, false
}

// TierTag renders the view-bar tag for key, e.g. "Tier II — Safety & Security".
// Keys without a tier yield "".
func (t Table) TierTag(key string) string {
	d, ok := t.Lookup(key)
	if !ok || d.Tier == TierNone {
		return ""
	}
	ti, ok := t.Tier(d.Tier)
	if !ok {
		return ""
	}
	return fmt.Sprintf("Tier %s — %s", ti.Roman, ti.Label)
}

// Color returns the accent color for key, falling back to the default entry.
func (t Table) Color(key string) string {
	if d, ok := t.Lookup(key); ok {
		return d.Color
	}
	if d, ok := t.Lookup(t.def); ok {
		return d.Color
	}
	return colorAccent
}
