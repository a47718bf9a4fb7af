package catalog

import (
	"errors"
	"testing"
)

func sectorTable(t *testing.T) Table {
	t.Helper()
	tbl, err := ForMode(ModeSector)
	if err != nil {
		t.Fatalf("ForMode(sector): %v", err)
	}
	return tbl
}

func TestForModeUnknown(t *testing.T) {
	_, err := ForMode("tiers")
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestForModeParams(t *testing.T) {
	tests := []struct {
		mode      Mode
		param     string
		def       string
		hasTiers  bool
		wantCount int
	}{
		{ModeSector, "sector", "all", true, 14},
		{ModeCategory, "category", "general", false, 7},
	}
	for _, tt := range tests {
		tbl, err := ForMode(tt.mode)
		if err != nil {
			t.Fatalf("ForMode(%s): %v", tt.mode, err)
		}
		if tbl.Param() != tt.param {
			t.Errorf("%s: param = %q, want %q", tt.mode, tbl.Param(), tt.param)
		}
		if tbl.Default() != tt.def {
			t.Errorf("%s: default = %q, want %q", tt.mode, tbl.Default(), tt.def)
		}
		if tbl.HasTiers() != tt.hasTiers {
			t.Errorf("%s: HasTiers = %v, want %v", tt.mode, tbl.HasTiers(), tt.hasTiers)
		}
		if got := len(tbl.Descriptors()); got != tt.wantCount {
			t.Errorf("%s: %d descriptors, want %d", tt.mode, got, tt.wantCount)
		}
	}
}

func TestTierTag(t *testing.T) {
	tbl := sectorTable(t)
	tests := []struct {
		key  string
		want string
	}{
		{"ai", "Tier V — Self-Actualization"},
		{"sneakers", "Tier IV — Esteem"},
		{"climate", "Tier III — Belonging"},
		{"crypto", "Tier II — Safety & Security"},
		{"energy", "Tier I — Physiological"},
		{"all", ""},
		{"nope", ""},
	}
	for _, tt := range tests {
		if got := tbl.TierTag(tt.key); got != tt.want {
			t.Errorf("TierTag(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestFirstInTier(t *testing.T) {
	tbl := sectorTable(t)
	tests := []struct {
		tier Tier
		want string
	}{
		{TierActualization, "ai"},
		{TierEsteem, "sneakers"},
		{TierBelonging, "geopolitics"},
		{TierSafety, "financial"},
		{TierPhysiological, "energy"},
	}
	for _, tt := range tests {
		d, ok := tbl.FirstInTier(tt.tier)
		if !ok {
			t.Errorf("FirstInTier(%s): not found", tt.tier)
			continue
		}
		if d.Key != tt.want {
			t.Errorf("FirstInTier(%s) = %s, want %s", tt.tier, d.Key, tt.want)
		}
	}

	if _, ok := tbl.FirstInTier(TierNone); ok {
		t.Error("FirstInTier(none) should not match the untiered entry")
	}
}

func TestTiersPyramidOrder(t *testing.T) {
	tbl := sectorTable(t)
	got := tbl.Tiers()
	if len(got) != 5 {
		t.Fatalf("expected 5 tiers, got %d", len(got))
	}
	if got[0].Roman != "V" || got[4].Roman != "I" {
		t.Errorf("expected V..I order, got %s..%s", got[0].Roman, got[4].Roman)
	}
	ti, ok := tbl.TierByLevel(2)
	if !ok || ti.Key != TierSafety {
		t.Errorf("TierByLevel(2) = %v, %v", ti.Key, ok)
	}
}

func TestColorFallsBackToDefault(t *testing.T) {
	tbl := sectorTable(t)
	if got := tbl.Color("unknown"); got != tbl.Color("all") {
		t.Errorf("Color(unknown) = %s, want default %s", got, tbl.Color("all"))
	}
	if tbl.Color("energy") == tbl.Color("ai") {
		t.Error("different tiers should carry different colors")
	}
}

func TestDescriptorsIsCopy(t *testing.T) {
	tbl := sectorTable(t)
	d := tbl.Descriptors()
	d[0].Label = "mutated"
	if got, _ := tbl.Lookup("all"); got.Label != "All Sectors" {
		t.Errorf("table mutated through Descriptors(): %q", got.Label)
	}
}

func TestIndex(t *testing.T) {
	tbl := sectorTable(t)
	if tbl.Index("all") != 0 {
		t.Errorf("Index(all) = %d", tbl.Index("all"))
	}
	if tbl.Index("missing") != -1 {
		t.Errorf("Index(missing) = %d", tbl.Index("missing"))
	}
}
