package strategy

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/yungbote/regula-backend/internal/pkg/pointers"
)

func TestListDefaultStrategiesStable(t *testing.T) {
	a := ListDefaultStrategies()
	b := ListDefaultStrategies()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("unexpected catalog sizes: %d %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order changed at %d: %v vs %v", i, a[i], b[i])
		}
	}
	a[0].Name = "mutated"
	if ListDefaultStrategies()[0].Name == "mutated" {
		t.Fatalf("catalog leaked a mutable reference")
	}
}

func TestNormalizeIDIdempotent(t *testing.T) {
	inputs := []string{"", "pomodoro", "pomodoro_technique", "mindmap", "custom_flash", "unknown id"}
	for raw := range legacyAliases {
		inputs = append(inputs, raw)
	}
	for _, s := range ListDefaultStrategies() {
		inputs = append(inputs, s.ID)
	}
	for _, in := range inputs {
		once := NormalizeID(in)
		if twice := NormalizeID(once); twice != once {
			t.Fatalf("not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestLegacyAliasesTargetDefaults(t *testing.T) {
	for raw, target := range legacyAliases {
		if _, ok := LookupDefault(target); !ok {
			t.Fatalf("alias %q points to unknown id %q", raw, target)
		}
	}
}

func TestNormalizeIDs(t *testing.T) {
	got := NormalizeIDs([]string{"pomodoro_technique", "custom_x", "pomodoro"})
	want := []string{"pomodoro", "custom_x", "pomodoro"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestFormatName(t *testing.T) {
	cases := map[string]string{
		"custom_flash_cards": "Flash Cards",
		"active_recall":      "Active Recall",
		"x":                  "X",
		"":                   "",
	}
	for in, want := range cases {
		if got := FormatName(in); got != want {
			t.Fatalf("FormatName(%q)=%q want %q", in, got, want)
		}
	}
}

func TestParseInputShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"absent", "", "empty"},
		{"null", "null", "empty"},
		{"list", `["a", {"name": "b"}]`, "list"},
		{"map", `{"k": "v"}`, "map"},
		{"number", `42`, "rejected"},
		{"broken", `[1,`, "rejected"},
	}
	for _, tc := range cases {
		var got string
		switch ParseInput(json.RawMessage(tc.raw)).(type) {
		case EmptyInput:
			got = "empty"
		case ListInput:
			got = "list"
		case MapInput:
			got = "map"
		case RejectedInput:
			got = "rejected"
		}
		if got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeCustomJSONList(t *testing.T) {
	raw := `["Flash Cards", {"name": "  Teach Back ", "description": " explain "}, {"id": "custom_given", "name": "Given"}, {"description": "no name"}, 7, "   ", "!!!"]`
	got := NormalizeCustomJSON(json.RawMessage(raw))
	if len(got) != 4 {
		t.Fatalf("expected 4 entries, got %d: %+v", len(got), got)
	}
	if got[0].ID != "custom_flash_cards" || got[0].Name != "Flash Cards" || got[0].Description != nil {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[1].ID != "custom_teach_back" || got[1].Description == nil || *got[1].Description != "explain" {
		t.Fatalf("unexpected second entry: %+v", got[1])
	}
	if got[2].ID != "custom_given" {
		t.Fatalf("explicit id not kept: %+v", got[2])
	}
	// "!!!" has no slug, so its id falls back to its position in the input.
	if got[3].ID != "custom_6" || got[3].Name != "!!!" {
		t.Fatalf("unexpected slug fallback: %+v", got[3])
	}
}

func TestNormalizeCustomJSONMap(t *testing.T) {
	raw := `{"custom_mnemonics": {"name": "Mnemonics", "description": ""}, "Cornell Notes": "", "custom_odd": 3, "custom_rhymes": {"description": "sing it"}}`
	got := NormalizeCustomJSON(json.RawMessage(raw))
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %+v", got)
	}
	if got[0].ID != "custom_mnemonics" || got[0].Description != nil {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[1].ID != "Cornell Notes" || got[1].Name != "Cornell Notes" {
		t.Fatalf("key not kept as id and name fallback: %+v", got[1])
	}
	if got[2].Name != "custom_rhymes" || *got[2].Description != "sing it" {
		t.Fatalf("unexpected third entry: %+v", got[2])
	}
}

func TestNormalizeCustomRejectedIsEmpty(t *testing.T) {
	got := NormalizeCustomJSON(json.RawMessage(`"just a string"`))
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestBuildPayload(t *testing.T) {
	p := BuildPayload([]CustomStrategy{
		{Name: "Flash Cards", Description: pointers.String("  ")},
		{ID: "legacy", Name: "Legacy One", Description: pointers.String(" keep ")},
		{ID: "custom_x", Name: "X"},
		{Name: "flash cards"},
		{Name: "   "},
	})
	if len(p) != 4 {
		t.Fatalf("expected 4 keys, got %v", p)
	}
	if e, ok := p["custom_flash_cards"]; !ok || e.Description != nil {
		t.Fatalf("blank description not dropped: %+v", e)
	}
	if e, ok := p["custom_legacy"]; !ok || e.Description == nil || *e.Description != "keep" {
		t.Fatalf("unprefixed id not synthesized: %v", p)
	}
	if _, ok := p["custom_x"]; !ok {
		t.Fatalf("prefixed id not kept: %v", p)
	}
	if e, ok := p["custom_flash_cards_2"]; !ok || e.Name != "flash cards" {
		t.Fatalf("colliding id not suffixed: %v", p)
	}
}

func TestCustomRoundTripKeepsNames(t *testing.T) {
	entries := []CustomStrategy{
		{Name: "Flash Cards"},
		{ID: "custom_teach", Name: "Teach Back", Description: pointers.String("explain")},
		{ID: "odd id", Name: "Odd"},
	}
	first := NormalizeCustom(FromPayload(BuildPayload(entries)))
	second := NormalizeCustom(FromPayload(BuildPayload(first)))

	names := func(in []CustomStrategy) []string {
		out := make([]string, 0, len(in))
		for _, e := range in {
			out = append(out, e.Name)
		}
		sort.Strings(out)
		return out
	}
	want := names(entries)
	got := names(first)
	if len(got) != len(want) {
		t.Fatalf("names changed: %v vs %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names changed: %v vs %v", got, want)
		}
	}
	if len(first) != len(second) {
		t.Fatalf("round trip not stable: %+v vs %+v", first, second)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("ids not stable: %q vs %q", first[i].ID, second[i].ID)
		}
	}
}

func TestResolve(t *testing.T) {
	customs := []CustomStrategy{
		{ID: "custom_flash_cards", Name: "Flash Cards", Description: pointers.String("cards")},
		{ID: "mind_maps_v2", Name: "Old Maps"},
	}
	cases := []struct {
		id       string
		wantID   string
		wantName string
	}{
		{"pomodoro_technique", "pomodoro", "Pomodoro"},
		{"active_recall", "active_recall", "Active Recall"},
		{"custom_flash_cards", "custom_flash_cards", "Flash Cards"},
		{"mind_maps_v2", "mind_maps_v2", "Old Maps"},
		{"custom_gone_missing", "custom_gone_missing", "Gone Missing"},
	}
	for _, tc := range cases {
		got := Resolve(tc.id, customs)
		if got.ID != tc.wantID || got.Name != tc.wantName {
			t.Fatalf("Resolve(%q)=%+v", tc.id, got)
		}
		if got.Description == "" {
			t.Fatalf("Resolve(%q) returned empty description", tc.id)
		}
	}
	if got := Resolve("mind_maps_v2", customs); got.Description != NoDescription {
		t.Fatalf("expected placeholder description, got %q", got.Description)
	}
}

func TestResolveTotal(t *testing.T) {
	ids := []string{"", " ", "custom_", "__", "pomodoro", "💡", "custom_💡"}
	customSets := [][]CustomStrategy{nil, {}, {{ID: "", Name: ""}}, {{ID: "custom_", Name: "Blank"}}}
	for _, id := range ids {
		for _, cs := range customSets {
			got := Resolve(id, cs)
			if got.Description == "" {
				t.Fatalf("Resolve(%q, %v) gave empty description", id, cs)
			}
		}
	}
}

func TestCustomRoundTripKeepsUnsluggedIDs(t *testing.T) {
	entries := []CustomStrategy{
		{ID: "custom_Flash", Name: "Flash", Description: pointers.String("cards")},
		{ID: "custom_Flash Cards", Name: "Flash Cards"},
		{ID: "flashcards", Name: "Legacy Cards"},
	}
	payload := BuildPayload(entries)
	for _, key := range []string{"custom_Flash", "custom_Flash Cards", "custom_flashcards"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("payload missing %q: %v", key, payload)
		}
	}

	first := payload.Entries()
	second := BuildPayload(first).Entries()
	if len(first) != len(entries) || len(second) != len(first) {
		t.Fatalf("entries lost: first=%+v second=%+v", first, second)
	}
	for i := range first {
		if _, ok := payload[first[i].ID]; !ok {
			t.Fatalf("read id %q is not a payload key", first[i].ID)
		}
		if first[i].ID != second[i].ID {
			t.Fatalf("ids not stable: %q vs %q", first[i].ID, second[i].ID)
		}
	}
}

func TestResolvePersistedCustomIDs(t *testing.T) {
	customs := BuildPayload([]CustomStrategy{
		{ID: "custom_Flash", Name: "Flash", Description: pointers.String("cards")},
		{ID: "flashcards", Name: "Legacy Cards", Description: pointers.String("old")},
	}).Entries()

	cases := []struct {
		selected string
		wantName string
		wantDesc string
	}{
		{"custom_Flash", "Flash", "cards"},
		{"flashcards", "Legacy Cards", "old"},
		{"custom_flashcards", "Legacy Cards", "old"},
	}
	for _, tc := range cases {
		got := Resolve(tc.selected, customs)
		if got.Name != tc.wantName || got.Description != tc.wantDesc {
			t.Fatalf("Resolve(%q)=%+v", tc.selected, got)
		}
	}
	if got := Resolve("flash_cards_unknown", customs); got.Description != NoDescription {
		t.Fatalf("unrelated id matched a custom: %+v", got)
	}
}
