package strategy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/yungbote/regula-backend/internal/normalization"
)

// CustomStrategy is a user-defined strategy after normalization.
type CustomStrategy struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// PayloadEntry is the persisted value of one custom strategy.
type PayloadEntry struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Payload is the persisted shape of a sub-plan's custom strategies, keyed by id.
type Payload map[string]PayloadEntry

// Input is one of the shapes the customStrategies field has historically
// accepted: EmptyInput, ListInput, MapInput or RejectedInput.
type Input interface {
	customInput()
}

type EmptyInput struct{}

// ListInput holds an array of strings or {id?, name, description?} objects.
type ListInput struct {
	Items []ListItem
}

type ListItem struct {
	ID          string
	Name        string
	Description *string
}

// MapInput holds an object of key -> string or {name?, description?}, in
// document order.
type MapInput struct {
	Entries []MapEntry
}

type MapEntry struct {
	Key         string
	Name        string
	Description *string
}

// RejectedInput is any value that matches none of the accepted shapes.
type RejectedInput struct {
	Reason string
}

func (EmptyInput) customInput()    {}
func (ListInput) customInput()     {}
func (MapInput) customInput()      {}
func (RejectedInput) customInput() {}

// ParseInput classifies untyped JSON into one of the Input variants. Array
// elements of an unsupported type become nameless items so later positions
// keep their index; map values of an unsupported type are skipped.
func ParseInput(raw json.RawMessage) Input {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return EmptyInput{}
	}
	switch trimmed[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return RejectedInput{Reason: err.Error()}
		}
		items := make([]ListItem, 0, len(elems))
		for _, elem := range elems {
			items = append(items, parseListItem(elem))
		}
		return ListInput{Items: items}
	case '{':
		entries, err := parseMapEntries(trimmed)
		if err != nil {
			return RejectedInput{Reason: err.Error()}
		}
		return MapInput{Entries: entries}
	default:
		return RejectedInput{Reason: "unsupported custom strategies shape"}
	}
}

// FromEntries wraps already-typed entries as a ListInput.
func FromEntries(entries []CustomStrategy) Input {
	items := make([]ListItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ListItem{ID: e.ID, Name: e.Name, Description: e.Description})
	}
	return ListInput{Items: items}
}

// FromPayload wraps a persisted payload as a MapInput ordered by key.
func FromPayload(p Payload) Input {
	if len(p) == 0 {
		return EmptyInput{}
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]MapEntry, 0, len(keys))
	for _, k := range keys {
		v := p[k]
		entries = append(entries, MapEntry{Key: k, Name: v.Name, Description: v.Description})
	}
	return MapInput{Entries: entries}
}

// NormalizeCustom converts any Input into custom entries. An explicit id or
// map key is kept as the entry id; only entries without one get a slug id.
// Entries without a usable name are dropped; the result is never nil.
func NormalizeCustom(in Input) []CustomStrategy {
	out := []CustomStrategy{}
	switch v := in.(type) {
	case ListInput:
		for i, item := range v.Items {
			name := strings.TrimSpace(item.Name)
			if name == "" {
				continue
			}
			id := strings.TrimSpace(item.ID)
			if id == "" {
				id = customID(name, i)
			}
			out = append(out, CustomStrategy{
				ID:          id,
				Name:        name,
				Description: normalization.TrimmedOrNil(item.Description),
			})
		}
	case MapInput:
		for i, entry := range v.Entries {
			key := strings.TrimSpace(entry.Key)
			name := strings.TrimSpace(entry.Name)
			if name == "" {
				name = key
			}
			if name == "" {
				continue
			}
			id := key
			if id == "" {
				id = customID(name, i)
			}
			out = append(out, CustomStrategy{
				ID:          id,
				Name:        name,
				Description: normalization.TrimmedOrNil(entry.Description),
			})
		}
	}
	return out
}

// NormalizeCustomJSON is ParseInput followed by NormalizeCustom.
func NormalizeCustomJSON(raw json.RawMessage) []CustomStrategy {
	return NormalizeCustom(ParseInput(raw))
}

// BuildPayload is the inverse of NormalizeCustom, used before persisting. Ids
// lacking the custom prefix get a synthesized one and blank descriptions are
// dropped.
func BuildPayload(entries []CustomStrategy) Payload {
	out := make(Payload, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = customID(name, i)
		} else if !IsCustomID(id) {
			id = customID(id, i)
		}
		id = uniqueKey(out, id)
		out[id] = PayloadEntry{
			Name:        name,
			Description: normalization.TrimmedOrNil(e.Description),
		}
	}
	return out
}

// Entries lists the payload as custom entries ordered by id.
func (p Payload) Entries() []CustomStrategy {
	return NormalizeCustom(FromPayload(p))
}

func customID(seed string, index int) string {
	slug := normalization.Slug(seed)
	if slug == "" {
		return fmt.Sprintf("%s%d", CustomPrefix, index)
	}
	if IsCustomID(slug) {
		return slug
	}
	return CustomPrefix + slug
}

// slugKey is the custom id an arbitrary id would be persisted under, or "" when
// it has no slug.
func slugKey(id string) string {
	if normalization.Slug(id) == "" {
		return ""
	}
	return customID(id, 0)
}

func uniqueKey(p Payload, id string) string {
	if _, taken := p[id]; !taken {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", id, n)
		if _, taken := p[candidate]; !taken {
			return candidate
		}
	}
}

func parseListItem(raw json.RawMessage) ListItem {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ListItem{Name: s}
	}
	obj, ok := decodeObject(raw)
	if !ok {
		return ListItem{}
	}
	return ListItem{
		ID:          stringField(obj, "id"),
		Name:        stringField(obj, "name"),
		Description: optionalStringField(obj, "description"),
	}
}

func parseMapEntries(raw []byte) ([]MapEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	entries := []MapEntry{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		var s string
		if err := json.Unmarshal(val, &s); err == nil {
			entries = append(entries, MapEntry{Key: key, Name: s})
			continue
		}
		if obj, ok := decodeObject(val); ok {
			entries = append(entries, MapEntry{
				Key:         key,
				Name:        stringField(obj, "name"),
				Description: optionalStringField(obj, "description"),
			})
		}
	}
	return entries, nil
}

func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func stringField(obj map[string]json.RawMessage, key string) string {
	if p := optionalStringField(obj, key); p != nil {
		return *p
	}
	return ""
}

func optionalStringField(obj map[string]json.RawMessage, key string) *string {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}
