package strategy

// Resolve returns a displayable strategy for any id. Lookup order is the
// default catalog, then customs matched by exact, raw or normalized id, then
// customs whose persisted slug key equals the id's, then a synthesized entry.
func Resolve(strategyID string, customs []CustomStrategy) Strategy {
	normalized := NormalizeID(strategyID)
	if s, ok := LookupDefault(normalized); ok {
		return s
	}
	for _, c := range customs {
		if c.ID == normalized || c.ID == strategyID || NormalizeID(c.ID) == normalized {
			return customDisplay(c)
		}
	}
	if key := slugKey(strategyID); key != "" {
		for _, c := range customs {
			if slugKey(c.ID) == key {
				return customDisplay(c)
			}
		}
	}
	return Strategy{
		ID:          normalized,
		Name:        FormatName(normalized),
		Description: NoDescription,
	}
}

func customDisplay(c CustomStrategy) Strategy {
	desc := NoDescription
	if c.Description != nil && *c.Description != "" {
		desc = *c.Description
	}
	name := c.Name
	if name == "" {
		name = FormatName(c.ID)
	}
	return Strategy{ID: c.ID, Name: name, Description: desc}
}

// ResolveAll resolves ids in order.
func ResolveAll(ids []string, customs []CustomStrategy) []Strategy {
	out := make([]Strategy, 0, len(ids))
	for _, id := range ids {
		out = append(out, Resolve(id, customs))
	}
	return out
}
