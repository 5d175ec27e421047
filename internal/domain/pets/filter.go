package pets

import (
	"cmp"
	"slices"
	"strings"
)

// criteriaFromArgs lee los argumentos ya validados de filter_pets.
// Los números llegan como float64 (modelo de encoding/json).
func criteriaFromArgs(args map[string]any) Criteria {
	c := Criteria{SortBy: SortName}

	if s, ok := args["type_filter"].(string); ok {
		c.TypeFilter = s
	}
	if s, ok := args["sort_by"].(string); ok && s != "" {
		c.SortBy = SortKey(s)
	}
	if n, err := toInt(args["max_price"]); err == nil {
		c.MaxPrice = n
	}
	if n, err := toInt(args["min_price"]); err == nil {
		c.MinPrice = n
	}
	return c
}

// applyCriteria filtra (tipo, max_price, min_price) y después ordena.
// No modifica all.
func applyCriteria(all []Pet, c Criteria) []Pet {
	out := make([]Pet, 0, len(all))
	for _, p := range all {
		if c.TypeFilter != "" && !strings.EqualFold(p.Type, c.TypeFilter) {
			continue
		}
		if c.MaxPrice != 0 && p.Price > c.MaxPrice {
			continue
		}
		if c.MinPrice != 0 && p.Price < c.MinPrice {
			continue
		}
		out = append(out, p)
	}

	sortPets(out, c.SortBy)
	return out
}

// sortPets es estable; cualquier key desconocida ordena por nombre.
func sortPets(ps []Pet, key SortKey) {
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(ps, func(a, b Pet) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(ps, func(a, b Pet) int { return cmp.Compare(b.Price, a.Price) })
	case SortAgeAsc:
		slices.SortStableFunc(ps, func(a, b Pet) int { return cmp.Compare(a.Age, b.Age) })
	case SortAgeDesc:
		slices.SortStableFunc(ps, func(a, b Pet) int { return cmp.Compare(b.Age, a.Age) })
	default:
		slices.SortStableFunc(ps, func(a, b Pet) int { return strings.Compare(a.Name, b.Name) })
	}
}

func filterByType(all []Pet, petType string) []Pet {
	out := make([]Pet, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(p.Type, petType) {
			out = append(out, p)
		}
	}
	return out
}

func truncate(ps []Pet) []Pet {
	if len(ps) > MaxResults {
		ps = ps[:MaxResults]
	}
	if ps == nil {
		return []Pet{}
	}
	return ps
}
