package profile

import (
	"fmt"

	"github.com/modoterra/logforge/pkg/core"
)

// Validate checks the profile for structural correctness.
func Validate(p *Profile) []error {
	var errs []error

	if p.Version != 1 {
		errs = append(errs, fmt.Errorf("version must be 1, got %d", p.Version))
	}

	if p.Dir == "" {
		errs = append(errs, fmt.Errorf("dir is required"))
	}

	seen := make(map[string]bool)
	for _, c := range p.Categories {
		if _, err := core.ParseCategory(c); err != nil {
			errs = append(errs, fmt.Errorf("categories: %w", err))
			continue
		}
		if seen[c] {
			errs = append(errs, fmt.Errorf("categories: duplicate %q", c))
		}
		seen[c] = true
	}

	return errs
}

// EnabledCategories resolves the profile's category subset; an empty list
// enables all five.
func EnabledCategories(p *Profile) ([]core.Category, error) {
	if len(p.Categories) == 0 {
		return core.Categories(), nil
	}
	var cats []core.Category
	for _, s := range p.Categories {
		c, err := core.ParseCategory(s)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}
