package award

import (
	"fmt"
	"sort"
	"time"
)

// =============================================================================
// CATALOG - Award versions by effective date
// =============================================================================

// Catalog holds every loaded award version. It is read-only after NewCatalog.
type Catalog struct {
	byCode map[string][]*Award // ascending EffectiveFrom
}

// NewCatalog validates and indexes award versions.
func NewCatalog(awards ...*Award) (*Catalog, error) {
	c := &Catalog{byCode: make(map[string][]*Award)}
	for _, a := range awards {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		for _, existing := range c.byCode[a.Code] {
			if existing.EffectiveFrom.Equal(a.EffectiveFrom) {
				return nil, fmt.Errorf("award %s: two versions effective %s: %w",
					a.Code, a.EffectiveFrom.Format("2006-01-02"), ErrInvalidAward)
			}
		}
		c.byCode[a.Code] = append(c.byCode[a.Code], a)
	}
	for _, versions := range c.byCode {
		sort.Slice(versions, func(i, j int) bool {
			return versions[i].EffectiveFrom.Before(versions[j].EffectiveFrom)
		})
	}
	return c, nil
}

// Codes returns the award codes in the catalog, sorted.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.byCode))
	for code := range c.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Versions returns all versions of an award, oldest first.
func (c *Catalog) Versions(code string) []*Award {
	return c.byCode[code]
}

// Latest returns the most recent version of an award.
func (c *Catalog) Latest(code string) (*Award, error) {
	versions := c.byCode[code]
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAward, code)
	}
	return versions[len(versions)-1], nil
}

// For returns the version of an award in force on a date.
func (c *Catalog) For(code string, on time.Time) (*Award, error) {
	versions := c.byCode[code]
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAward, code)
	}
	for i := len(versions) - 1; i >= 0; i-- {
		if !versions[i].EffectiveFrom.After(on) {
			return versions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s on %s", ErrNoVersionInForce, code, on.Format("2006-01-02"))
}
