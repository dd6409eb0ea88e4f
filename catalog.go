package cityvizor

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Catalog is a read-only in-memory view of the profiles held by a ProfileSource
type Catalog struct {
	mu       sync.RWMutex
	source   ProfileSource
	profiles map[int64]*Profile
}

// NewCatalog creates an empty catalog; call Load to fill it
func NewCatalog(source ProfileSource) *Catalog {
	return &Catalog{
		source:   source,
		profiles: make(map[int64]*Profile),
	}
}

// Load replaces the catalog contents with the profiles from the source. The
// previous contents survive a failed load.
func (c *Catalog) Load(ctx context.Context) error {
	profiles, err := c.source.LoadProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	data := make(map[int64]*Profile, len(profiles))
	for _, p := range profiles {
		if _, exists := data[p.ID]; exists {
			return fmt.Errorf("%w: %d", ErrDuplicateProfile, p.ID)
		}
		data[p.ID] = copyProfile(p)
	}

	c.mu.Lock()
	c.profiles = data
	c.mu.Unlock()

	return nil
}

// Get returns a copy of the profile with the given id
func (c *Catalog) Get(id int64) (*Profile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return copyProfile(p), nil
}

// Query returns copies of the matching profiles ordered by id
func (c *Catalog) Query(query Query) ([]*Profile, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	results := make([]*Profile, 0)
	for _, p := range c.profiles {
		if p.Record().MatchesQuery(query) {
			results = append(results, copyProfile(p))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})

	return paginate(results, query), nil
}

// Size returns the number of profiles in the catalog
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.profiles)
}

func copyProfile(p *Profile) *Profile {
	cp := *p
	cp.Entity = copyEntity(p.Entity)
	return &cp
}

// copyEntity deep-copies the JSON shapes decodeEntity produces; other values
// are returned as is
func copyEntity(v any) any {
	switch val := v.(type) {
	case map[string]interface{}:
		cp := make(map[string]interface{}, len(val))
		for k, item := range val {
			cp[k] = copyEntity(item)
		}
		return cp
	case []interface{}:
		cp := make([]interface{}, len(val))
		for i, item := range val {
			cp[i] = copyEntity(item)
		}
		return cp
	default:
		return v
	}
}
