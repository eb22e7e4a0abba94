package headhunter

import (
	"context"
	"strings"
)

const (
	countryName    = "казахстан"
	cityName       = "алматы"
	cityRegionName = "алматинская область"
)

// Area is one node of the hh.ru area tree.
type Area struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Areas []Area `json:"areas"`
}

// AreaIDs is the resolved region scope for the job-board scan: the city
// ids searched first, with the country id as the broader fallback.
type AreaIDs struct {
	Country string
	City    []string
}

// ResolveAreas resolves and caches the region's area identifiers. The
// tree is fetched once per process; later calls return the cached value
// (or the cached error).
func (c *Client) ResolveAreas(ctx context.Context) (AreaIDs, error) {
	c.areaOnce.Do(func() {
		c.areaIDs, c.areaErr = c.resolveAreas(ctx)
	})
	return c.areaIDs, c.areaErr
}

func (c *Client) resolveAreas(ctx context.Context) (AreaIDs, error) {
	var tree []Area
	if err := c.getJSON(ctx, c.APIURL+"/areas", nil, &tree); err != nil {
		return AreaIDs{}, err
	}

	country := findArea(tree, func(a Area) bool {
		return strings.ToLower(a.Name) == countryName
	})
	if country == nil {
		return AreaIDs{}, nil
	}

	ids := AreaIDs{Country: country.ID}
	city := findArea(country.Areas, func(a Area) bool {
		return strings.ToLower(a.Name) == cityName
	})
	region := findArea(country.Areas, func(a Area) bool {
		return strings.ToLower(a.Name) == cityRegionName
	})
	for _, a := range []*Area{city, region} {
		if a != nil && a.ID != "" {
			ids.City = append(ids.City, a.ID)
		}
	}
	return ids, nil
}

// findArea walks the area tree depth-first and returns the first node
// matching the predicate.
func findArea(areas []Area, pred func(Area) bool) *Area {
	for i := range areas {
		if pred(areas[i]) {
			return &areas[i]
		}
		if found := findArea(areas[i].Areas, pred); found != nil {
			return found
		}
	}
	return nil
}
