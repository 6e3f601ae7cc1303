// Package geofence decides whether geocoder candidates lie inside the target
// district. It is pure: no state, no I/O.
//
// A candidate is accepted when its coordinates fall inside the district
// bounding box OR its address names the district. The two signals are
// independent on purpose: the geocoder sometimes returns a town centre just
// outside the box, and sometimes returns in-box coordinates with sparse
// address details.
package geofence

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNoMatch signals that no candidate was judged to lie in the district.
var ErrNoMatch = errors.New("no candidate matched the district")

// BoundingBox is a closed rectangular lat/lon region.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point falls within the box, boundaries included.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Address is the optional address block of a geocoder candidate.
type Address struct {
	County        string `json:"county"`
	StateDistrict string `json:"state_district"`
	District      string `json:"district"`
	City          string `json:"city"`
	Town          string `json:"town"`
}

// Candidate is one geocoder result. Lat and Lon arrive string-encoded, as the
// upstream API delivers them.
type Candidate struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
}

// Coords parses the candidate's coordinates. ok is false when either value is
// missing, non-numeric, or not finite.
func (c Candidate) Coords() (lat, lon float64, ok bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(c.Lat), 64)
	if err != nil || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(c.Lon), 64)
	if err != nil || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, 0, false
	}
	return lat, lon, true
}

// InDistrict reports whether a single candidate is judged to lie in the
// district. Unparseable coordinates just fail the bounds check; a missing
// address block just fails the name check. Neither is an error.
func InDistrict(c Candidate, districtName string, box BoundingBox) bool {
	if lat, lon, ok := c.Coords(); ok && box.Contains(lat, lon) {
		return true
	}

	name := strings.ToLower(districtName)
	for _, field := range []string{c.Address.County, c.Address.StateDistrict, c.Address.District} {
		if field != "" && strings.Contains(strings.ToLower(field), name) {
			return true
		}
	}
	for _, field := range []string{c.Address.City, c.Address.Town} {
		if field != "" && strings.EqualFold(field, districtName) {
			return true
		}
	}
	return false
}

// FirstInDistrict returns the first accepted candidate in input order, or
// ErrNoMatch when none is accepted.
func FirstInDistrict(candidates []Candidate, districtName string, box BoundingBox) (Candidate, error) {
	for _, c := range candidates {
		if InDistrict(c, districtName, box) {
			return c, nil
		}
	}
	return Candidate{}, ErrNoMatch
}
