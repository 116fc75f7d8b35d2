package domain

import (
	"fmt"
	"math"
	"strings"
)

// ImageAssetPrefix is where location images are served from.
const ImageAssetPrefix = "/assets/images/dbimg/"

// NewLocation builds a beach with the standard set of tags and features.
func NewLocation(name, description string, lat, lng float64) *Location {
	return &Location{
		Name:        name,
		Description: description,
		Latitude:    lat,
		Longitude:   lng,
		Type:        LocationBeach,
		Tags:        DefaultTags(),
		Features:    DefaultFeatures(),
	}
}

// DefaultTags returns fresh copies of the tags every location starts with.
func DefaultTags() []*Tag {
	return []*Tag{
		NewTag(TagParking, "This beach has a parking lot facility."),
		NewTag(TagDogs, "Dogs are allowed at this beach."),
		NewTag(TagBoatRamp, "A boat ramp is available."),
		NewTag(TagLifeguard, "The beach is monitored by lifeguards."),
		NewTag(TagRestrooms, "Public restrooms are present."),
		NewTag(TagShowers, "Public showers are available."),
		NewTag(TagCamping, "Camp sites are located at or nearby."),
	}
}

// DefaultFeatures returns fresh copies of the features every location starts with.
func DefaultFeatures() []*Feature {
	return []*Feature{
		NewFeature("Snorkeling", "Potential quality of snorkeling.", "", "", DefaultScoreLabels),
		NewFeature("Surfing", "Potential quality of surfing.", "", "", DefaultScoreLabels),
		NewFeature("Fishing", "Fishing quality around this beach.", "", "", DefaultScoreLabels),
		NewFeature("Sand", "What the beach is like.", "Rocky", "Fine Sand", "Rocky;Rocks and Sand;Course;Normal;Fine"),
	}
}

// Feature finds a feature by exact name.
func (l *Location) Feature(name string) (*Feature, bool) {
	for _, f := range l.Features {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Tag finds a tag by exact name.
func (l *Location) Tag(name string) (*Tag, bool) {
	for _, t := range l.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// has reports whether the named attribute is present with a yes value. A
// feature of that name takes precedence over a tag; missing attributes are
// reported as absent.
func (l *Location) has(name string) bool {
	if f, ok := l.Feature(name); ok {
		return f.Score == TagYes
	}
	if t, ok := l.Tag(name); ok {
		return t.Value() == TagYes
	}
	return false
}

func (l *Location) HasParking() bool     { return l.has(TagParking) }
func (l *Location) HasRestrooms() bool   { return l.has(TagRestrooms) }
func (l *Location) HasLifeguard() bool   { return l.has(TagLifeguard) }
func (l *Location) AllowsDogs() bool     { return l.has(TagDogs) }
func (l *Location) HasBoatRamp() bool    { return l.has(TagBoatRamp) }
func (l *Location) AllowsCamping() bool  { return l.has(TagCamping) }
func (l *Location) HasShowers() bool     { return l.has(TagShowers) }
func (l *Location) HasPublicTrans() bool { return l.has(TagPublicTrans) }

// HasDining is not tracked by any tag yet.
func (l *Location) HasDining() bool { return false }

// TotalAwards sums the awards across the location's features.
func (l *Location) TotalAwards() int {
	total := 0
	for _, f := range l.Features {
		total += f.Award
	}
	return total
}

// DistanceFrom returns the straight-line distance in degrees between the
// location and the given coordinates. It ignores the curvature of the earth
// and is only meaningful over short ranges.
func (l *Location) DistanceFrom(lat, lng float64) float64 {
	dLat := l.Latitude - lat
	dLng := l.Longitude - lng
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// ImagePathMostPopular returns the asset path of the location's lead image.
func (l *Location) ImagePathMostPopular() string {
	fileName := strings.ReplaceAll(strings.ToLower(l.Name), " ", "-")
	return ImageAssetPrefix + fileName + "-1.jpg"
}

// Validate checks the static attributes a caller supplies.
func (l *Location) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidLocation)
	}
	if !finite(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidLocation, l.Latitude)
	}
	if !finite(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidLocation, l.Longitude)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
