package web

import (
	"time"

	"github.com/vbonduro/shorescore/internal/domain"
	"github.com/vbonduro/shorescore/internal/service"
)

type featureView struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Info        string   `json:"info"`
	Score       int      `json:"score"`
	UserScore   int      `json:"userScore"`
	Award       int      `json:"award"`
	Reliability int      `json:"reliability"`
	LowLabel    string   `json:"lowLabel"`
	HighLabel   string   `json:"highLabel"`
	ScoreLabels []string `json:"scoreLabels"`
}

func newFeatureView(f *domain.Feature) featureView {
	return featureView{
		ID:          f.ID,
		Name:        f.Name,
		Info:        f.Info,
		Score:       f.Score,
		UserScore:   f.UserScore,
		Award:       f.Award,
		Reliability: f.Reliability,
		LowLabel:    f.LowLabel,
		HighLabel:   f.HighLabel,
		ScoreLabels: f.ScoreLabels,
	}
}

type tagView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Info     string `json:"info"`
	Yes      int    `json:"yes"`
	No       int    `json:"no"`
	Value    int    `json:"value"`
	Accuracy int    `json:"accuracy"`
}

func newTagView(t *domain.Tag) tagView {
	return tagView{
		ID:       t.ID,
		Name:     t.Name,
		Info:     t.Info,
		Yes:      t.Yes,
		No:       t.No,
		Value:    t.Value(),
		Accuracy: t.Accuracy,
	}
}

type photoView struct {
	ID         int64     `json:"id"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type amenitiesView struct {
	Parking     bool `json:"parking"`
	Restrooms   bool `json:"restrooms"`
	Lifeguard   bool `json:"lifeguard"`
	Dogs        bool `json:"dogs"`
	BoatRamp    bool `json:"boatRamp"`
	Camping     bool `json:"camping"`
	Showers     bool `json:"showers"`
	PublicTrans bool `json:"publicTrans"`
	Dining      bool `json:"dining"`
}

type locationView struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Type        int            `json:"type"`
	ImagePath   string         `json:"imagePath"`
	Distance    *float64       `json:"distance,omitempty"`
	TotalAwards int            `json:"totalAwards"`
	Amenities   *amenitiesView `json:"amenities,omitempty"`
	Features    []featureView  `json:"features,omitempty"`
	Tags        []tagView      `json:"tags,omitempty"`
	Photos      []photoView    `json:"photos,omitempty"`
}

// newLocationSummary is the list form of a location, without its collections.
func newLocationSummary(l *domain.Location) locationView {
	return locationView{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Type:        l.Type,
		ImagePath:   l.ImagePathMostPopular(),
	}
}

func newLocationDetail(l *domain.Location) locationView {
	v := newLocationSummary(l)
	v.TotalAwards = l.TotalAwards()
	v.Amenities = &amenitiesView{
		Parking:     l.HasParking(),
		Restrooms:   l.HasRestrooms(),
		Lifeguard:   l.HasLifeguard(),
		Dogs:        l.AllowsDogs(),
		BoatRamp:    l.HasBoatRamp(),
		Camping:     l.AllowsCamping(),
		Showers:     l.HasShowers(),
		PublicTrans: l.HasPublicTrans(),
		Dining:      l.HasDining(),
	}
	for _, f := range l.Features {
		v.Features = append(v.Features, newFeatureView(f))
	}
	for _, t := range l.Tags {
		v.Tags = append(v.Tags, newTagView(t))
	}
	for _, p := range l.Photos {
		v.Photos = append(v.Photos, photoView{ID: p.ID, MimeType: p.MimeType, UploadedAt: p.UploadedAt})
	}
	return v
}

func newNearbyView(n *service.NearbyLocation) locationView {
	v := newLocationSummary(n.Location)
	d := n.Distance
	v.Distance = &d
	return v
}
