package domain

import "time"

// LocationBeach is the only location type currently in use.
const LocationBeach = 1

type Location struct {
	ID          int64
	Latitude    float64
	Longitude   float64
	Name        string
	Description string
	Type        int
	CreatorID   *string
	Features    []*Feature
	Tags        []*Tag
	Photos      []*Photo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Feature struct {
	ID          int64
	LocationID  int64
	Name        string
	Info        string
	Score       int
	UserScore   int
	Award       int
	Reliability int
	LowLabel    string
	HighLabel   string
	ScoreLabels []string
}

type Tag struct {
	ID         int64
	LocationID int64
	Name       string
	Info       string
	Yes        int
	No         int
	Accuracy   int
}

// VoteKind identifies what a Vote's ParentID refers to.
type VoteKind string

const (
	VoteKindTag     VoteKind = "tag"
	VoteKindFeature VoteKind = "feature"
)

// Vote is a single account's submission for one tag or feature. There is at
// most one per (AccountID, Kind, ParentID).
type Vote struct {
	ID        int64
	AccountID string
	Kind      VoteKind
	ParentID  int64
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Account struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Photo struct {
	ID         int64
	LocationID int64
	StorageKey string
	MimeType   string
	UploadedAt time.Time
}
