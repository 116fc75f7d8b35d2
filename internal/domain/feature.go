package domain

import "strings"

// ScoreUnknown is the score of a feature nobody has rated yet.
const ScoreUnknown = 0

// DefaultScoreLabels is the rating scale shared by most features.
const DefaultScoreLabels = "Poor;Marginal;Average;Good;Excellent"

// NewFeature builds an unscored feature. labels is a semicolon separated list
// naming each score from 1 upwards.
func NewFeature(name, info, lowLabel, highLabel, labels string) *Feature {
	return &Feature{
		Name:        name,
		Info:        info,
		Score:       ScoreUnknown,
		UserScore:   ScoreUnknown,
		LowLabel:    lowLabel,
		HighLabel:   highLabel,
		ScoreLabels: ParseScoreLabels(labels),
	}
}

func (f *Feature) SetUserScore(score int) {
	f.UserScore = score
}

// Clone returns a copy of f that shares no memory with it.
func (f *Feature) Clone() *Feature {
	c := *f
	if f.ScoreLabels != nil {
		c.ScoreLabels = append([]string(nil), f.ScoreLabels...)
	}
	return &c
}

// ScoreLabel names a 1-based score, or returns "" if the score is outside the
// feature's scale.
func (f *Feature) ScoreLabel(score int) string {
	if score < 1 || score > len(f.ScoreLabels) {
		return ""
	}
	return f.ScoreLabels[score-1]
}

// ValidScore reports whether score is a point on the feature's scale.
func (f *Feature) ValidScore(score int) bool {
	return score >= 1 && score <= len(f.ScoreLabels)
}

// JoinedScoreLabels is the storage form of ScoreLabels.
func (f *Feature) JoinedScoreLabels() string {
	return strings.Join(f.ScoreLabels, ";")
}

// ParseScoreLabels is the inverse of JoinedScoreLabels.
func ParseScoreLabels(labels string) []string {
	if labels == "" {
		return nil
	}
	return strings.Split(labels, ";")
}
