package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureClone(t *testing.T) {
	orig := NewFeature("Sand", "What the beach is like.", "Rocky", "Fine Sand", "Rocky;Fine")
	orig.Score = 2
	orig.Reliability = 4
	orig.Award = 1

	c := orig.Clone()
	assert.Equal(t, orig, c)

	c.ScoreLabels[0] = "Pebbles"
	c.SetUserScore(1)
	assert.Equal(t, "Rocky", orig.ScoreLabels[0])
	assert.Equal(t, ScoreUnknown, orig.UserScore)
}

func TestFeatureScoreLabel(t *testing.T) {
	f := NewFeature("Surfing", "", "", "", DefaultScoreLabels)

	assert.Equal(t, "Poor", f.ScoreLabel(1))
	assert.Equal(t, "Excellent", f.ScoreLabel(5))
	assert.Empty(t, f.ScoreLabel(0))
	assert.Empty(t, f.ScoreLabel(6))
	assert.True(t, f.ValidScore(3))
	assert.False(t, f.ValidScore(0))
}

func TestScoreLabelsRoundTrip(t *testing.T) {
	f := NewFeature("Fishing", "", "", "", DefaultScoreLabels)
	assert.Equal(t, DefaultScoreLabels, f.JoinedScoreLabels())
	assert.Nil(t, ParseScoreLabels(""))
}
