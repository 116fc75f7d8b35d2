package service

import (
	"strconv"

	"github.com/vbonduro/shorescore/internal/domain"
)

// TagUpdate is the client view of a tag. Every field is a decimal string and
// ScoreList is "<no>;<yes>".
type TagUpdate struct {
	Score     string `json:"score"`
	UserScore string `json:"userScore"`
	Accuracy  string `json:"accuracy"`
	ScoreList string `json:"scoreList"`
}

// NewTagUpdate projects tag for an account whose last vote was userScore
// (domain.TagUnknown when it has not voted).
func NewTagUpdate(tag *domain.Tag, userScore int) *TagUpdate {
	return &TagUpdate{
		Score:     strconv.Itoa(tag.Value()),
		UserScore: strconv.Itoa(userScore),
		Accuracy:  strconv.Itoa(tag.Accuracy),
		ScoreList: strconv.Itoa(tag.No) + ";" + strconv.Itoa(tag.Yes),
	}
}
