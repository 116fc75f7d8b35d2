package domain

// Tag values, also the scores a vote may carry.
const (
	TagUnknown = 0
	TagNo      = 1
	TagYes     = 2
)

// Names of the tags every location is created with.
const (
	TagParking     = "Parking"
	TagRestrooms   = "Restrooms"
	TagLifeguard   = "Lifeguard"
	TagDogs        = "Dogs Allowed"
	TagBoatRamp    = "Boat Ramp"
	TagPublicTrans = "Public Transportation"
	TagCamping     = "Camping"
	TagShowers     = "Showers"
)

func NewTag(name, info string) *Tag {
	return &Tag{Name: name, Info: info}
}

// Value resolves the tag by simple majority. Ties, including no votes at all,
// are TagUnknown.
func (t *Tag) Value() int {
	switch {
	case t.Yes > t.No:
		return TagYes
	case t.No > t.Yes:
		return TagNo
	default:
		return TagUnknown
	}
}

// Revote applies one account's vote. previous is the score that account last
// submitted for this tag, or nil if this is its first vote; its contribution
// is withdrawn before score is counted so an account only ever holds one unit
// in one bucket. Any score other than TagYes counts towards No.
func (t *Tag) Revote(previous *int, score int) {
	if previous != nil {
		if *previous == TagYes {
			t.Yes--
		} else {
			t.No--
		}
	}

	if score == TagYes {
		t.Yes++
	} else {
		t.No++
	}

	t.Accuracy = Reliability(t.Yes, t.No)
}

// ValidTagScore reports whether score can be submitted as a tag vote.
func ValidTagScore(score int) bool {
	return score == TagNo || score == TagYes
}

// reliabilityBrackets holds the upper bound (exclusive, in percent) of each
// accuracy tier from 1 to 5. Anything at or above the last bound is tier 6.
var reliabilityBrackets = [...]int{60, 70, 80, 90, 95}

// Reliability rates how strongly the votes agree, from 0 (no votes or an
// exact tie) to 6 (at least 95% on one side). The share of the leading side
// is compared against each bracket with integer arithmetic, so a share of
// exactly 60% is tier 2, not tier 1.
func Reliability(yes, no int) int {
	total := yes + no
	if total == 0 || yes == no {
		return 0
	}

	n := max(yes, no)
	for i, bound := range reliabilityBrackets {
		if n*100 < bound*total {
			return i + 1
		}
	}
	return len(reliabilityBrackets) + 1
}
