package rank

// Brackets are the score bands of the run report, highest first.
var Brackets = []string{"80-100", "60-79", "40-59", "20-39", "0-19"}

func Bracket(score int) string {
	switch {
	case score >= 80:
		return "80-100"
	case score >= 60:
		return "60-79"
	case score >= 40:
		return "40-59"
	case score >= 20:
		return "20-39"
	default:
		return "0-19"
	}
}
