package domain

// SubmittedAnswer is one (question, option) pair as sent by a client.
type SubmittedAnswer struct {
	QuestionID     int
	SelectedOption string
}

// ScoreResult is the outcome of scoring a full submission.
type ScoreResult struct {
	TotalScore      int
	Answers         []PersonalityAnswer
	PersonalityType string
}

// QuestionSet is the static question bank with its score-to-type table.
// It is loaded once as read-only configuration and shared across requests.
type QuestionSet struct {
	questions    []Question
	byID         map[int]*Question
	ranges       []PersonalityRange
	fallbackType string
}

// NewQuestionSet builds an immutable question set. The fallback type is
// returned when a total score falls in no declared range, which guards
// against range-table edits that leave gaps.
func NewQuestionSet(questions []Question, ranges []PersonalityRange, fallbackType string) *QuestionSet {
	byID := make(map[int]*Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}
	return &QuestionSet{
		questions:    questions,
		byID:         byID,
		ranges:       ranges,
		fallbackType: fallbackType,
	}
}

// Questions returns the ordered question list.
func (qs *QuestionSet) Questions() []Question {
	return qs.questions
}

// Ranges returns the score-to-type table.
func (qs *QuestionSet) Ranges() []PersonalityRange {
	return qs.ranges
}

// ScoreBounds returns the lowest and highest total a full submission can reach.
func (qs *QuestionSet) ScoreBounds() (min, max int) {
	for _, q := range qs.questions {
		if len(q.Options) == 0 {
			continue
		}
		lo, hi := q.Options[0].Score, q.Options[0].Score
		for _, o := range q.Options[1:] {
			if o.Score < lo {
				lo = o.Score
			}
			if o.Score > hi {
				hi = o.Score
			}
		}
		min += lo
		max += hi
	}
	return min, max
}

// Score resolves submitted pairs against the bank and totals their scores.
// Pairs referencing an unknown question id or an option text that does not
// exactly match any option are skipped silently; they contribute nothing to
// the total and are not recorded. This lenient-skip policy is intentional
// data tolerance, not a validation failure.
func (qs *QuestionSet) Score(submitted []SubmittedAnswer) ScoreResult {
	total := 0
	answers := []PersonalityAnswer{}
	for _, sa := range submitted {
		question, ok := qs.byID[sa.QuestionID]
		if !ok {
			continue
		}
		option, ok := findOption(question, sa.SelectedOption)
		if !ok {
			continue
		}
		total += option.Score
		answers = append(answers, PersonalityAnswer{
			QuestionID:     sa.QuestionID,
			SelectedOption: sa.SelectedOption,
			IconEmoji:      option.Emoji,
			Score:          option.Score,
		})
	}
	return ScoreResult{
		TotalScore:      total,
		Answers:         answers,
		PersonalityType: qs.TypeForScore(total),
	}
}

// TypeForScore maps a total score to its personality label via the range
// table, falling back to the catch-all label when no range matches.
func (qs *QuestionSet) TypeForScore(total int) string {
	for _, r := range qs.ranges {
		if total >= r.Min && total <= r.Max {
			return r.Type
		}
	}
	return qs.fallbackType
}

func findOption(q *Question, text string) (QuestionOption, bool) {
	for _, o := range q.Options {
		if o.Text == text {
			return o, true
		}
	}
	return QuestionOption{}, false
}

// Compatibility derives a similarity score in [0,100] from two quiz totals.
// It is symmetric and maximal exactly when the totals are equal.
func Compatibility(scoreA, scoreB int) int {
	diff := scoreA - scoreB
	if diff < 0 {
		diff = -diff
	}
	c := 100 - 2*diff
	if c < 0 {
		return 0
	}
	return c
}

// CompatibilityMessage banded human-readable verdict. Bands are exclusive
// and evaluated in descending order, first match wins.
func CompatibilityMessage(score int) string {
	switch {
	case score > 80:
		return "Perfect match! 💕"
	case score > 60:
		return "Great compatibility! 💙"
	case score > 40:
		return "Good potential! 💛"
	default:
		return "Learn more about each other 🤍"
	}
}
