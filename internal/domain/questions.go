package domain

// DefaultQuestionSet returns the built-in personality questionnaire and its
// score-to-type table. Callers receive the same immutable configuration on
// every call; services take it as a read-only dependency.
func DefaultQuestionSet() *QuestionSet {
	questions := []Question{
		{
			ID:     1,
			Prompt: "How do you express your feelings?",
			Options: []QuestionOption{
				{Text: "Verbally & Often", Emoji: "💬", Score: 1},
				{Text: "Through Actions", Emoji: "💪", Score: 2},
				{Text: "Romantically", Emoji: "❤️", Score: 3},
				{Text: "Thoughtfully", Emoji: "🤔", Score: 4},
			},
		},
		{
			ID:     2,
			Prompt: "Your ideal time together is:",
			Options: []QuestionOption{
				{Text: "Adventure", Emoji: "🎢", Score: 1},
				{Text: "Quiet moments", Emoji: "🌙", Score: 2},
				{Text: "Deep talks", Emoji: "💭", Score: 3},
				{Text: "Fun & laughter", Emoji: "😄", Score: 4},
			},
		},
		{
			ID:     3,
			Prompt: "When challenges arise, you:",
			Options: []QuestionOption{
				{Text: "Face them head-on", Emoji: "⚔️", Score: 1},
				{Text: "Listen & support", Emoji: "👂", Score: 2},
				{Text: "Find solutions together", Emoji: "🤝", Score: 3},
				{Text: "Give space & understanding", Emoji: "🕊️", Score: 4},
			},
		},
		{
			ID:     4,
			Prompt: "Your love language is:",
			Options: []QuestionOption{
				{Text: "Words of affirmation", Emoji: "🗣️", Score: 1},
				{Text: "Acts of service", Emoji: "🙏", Score: 2},
				{Text: "Physical touch", Emoji: "🤗", Score: 3},
				{Text: "Quality time", Emoji: "⏰", Score: 4},
			},
		},
		{
			ID:     5,
			Prompt: "Your personality vibe is:",
			Options: []QuestionOption{
				{Text: "Spontaneous & wild", Emoji: "🌪️", Score: 1},
				{Text: "Calm & serene", Emoji: "☮️", Score: 2},
				{Text: "Passionate & intense", Emoji: "🔥", Score: 3},
				{Text: "Fun & playful", Emoji: "🎮", Score: 4},
			},
		},
		{
			ID:     6,
			Prompt: "When someone is sad, you:",
			Options: []QuestionOption{
				{Text: "Cheer them up", Emoji: "🎉", Score: 1},
				{Text: "Listen without judgment", Emoji: "🎧", Score: 2},
				{Text: "Hold them close", Emoji: "🫂", Score: 3},
				{Text: "Help them find solutions", Emoji: "🔍", Score: 4},
			},
		},
		{
			ID:     7,
			Prompt: "Commitment means to you:",
			Options: []QuestionOption{
				{Text: "Adventure together", Emoji: "🗺️", Score: 1},
				{Text: "Safety & stability", Emoji: "🏠", Score: 2},
				{Text: "Deep emotional bond", Emoji: "💞", Score: 3},
				{Text: "Growing together", Emoji: "🌱", Score: 4},
			},
		},
		{
			ID:     8,
			Prompt: "Your ideal date would be:",
			Options: []QuestionOption{
				{Text: "Exploring new places", Emoji: "✈️", Score: 1},
				{Text: "Cozy night in", Emoji: "🛋️", Score: 2},
				{Text: "Romantic dinner", Emoji: "🍽️", Score: 3},
				{Text: "Shared activity/hobby", Emoji: "🎨", Score: 4},
			},
		},
		{
			ID:     9,
			Prompt: "In friendship, you value:",
			Options: []QuestionOption{
				{Text: "Fun & laughter", Emoji: "😆", Score: 1},
				{Text: "Loyalty & trust", Emoji: "🤞", Score: 2},
				{Text: "Deep understanding", Emoji: "💎", Score: 3},
				{Text: "Always being there", Emoji: "🌟", Score: 4},
			},
		},
		{
			ID:     10,
			Prompt: "Your biggest strength is:",
			Options: []QuestionOption{
				{Text: "Confidence", Emoji: "💪", Score: 1},
				{Text: "Compassion", Emoji: "💝", Score: 2},
				{Text: "Intelligence", Emoji: "🧠", Score: 3},
				{Text: "Humor", Emoji: "😂", Score: 4},
			},
		},
	}

	ranges := []PersonalityRange{
		{Min: 10, Max: 15, Type: "The Free Spirit", Icon: "🦅"},
		{Min: 16, Max: 21, Type: "The Nurturer", Icon: "🌸"},
		{Min: 22, Max: 27, Type: "The Romantic", Icon: "💕"},
		{Min: 28, Max: 40, Type: "The Sage", Icon: "🌙"},
	}

	return NewQuestionSet(questions, ranges, "The Mysterious One")
}
