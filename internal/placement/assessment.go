package placement

// Assessment is a versioned placement test.
type Assessment struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Version     string     `json:"version"`
	Questions   []Question `json:"questions"`
	Bands       []Band     `json:"bands"`
}

// AnswerKey returns the grading view of the assessment.
func (a Assessment) AnswerKey() AnswerKey {
	return AnswerKey{Questions: a.Questions, Bands: a.Bands}
}

// PublicOption is an answer choice without its correctness flag.
type PublicOption struct {
	Text string `json:"text"`
}

// PublicQuestion is a question safe to show to the learner taking the test.
type PublicQuestion struct {
	ID         int            `json:"id"`
	Question   string         `json:"question"`
	Type       string         `json:"type"`
	Category   string         `json:"category"`
	Difficulty CEFR           `json:"difficulty"`
	Options    []PublicOption `json:"options"`
}

// Sanitize strips correctness flags and explanations.
func Sanitize(questions []Question) []PublicQuestion {
	public := make([]PublicQuestion, 0, len(questions))
	for _, q := range questions {
		options := make([]PublicOption, 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, PublicOption{Text: opt.Text})
		}
		public = append(public, PublicQuestion{
			ID:         q.ID,
			Question:   q.Question,
			Type:       q.Type,
			Category:   q.Category,
			Difficulty: q.Difficulty,
			Options:    options,
		})
	}
	return public
}

func correct(text string) Option { return Option{Text: text, IsCorrect: true} }

func wrong(text string) Option { return Option{Text: text} }

// DefaultAssessment is the 15-question English level test, three questions
// per level from A1 to B2, two at C1 and one at C2.
func DefaultAssessment() Assessment {
	return Assessment{
		Title:       "English Level Assessment",
		Description: "Comprehensive assessment to determine your English proficiency level",
		Version:     "1.0",
		Bands:       DefaultBands(),
		Questions:   defaultQuestions(),
	}
}

func defaultQuestions() []Question {
	return []Question{
		{
			ID:         1,
			Question:   "Choose the correct form: \"I ___ from Spain.\"",
			Type:       TypeMultipleChoice,
			Category:   CategoryGrammar,
			Difficulty: A1,
			Options: []Option{
				correct("am"),
				wrong("is"),
				wrong("are"),
				wrong("be"),
			},
			Explanation: "Use \"am\" with \"I\" in the present tense of \"to be\".",
			Points:      1,
		},
		{
			ID:         2,
			Question:   "What is the plural of \"child\"?",
			Type:       TypeMultipleChoice,
			Category:   CategoryVocabulary,
			Difficulty: A1,
			Options: []Option{
				wrong("childs"),
				correct("children"),
				wrong("childes"),
				wrong("child"),
			},
			Explanation: "\"Children\" is the irregular plural form of \"child\".",
			Points:      1,
		},
		{
			ID:         3,
			Question:   "Which sentence is correct?",
			Type:       TypeMultipleChoice,
			Category:   CategoryStructure,
			Difficulty: A1,
			Options: []Option{
				wrong("She have a dog."),
				correct("She has a dog."),
				wrong("She having a dog."),
				wrong("She had have a dog."),
			},
			Explanation: "Use \"has\" with third person singular subjects in present tense.",
			Points:      1,
		},
		{
			ID:         4,
			Question:   "Choose the correct past tense: \"Yesterday I ___ to the store.\"",
			Type:       TypeMultipleChoice,
			Category:   CategoryGrammar,
			Difficulty: A2,
			Options: []Option{
				wrong("go"),
				wrong("goes"),
				correct("went"),
				wrong("going"),
			},
			Explanation: "\"Went\" is the past tense of \"go\".",
			Points:      1,
		},
		{
			ID:         5,
			Question:   "Which word means \"very big\"?",
			Type:       TypeMultipleChoice,
			Category:   CategoryVocabulary,
			Difficulty: A2,
			Options: []Option{
				wrong("tiny"),
				correct("huge"),
				wrong("small"),
				wrong("narrow"),
			},
			Explanation: "\"Huge\" means extremely large or big.",
			Points:      1,
		},
		{
			ID:         6,
			Question:   "Choose the correct sentence structure:",
			Type:       TypeMultipleChoice,
			Category:   CategoryStructure,
			Difficulty: A2,
			Options: []Option{
				wrong("Beautiful the girl is."),
				wrong("The girl beautiful is."),
				correct("The girl is beautiful."),
				wrong("Is beautiful the girl."),
			},
			Explanation: "English follows Subject + Verb + Object/Complement order.",
			Points:      1,
		},
		{
			ID:         7,
			Question:   "If I ___ rich, I would buy a yacht.",
			Type:       TypeMultipleChoice,
			Category:   CategoryGrammar,
			Difficulty: B1,
			Options: []Option{
				wrong("am"),
				wrong("was"),
				correct("were"),
				wrong("will be"),
			},
			Explanation: "Use \"were\" in hypothetical conditional sentences (second conditional).",
			Points:      1,
		},
		{
			ID:         8,
			Question:   "Which word is closest in meaning to \"persevere\"?",
			Type:       TypeMultipleChoice,
			Category:   CategoryVocabulary,
			Difficulty: B1,
			Options: []Option{
				wrong("give up"),
				correct("continue trying"),
				wrong("start over"),
				wrong("avoid"),
			},
			Explanation: "\"Persevere\" means to continue despite difficulties.",
			Points:      1,
		},
		{
			ID:         9,
			Question:   "Read: \"Although it was raining, we decided to go for a walk.\" The word \"although\" shows:",
			Type:       TypeMultipleChoice,
			Category:   CategoryComprehension,
			Difficulty: B1,
			Options: []Option{
				wrong("cause and effect"),
				correct("contrast"),
				wrong("time sequence"),
				wrong("comparison"),
			},
			Explanation: "\"Although\" introduces a contrasting clause.",
			Points:      1,
		},
		{
			ID:         10,
			Question:   "By the time she arrives, we ___ the project.",
			Type:       TypeMultipleChoice,
			Category:   CategoryGrammar,
			Difficulty: B2,
			Options: []Option{
				wrong("will finish"),
				correct("will have finished"),
				wrong("finish"),
				wrong("are finishing"),
			},
			Explanation: "Future perfect tense shows an action completed before another future action.",
			Points:      1,
		},
		{
			ID:         11,
			Question:   "Which word best fits: \"The CEO's decision was ___; it affected the entire company.\"",
			Type:       TypeMultipleChoice,
			Category:   CategoryVocabulary,
			Difficulty: B2,
			Options: []Option{
				wrong("insignificant"),
				correct("momentous"),
				wrong("trivial"),
				wrong("routine"),
			},
			Explanation: "\"Momentous\" means having great importance or significance.",
			Points:      1,
		},
		{
			ID:         12,
			Question:   "In academic writing, which structure is most appropriate for presenting opposing views?",
			Type:       TypeMultipleChoice,
			Category:   CategoryStructure,
			Difficulty: B2,
			Options: []Option{
				wrong("I think... but others think..."),
				correct("While some argue..., others contend..."),
				wrong("Maybe... or maybe not..."),
				wrong("People say... but I say..."),
			},
			Explanation: "Academic writing uses formal transitions like \"while\" and \"contend\".",
			Points:      1,
		},
		{
			ID:         13,
			Question:   "Choose the most sophisticated way to express: \"The situation is getting worse.\"",
			Type:       TypeMultipleChoice,
			Category:   CategoryVocabulary,
			Difficulty: C1,
			Options: []Option{
				wrong("Things are bad and getting badder."),
				correct("The situation is deteriorating."),
				wrong("Everything is going down."),
				wrong("Stuff is getting real bad."),
			},
			Explanation: "\"Deteriorating\" is a more sophisticated and precise term.",
			Points:      1,
		},
		{
			ID:         14,
			Question:   "Identify the grammatical function of \"having been warned\" in: \"Having been warned about the risks, she proceeded with caution.\"",
			Type:       TypeMultipleChoice,
			Category:   CategoryGrammar,
			Difficulty: C1,
			Options: []Option{
				wrong("present participle"),
				wrong("past participle"),
				correct("perfect participle (passive)"),
				wrong("gerund"),
			},
			Explanation: "\"Having been warned\" is a perfect participle in passive voice, showing completed action before the main verb.",
			Points:      1,
		},
		{
			ID:         15,
			Question:   "Which sentence demonstrates the most nuanced understanding of formal register?",
			Type:       TypeMultipleChoice,
			Category:   CategoryComprehension,
			Difficulty: C2,
			Options: []Option{
				wrong("We should probably think about maybe changing this policy sometime."),
				correct("It is imperative that we undertake a comprehensive review of the existing policy framework with a view to implementing substantive reforms."),
				wrong("The policy needs to be changed right now because it's not working."),
				wrong("I think we need to fix the policy because there are problems."),
			},
			Explanation: "This sentence uses sophisticated vocabulary and complex sentence structure appropriate for formal academic/professional contexts.",
			Points:      1,
		},
	}
}
