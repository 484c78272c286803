package question

import "context"

// SelfHarmIndex is the position in MentalHealthBank of the item asking
// about thoughts of self-harm. Any non-zero answer to it is escalated.
const SelfHarmIndex = 19

// MentalHealthBank is the fixed 20-item screening questionnaire. Every
// item has four options scored 0 to 3, so totals range from 0 to 60.
var MentalHealthBank = []Question{
	{
		Text:    "Over the last 2 weeks, how often have you felt little interest or pleasure in doing things?",
		Options: scored("Not at all", "Several days", "More than half the days", "Nearly every day"),
	},
	{
		Text:    "Over the last 2 weeks, how often have you been bothered by feeling down, depressed, or hopeless?",
		Options: scored("Not at all", "Several days", "More than half the days", "Nearly every day"),
	},
	{
		Text:    "How has your sleep quality been recently?",
		Options: scored("Very good, I feel rested", "Generally good, with some off nights", "Poor, often waking up or struggling to sleep", "Very poor, consistently unrestful"),
	},
	{
		Text:    "How often have you felt tired or had little energy?",
		Options: scored("Rarely or never", "Some of the time", "Much of the time", "Almost all of the time"),
	},
	{
		Text:    "How has your appetite been?",
		Options: scored("Normal, no changes", "Slightly increased or decreased", "Moderately increased or decreased", "Significantly changed, poor appetite or overeating"),
	},
	{
		Text:    "How often have you felt bad about yourself, or that you are a failure?",
		Options: scored("Not at all", "Several days", "More than half the days", "Nearly every day"),
	},
	{
		Text:    "How often have you had trouble concentrating on things, such as reading or watching TV?",
		Options: scored("Not at all", "Several days", "More than half the days", "Nearly every day"),
	},
	{
		Text:    "How often have you been bothered by feeling nervous, anxious, or on edge?",
		Options: scored("Not at all", "Several days", "More than half the days", "Nearly every day"),
	},
	{
		Text:    "How often have you been unable to stop or control worrying?",
		Options: scored("Not at all", "Several days", "More than half the days", "Nearly every day"),
	},
	{
		Text:    "How connected have you felt to other people?",
		Options: scored("Very connected", "Somewhat connected", "Slightly connected or isolated", "Very isolated"),
	},
	{
		Text:    "How hopeful do you feel about the future?",
		Options: scored("Very hopeful", "Somewhat hopeful", "Slightly hopeful", "Not hopeful at all"),
	},
	{
		Text:    "Have you been able to laugh and see the funny side of things?",
		Options: scored("As much as I always have", "Not quite so much now", "Definitely not so much now", "Not at all"),
	},
	{
		Text:    "How often do you feel overwhelmed by your responsibilities?",
		Options: scored("Rarely or never", "Sometimes", "Often", "Almost always"),
	},
	{
		Text:    "How would you rate your ability to cope with stress?",
		Options: scored("Excellent, I handle it well", "Good, I manage most of the time", "Fair, I struggle sometimes", "Poor, I feel unable to cope"),
	},
	{
		Text:    "Have you been experiencing unexplained aches, pains, or other physical symptoms?",
		Options: scored("Not at all", "Occasionally", "Frequently", "Constantly"),
	},
	{
		Text:    "How often do you engage in hobbies or activities you genuinely enjoy?",
		Options: scored("Daily or almost daily", "A few times a week", "Rarely", "Never"),
	},
	{
		Text:    "How easy do you find it to make decisions, both big and small?",
		Options: scored("Very easy", "Somewhat easy", "Somewhat difficult", "Very difficult or impossible"),
	},
	{
		Text:    "How would you describe your overall mood on a day-to-day basis?",
		Options: scored("Predominantly positive and stable", "A mix of good and bad days", "Mostly low or irritable", "Consistently very low or numb"),
	},
	{
		Text:    "How often have you felt restless or fidgety?",
		Options: scored("Not at all", "Several days", "More than half the days", "Nearly every day"),
	},
	{
		Text:    "Have you had thoughts that you would be better off dead, or of hurting yourself?",
		Options: scored("Not at all", "Several days", "More than half the days", "Nearly every day"),
	},
}

// scored builds options whose score is their position.
func scored(labels ...string) []Option {
	opts := make([]Option, len(labels))
	for i, l := range labels {
		opts[i] = Option{Label: l, Score: i, Scored: true}
	}
	return opts
}

// StaticSource serves a fixed question list regardless of seed.
type StaticSource[S any] struct {
	Questions []Question
}

// NewQuizSource returns the mental-health bank as a Source. The quiz has
// no meaningful seed.
func NewQuizSource() *StaticSource[struct{}] {
	return &StaticSource[struct{}]{Questions: MentalHealthBank}
}

func (s *StaticSource[S]) Resolve(ctx context.Context, _ S) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, &GenerationFailure{Stage: StageRequest, Err: err}
	}
	if len(s.Questions) == 0 {
		return nil, &GenerationFailure{Stage: StageValidate, Err: &ValidationError{Validator: "static", Message: "no questions"}}
	}
	return s.Questions, nil
}
