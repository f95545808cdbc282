package domain

// Option represents a possible answer for a question.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// Subject is a named, ordered collection of questions.
type Subject struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// SubjectSummary is the catalog listing shown before a subject is chosen.
type SubjectSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"questionCount"`
}

// Summaries lists the subjects of a catalog in order.
func Summaries(subjects []Subject) []SubjectSummary {
	out := make([]SubjectSummary, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, SubjectSummary{ID: s.ID, Name: s.Name, QuestionCount: len(s.Questions)})
	}
	return out
}

// IncorrectAnswer records a missed question for the review listing.
type IncorrectAnswer struct {
	Question  string `json:"question"`
	Submitted string `json:"submitted"`
	Correct   string `json:"correct"`
}
