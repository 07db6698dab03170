package models

// Wire shapes for the expanded topic tree. Field names match what the web
// client persists, so they stay in camelCase with the question id under
// "_id" and classification fields nested under "questionId".

// TreeTopic is a topic with all children resolved, in display order.
type TreeTopic struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      TopicStatus    `json:"status"`
	SubTopics   []TreeSubTopic `json:"subTopics"`
	Questions   []TreeQuestion `json:"questions"`
}

// TreeSubTopic is a sub-topic with its questions resolved, in display order.
type TreeSubTopic struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Questions []TreeQuestion `json:"questions"`
}

// TreeQuestion splits a question into the user's mutable state (top level)
// and the problem's identity (nested under questionId).
type TreeQuestion struct {
	ID         string       `json:"_id"`
	Title      string       `json:"title"`
	IsSolved   bool         `json:"isSolved"`
	IsStarred  bool         `json:"isStarred"`
	Notes      string       `json:"notes"`
	QuestionID QuestionMeta `json:"questionId"`
}

// QuestionMeta is the classification block of a question: which problem it
// is, not what the user has done with it.
type QuestionMeta struct {
	Difficulty  Difficulty `json:"difficulty"`
	ProblemURL  string     `json:"problemUrl"`
	Platform    string     `json:"platform"`
	Resource    string     `json:"resource"`
	CompanyTags []string   `json:"companyTags"`
}

// TreeQuestionFrom shapes a stored question into its wire form.
func TreeQuestionFrom(q *Question) TreeQuestion {
	tags := q.CompanyTags
	if tags == nil {
		tags = []string{}
	}
	return TreeQuestion{
		ID:        q.ID,
		Title:     q.Title,
		IsSolved:  q.IsSolved,
		IsStarred: q.IsStarred,
		Notes:     q.Notes,
		QuestionID: QuestionMeta{
			Difficulty:  q.Difficulty,
			ProblemURL:  q.ProblemURL,
			Platform:    q.Platform,
			Resource:    q.Resource,
			CompanyTags: tags,
		},
	}
}

// Stats is the aggregate progress summary returned by GET /api/stats.
type Stats struct {
	Topics    int `json:"topics"`
	Questions int `json:"questions"`
	Solved    int `json:"solved"`
	Progress  int `json:"progress"` // rounded percent, 0 when no questions
}
