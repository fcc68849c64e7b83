package model

// StudyPlan is the fully assembled plan for one topic. Nothing about it is
// persisted; it lives for the duration of a single request.
type StudyPlan struct {
	ID               string          `json:"id"`
	TopicTitle       string          `json:"topic_title"`
	TopicTips        []string        `json:"topic_tips"`
	LearningApproach string          `json:"learning_approach"`
	Advice           string          `json:"Advice"`
	Materials        []Material      `json:"materials"`
	ReferenceLinks   []ReferenceLink `json:"reference_links"`
	OrderIndex       int             `json:"order_index"`
}

// Material is one recommended study resource (book, video, course, ...).
type Material struct {
	Type   string  `json:"type"`
	Title  string  `json:"title"`
	Author *string `json:"author,omitempty"`
}

// ReferenceLink pairs a validated URL with a short generated explanation of
// why the resource is relevant. Explanation is never empty: when generation
// fails a placeholder is substituted instead.
type ReferenceLink struct {
	Link        string `json:"link"`
	Explanation string `json:"explanation"`
}
