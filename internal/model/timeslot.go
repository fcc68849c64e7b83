package model

// TimeSlot is one entry of a weekly timetable on the legacy planner surface.
type TimeSlot struct {
	Day         string  `json:"day"`
	StartTime   string  `json:"start_time"` // HH:MM
	EndTime     string  `json:"end_time"`   // HH:MM
	TaskType    string  `json:"task_type"`
	Description *string `json:"description,omitempty"`
}

// LearningResource is one recommended resource on a generated learning path.
type LearningResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"` // course, video, exercise
	Free  bool   `json:"free"`
}
