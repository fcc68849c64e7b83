package dto

import (
	"neuranote.app/assistant/internal/model"
	"neuranote.app/assistant/internal/planner"
)

type FocusAssistantRequest struct {
	TaskType    string  `json:"task_type" binding:"required,min=1,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2048"`
}

type FocusAssistantResponse struct {
	PredictedDistractions []string `json:"predicted_distractions"`
	SuggestedWorkflow     string   `json:"suggested_workflow"`
	MotivationTips        []string `json:"motivation_tips"`
	RecommendedTools      []string `json:"recommended_tools"`
}

func ToFocusAssistantResponse(a *planner.FocusAdvice) FocusAssistantResponse {
	return FocusAssistantResponse{
		PredictedDistractions: a.PredictedDistractions,
		SuggestedWorkflow:     a.SuggestedWorkflow,
		MotivationTips:        a.MotivationTips,
		RecommendedTools:      a.RecommendedTools,
	}
}

type LearningPathRequest struct {
	Topic        string `json:"topic" binding:"required,min=1,max=255"`
	DurationDays int    `json:"duration_days" binding:"required,min=1,max=365"`
	Level        string `json:"level" binding:"required,oneof=beginner intermediate advanced"`
	// Minutes available per day.
	AvailabilityPerDay []int `json:"availability_per_day" binding:"required"`
}

type LearningPathResponse struct {
	Resources     []model.LearningResource `json:"resources"`
	StudySchedule map[string]string        `json:"study_schedule"`
}

func ToLearningPathResponse(p *planner.LearningPath) LearningPathResponse {
	return LearningPathResponse{Resources: p.Resources, StudySchedule: p.StudySchedule}
}

type TimetableRequest struct {
	TimeSlots   []TimeSlotRequest `json:"time_slots" binding:"required,min=1,dive"`
	Preferences map[string]any    `json:"preferences,omitempty"`
	Constraints map[string]any    `json:"constraints,omitempty"`
}

type TimeSlotRequest struct {
	Day         string  `json:"day" binding:"required"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	TaskType    string  `json:"task_type" binding:"required"`
	Description *string `json:"description,omitempty"`
}

type TimetableResponse struct {
	Timetable     []model.TimeSlot `json:"timetable"`
	ExportOptions []string         `json:"export_options"`
}

func (r TimetableRequest) ToPlannerRequest() planner.TimetableRequest {
	slots := make([]model.TimeSlot, len(r.TimeSlots))
	for i, s := range r.TimeSlots {
		slots[i] = model.TimeSlot{
			Day:         s.Day,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			TaskType:    s.TaskType,
			Description: s.Description,
		}
	}
	return planner.TimetableRequest{
		TimeSlots:   slots,
		Preferences: r.Preferences,
		Constraints: r.Constraints,
	}
}

func ToTimetableResponse(t *planner.Timetable) TimetableResponse {
	return TimetableResponse{Timetable: t.Timetable, ExportOptions: t.ExportOptions}
}
