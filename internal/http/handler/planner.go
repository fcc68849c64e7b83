package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"neuranote.app/assistant/internal/http/dto"
	"neuranote.app/assistant/internal/intent"
	"neuranote.app/assistant/internal/planner"
)

type FocusAssistant interface {
	Advise(ctx context.Context, taskType, description string) (*planner.FocusAdvice, error)
}

type PathPlanner interface {
	Plan(ctx context.Context, topic string, durationDays int, level string, availabilityPerDay []int) (*planner.LearningPath, error)
}

type TimetableBuilder interface {
	Build(ctx context.Context, req planner.TimetableRequest) (*planner.Timetable, error)
}

type PlannerHandler struct {
	focus      FocusAssistant
	paths      PathPlanner
	timetables TimetableBuilder
}

func NewPlannerHandler(focus FocusAssistant, paths PathPlanner, timetables TimetableBuilder) *PlannerHandler {
	return &PlannerHandler{focus: focus, paths: paths, timetables: timetables}
}

func (h *PlannerHandler) FocusAssistant(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.FocusAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	advice, err := h.focus.Advise(ctx, req.TaskType, description)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate focus advice", "task_type", req.TaskType, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate focus advice"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFocusAssistantResponse(advice))
}

func (h *PlannerHandler) LearningPath(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LearningPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path, err := h.paths.Plan(ctx, req.Topic, req.DurationDays, req.Level, req.AvailabilityPerDay)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate learning path", "topic", req.Topic, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate learning path"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLearningPathResponse(path))
}

func (h *PlannerHandler) Timetable(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.TimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timetable, err := h.timetables.Build(ctx, req.ToPlannerRequest())
	if err != nil {
		var rejection *intent.Rejection
		if errors.As(err, &rejection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": rejection.Error()})
			return
		}
		slog.ErrorContext(ctx, "failed to build timetable", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build timetable"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTimetableResponse(timetable))
}
