package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"neuranote.app/assistant/internal/http/dto"
	"neuranote.app/assistant/internal/model"
)

type PlanComposer interface {
	Compose(ctx context.Context, topic string) (*model.StudyPlan, error)
}

type BlockerIdentifier interface {
	Identify(ctx context.Context, task, focusTime string) ([]model.Blocker, error)
}

// Responder answers a free-text prompt with display text. It never fails:
// errors are rendered into the text itself.
type Responder interface {
	Respond(ctx context.Context, prompt string) string
}

type AssistantHandler struct {
	plans     PlanComposer
	blockers  BlockerIdentifier
	responder Responder
}

func NewAssistantHandler(plans PlanComposer, blockers BlockerIdentifier, responder Responder) *AssistantHandler {
	return &AssistantHandler{plans: plans, blockers: blockers, responder: responder}
}

func (h *AssistantHandler) StudyTopic(c *gin.Context) {
	ctx := c.Request.Context()

	topic := c.Query("topic_name")
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic_name query parameter is required"})
		return
	}

	plan, err := h.plans.Compose(ctx, topic)
	if err != nil {
		slog.ErrorContext(ctx, "failed to compose study plan", "topic", topic, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate study plan"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *AssistantHandler) IdentifyBlockers(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.IdentifyBlockersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blockers, err := h.blockers.Identify(ctx, req.Task, req.FocusTime)
	if err != nil {
		slog.ErrorContext(ctx, "failed to identify blockers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to identify blockers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToIdentifyBlockersResponse(blockers))
}

// Generate answers the free-text prompt endpoint. Flow failures come back as
// display text inside a 200, matching what clients have always received.
func (h *AssistantHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := h.responder.Respond(ctx, req.Prompt)
	c.JSON(http.StatusOK, dto.GenerateResponse{Response: text})
}
