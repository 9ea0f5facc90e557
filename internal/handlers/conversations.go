package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"booking-agent-server/internal/utils"
	"booking-agent-server/internal/workflow"
)

// ConversationHandler exposes the workflow engine over HTTP: start a
// thread, resume it with a state patch, and read its state.
type ConversationHandler struct {
	Engine *workflow.Engine
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(engine *workflow.Engine) *ConversationHandler {
	return &ConversationHandler{Engine: engine}
}

// StartConversationRequest represents the request body for opening a thread.
type StartConversationRequest struct {
	Query      string `json:"query" binding:"required"`
	ClientName string `json:"clientName" binding:"required"`
}

// ConversationResponse pairs a thread ID with its current state.
type ConversationResponse struct {
	ThreadID string         `json:"threadId"`
	State    workflow.State `json:"state"`
}

// StartConversation opens a new conversation thread and runs it until the
// first suspension point.
func (h *ConversationHandler) StartConversation(c *gin.Context) {
	var req StartConversationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	threadID := uuid.New().String()
	state, err := h.Engine.Start(c.Request.Context(), threadID, req.Query, req.ClientName)
	if err != nil {
		utils.InternalServerError(c, "Failed to start conversation: "+err.Error())
		return
	}

	utils.Created(c, "Conversation started", ConversationResponse{ThreadID: threadID, State: state})
}

// ResumeConversation merges the supplied patch into the thread state and
// continues execution until the next suspension or the terminal node.
func (h *ConversationHandler) ResumeConversation(c *gin.Context) {
	threadID := c.Param("id")

	var patch workflow.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	state, err := h.Engine.Resume(c.Request.Context(), threadID, patch)
	if err != nil {
		if errors.Is(err, workflow.ErrThreadNotFound) {
			utils.NotFound(c, "Conversation thread not found")
			return
		}
		utils.InternalServerError(c, "Failed to resume conversation: "+err.Error())
		return
	}

	utils.Success(c, "Conversation resumed", ConversationResponse{ThreadID: threadID, State: state})
}

// GetConversation returns a read-only snapshot of the thread state.
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	threadID := c.Param("id")

	state, err := h.Engine.GetState(c.Request.Context(), threadID)
	if err != nil {
		if errors.Is(err, workflow.ErrThreadNotFound) {
			utils.NotFound(c, "Conversation thread not found")
			return
		}
		utils.InternalServerError(c, "Failed to load conversation: "+err.Error())
		return
	}

	utils.Success(c, "Conversation fetched", ConversationResponse{ThreadID: threadID, State: state})
}
