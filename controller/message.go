package controller

import (
	"errors"
	"net/http"

	"github.com/Bumblebig/UniSupport/logic"

	"github.com/gin-gonic/gin"
)

// MessageController handles HTTP requests
type MessageController struct {
	registry *logic.SessionRegistry
}

func NewMessageController(registry *logic.SessionRegistry) *MessageController {
	return &MessageController{registry: registry}
}

// AddMessage handles POST /chat: one full exchange for the session owner
func (c *MessageController) AddMessage(ctx *gin.Context) {
	type Request struct {
		Message string `json:"message" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, err := extractUID(ctx)
	if err != nil {
		return
	}

	session := c.registry.Session(uid)
	result, err := session.Submit(req.Message)
	if err != nil {
		if errors.Is(err, logic.ErrEmptyMessage) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, logic.ErrExchangeInFlight) {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetMessages handles GET /messages
func (c *MessageController) GetMessages(ctx *gin.Context) {
	uid, err := extractUID(ctx)
	if err != nil {
		return
	}

	messages := c.registry.Session(uid).Messages()
	ctx.JSON(http.StatusOK, messages)
}
