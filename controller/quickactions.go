package controller

import (
	"net/http"

	"github.com/Bumblebig/UniSupport/logic"

	"github.com/gin-gonic/gin"
)

// QuickActionController handles HTTP requests
type QuickActionController struct{}

func NewQuickActionController() *QuickActionController {
	return &QuickActionController{}
}

// GetQuickActions handles GET /quick-actions
func (c *QuickActionController) GetQuickActions(ctx *gin.Context) {
	category := ctx.DefaultQuery("category", logic.CategoryAll)

	ctx.JSON(http.StatusOK, gin.H{
		"categories": logic.Categories(),
		"actions":    logic.FilterQuickActions(category),
	})
}
