package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func extractUID(c *gin.Context) (string, error) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return "", errors.New("uid not found in context")
	}
	return uid, nil
}

func extractToken(c *gin.Context) (string, error) {
	token := c.GetString("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not found in context"})
		return "", errors.New("token not found in context")
	}
	return token, nil
}
