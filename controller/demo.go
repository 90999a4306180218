package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Demo-only credentials, kept apart from the real auth routes. These
// endpoints set a plain cookie and are not a real authorization
// mechanism.
const (
	demoEmail    = "demo@student.com"
	demoPassword = "demo123"

	demoUsername     = "student"
	demoUserPassword = "itdept2024"

	demoCookieMaxAge = 60 * 60 * 24 // 24 hours
)

// DemoController serves the legacy demo login endpoints
type DemoController struct{}

func NewDemoController() *DemoController {
	return &DemoController{}
}

// Login handles POST /api/auth/login
func (c *DemoController) Login(ctx *gin.Context) {
	type Request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Login failed"})
		return
	}

	if req.Email == demoEmail && req.Password == demoPassword {
		ctx.SetCookie("auth-token", "authenticated", demoCookieMaxAge, "/", "", false, true)
		ctx.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
}

// Auth handles POST /api/auth
func (c *DemoController) Auth(ctx *gin.Context) {
	type Request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Authentication failed"})
		return
	}

	if req.Username == demoUsername && req.Password == demoUserPassword {
		ctx.SetCookie("auth-token", "authenticated", demoCookieMaxAge, "/", "", false, true)
		ctx.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
}
