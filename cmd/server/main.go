package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Bumblebig/UniSupport/config"
	"github.com/Bumblebig/UniSupport/controller"
	"github.com/Bumblebig/UniSupport/dao"
	"github.com/Bumblebig/UniSupport/logic"
	"github.com/Bumblebig/UniSupport/middleware"
	"github.com/Bumblebig/UniSupport/models"
	"github.com/Bumblebig/UniSupport/pkg"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Initialize config
	if len(os.Args) < 2 {
		log.Fatal("Usage: server <config.yaml>")
	}
	configFile := os.Args[1]
	if err := config.LoadConfig(configFile); err != nil {
		log.Fatalf("Failed to load config from %s: %v", configFile, err)
	}
	cfg := &config.GlobalConfig

	// Initialize database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Message{})

	// Initialize session manager
	sessions, err := logic.NewSessionManager(
		cfg.Redis.Address,
		cfg.Redis.Password,
		cfg.Redis.Database,
		cfg.Redis.Prefix,
		cfg.Auth.Secret,
		cfg.SessionTTL(),
	)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}
	defer sessions.Close()

	// Initialize chat client
	chatClient := pkg.NewChatClient(cfg.Chat.Endpoint)

	// Initialize DAOs
	userDAO := dao.NewUserDAO(db)
	messageDAO := dao.NewMessageDAO(db)

	// Initialize Logics
	userLogic := logic.NewUserLogic(userDAO, sessions)
	registry := logic.NewSessionRegistry(messageDAO, chatClient)

	// Drop live chat sessions when their owner signs out
	stopWatch := registry.Watch(sessions)
	defer stopWatch()

	// Initialize Controllers
	userCtrl := controller.NewUserController(userLogic)
	messageCtrl := controller.NewMessageController(registry)
	quickCtrl := controller.NewQuickActionController()
	demoCtrl := controller.NewDemoController()

	// Setup Gin router
	r := gin.Default()
	r.POST("/auth/signup", userCtrl.Signup)
	r.POST("/auth/login", userCtrl.Login)
	r.POST("/auth/logout", middleware.Auth(sessions), userCtrl.Logout)
	r.GET("/user", middleware.Auth(sessions), userCtrl.GetUser)
	r.GET("/messages", middleware.Auth(sessions), messageCtrl.GetMessages)
	r.POST("/chat", middleware.Auth(sessions), messageCtrl.AddMessage)
	r.GET("/quick-actions", quickCtrl.GetQuickActions)

	// Legacy demo credential endpoints
	r.POST("/api/auth/login", demoCtrl.Login)
	r.POST("/api/auth", demoCtrl.Auth)

	// Run server
	if err := r.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
