package server

import (
	"log"
	"strings"
	"time"

	"github.com/alumninet/alumninet/internal/config"
	"github.com/alumninet/alumninet/internal/middleware"
	"github.com/alumninet/alumninet/internal/ranking"
	"github.com/alumninet/alumninet/pkg/storage"

	connHttp "github.com/alumninet/alumninet/internal/modules/connection/delivery/http"
	connRepo "github.com/alumninet/alumninet/internal/modules/connection/repository"
	connService "github.com/alumninet/alumninet/internal/modules/connection/service"

	mentorHttp "github.com/alumninet/alumninet/internal/modules/mentorship/delivery/http"
	mentorRepo "github.com/alumninet/alumninet/internal/modules/mentorship/repository"
	mentorService "github.com/alumninet/alumninet/internal/modules/mentorship/service"

	notiHttp "github.com/alumninet/alumninet/internal/modules/notification/delivery/http"
	notifRepo "github.com/alumninet/alumninet/internal/modules/notification/repository"
	notifService "github.com/alumninet/alumninet/internal/modules/notification/service"

	profileHttp "github.com/alumninet/alumninet/internal/modules/profile/delivery/http"
	profileService "github.com/alumninet/alumninet/internal/modules/profile/service"

	searchService "github.com/alumninet/alumninet/internal/modules/search/service"

	universityHttp "github.com/alumninet/alumninet/internal/modules/university/delivery/http"
	universityRepo "github.com/alumninet/alumninet/internal/modules/university/repository"
	universityService "github.com/alumninet/alumninet/internal/modules/university/service"

	userHttp "github.com/alumninet/alumninet/internal/modules/user/delivery/http"
	userRepo "github.com/alumninet/alumninet/internal/modules/user/repository"
	userService "github.com/alumninet/alumninet/internal/modules/user/service"

	"github.com/alumninet/alumninet/internal/entity"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	users := userRepo.NewUserRepository(db)
	universities := universityRepo.NewUniversityRepository(db)
	connections := connRepo.NewConnectionRepository(db)
	mentorships := mentorRepo.NewMentorshipRepository(db)
	notifications := notifRepo.NewNotificationRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		// Avatar uploads are disabled without credentials; everything else works.
		log.Printf("cloudinary storage unavailable: %v", err)
		imageStorage = nil
	}

	var mentorSearch searchService.MentorSearchService
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		mentorSearch = searchService.NewMentorSearchService(meiliClient)
	}

	ranker := ranking.NewRandom(time.Now().UnixNano())

	notificationSvc := notifService.NewNotificationService(notifications, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient)

	authSvc := userService.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	adminSvc := userService.NewAdminService(users, universities)
	adminHandler := userHttp.NewAdminHandler(adminSvc)

	universitySvc := universityService.NewUniversityService(universities)
	universityHandler := universityHttp.NewUniversityHandler(universitySvc)

	profileSvc := profileService.NewProfileService(users, imageStorage)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	connectionSvc := connService.NewConnectionService(connections, users, notificationSvc, ranker)
	connectionHandler := connHttp.NewConnectionHandler(connectionSvc)

	mentorshipSvc := mentorService.NewMentorshipService(mentorships, users, notificationSvc, mentorSearch, ranker)
	mentorshipHandler := mentorHttp.NewMentorshipHandler(mentorshipSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(users)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleSuperadmin))
		{
			adminGroup.POST("/users", adminHandler.CreateUser)
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.PUT("/users/:id", adminHandler.UpdateUser)
			adminGroup.DELETE("/users/:id", adminHandler.DeactivateUser)
		}

		// Superadmin console
		superadminGroup := protected.Group("/superadmin")
		superadminGroup.Use(authMiddleware.RequireRole(entity.RoleSuperadmin))
		{
			superadminGroup.POST("/universities", universityHandler.Create)
			superadminGroup.GET("/universities", universityHandler.List)
			superadminGroup.PUT("/universities/:id", universityHandler.Update)
		}

		// Profile routes
		protected.GET("/profile/me", profileHandler.GetCurrentProfile)
		protected.GET("/profile/:id", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		// University routes
		protected.GET("/universities/me", universityHandler.GetOwn)

		// Connection routes
		protected.GET("/connections", connectionHandler.ListConnections)
		protected.GET("/connections/suggestions", connectionHandler.Suggestions)
		protected.POST("/connections/requests", connectionHandler.SendRequest)
		protected.GET("/connections/requests", connectionHandler.ListRequests)
		protected.PUT("/connections/requests/:id/accept", connectionHandler.AcceptRequest)
		protected.PUT("/connections/requests/:id/reject", connectionHandler.RejectRequest)
		protected.DELETE("/connections/:userId", connectionHandler.RemoveConnection)
		protected.GET("/connections/:userId/status", connectionHandler.CheckStatus)

		// Mentorship routes
		protected.GET("/mentors", mentorshipHandler.ListMentors)
		protected.POST("/mentors/toggle", mentorshipHandler.ToggleMentor)
		protected.POST("/mentors/:id/requests", mentorshipHandler.RequestMentorship)
		protected.GET("/mentorship/requests", mentorshipHandler.ListRequests)
		protected.PUT("/mentorship/requests/:id/accept", mentorshipHandler.AcceptRequest)
		protected.PUT("/mentorship/requests/:id/reject", mentorshipHandler.RejectRequest)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
