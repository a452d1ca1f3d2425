package server

import (
	"context"
	"net/http"
	"time"

	"github.com/erfantq/Sports-Hall-Reservation/internal/auth"
	"github.com/erfantq/Sports-Hall-Reservation/internal/availability"
	"github.com/erfantq/Sports-Hall-Reservation/internal/booking"
	"github.com/erfantq/Sports-Hall-Reservation/internal/config"
	"github.com/erfantq/Sports-Hall-Reservation/internal/contact"
	"github.com/erfantq/Sports-Hall-Reservation/internal/email"
	"github.com/erfantq/Sports-Hall-Reservation/internal/hall"
	"github.com/erfantq/Sports-Hall-Reservation/internal/stats"
	"github.com/erfantq/Sports-Hall-Reservation/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	userHandler := user.NewHandler(db, emailService, cfg.JWTSecret)
	hallHandler := hall.NewHandler(db)
	bookingHandler := booking.NewHandler(db, emailService)
	availabilityHandler := availability.NewHandler(db)
	statsHandler := stats.NewHandler(db)
	contactHandler := contact.NewHandler(db)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
		public.POST("/forgot-password", userHandler.ForgotPassword)
		public.POST("/verify-code", userHandler.VerifyResetCode)
	}

	router.GET("/halls", hallHandler.ListHalls)
	router.GET("/halls/:hallID", hallHandler.GetHall)
	router.GET("/halls/:hallID/slots", availabilityHandler.GetSlots)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me", userHandler.UpdateMe)
		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/contact", contactHandler.CreateMessage)
	}

	manager := router.Group("/manager")
	manager.Use(authMiddleware, auth.RequireRole(auth.RoleManager, auth.RoleSysAdmin))
	{
		manager.POST("/halls", hallHandler.CreateHall)
		manager.GET("/halls", hallHandler.ListManagerHalls)
		manager.PUT("/halls/:hallID", hallHandler.UpdateHall)
		manager.DELETE("/halls/:hallID", hallHandler.DeleteHall)
		manager.GET("/bookings", bookingHandler.ListManagerBookings)
		manager.PATCH("/bookings/:bookingID/status", bookingHandler.UpdateBooking)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleSysAdmin))
	{
		admin.GET("/stats", statsHandler.GetSystemStats)
		admin.GET("/usage", statsHandler.GetWeeklyUsage)
		admin.GET("/contact", contactHandler.ListMessages)
		admin.PATCH("/contact/:messageID/read", contactHandler.MarkMessageRead)
		admin.PATCH("/bookings/:bookingID/status", bookingHandler.UpdateBooking)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.srv = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
