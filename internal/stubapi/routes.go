package stubapi

import (
	"time"

	"gymdesk/console/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the full backend contract onto a gin engine. Login
// endpoints are open; everything else requires a bearer token, with role
// policy per path group.
func NewRouter(store *Store, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	h := NewHandler(store, jwtSecret, tokenTTL, logger)
	authed := authMiddleware(jwtSecret)
	managerOnly := requireRole(domain.RoleManager)

	router.POST("/managers/login", h.login(domain.RoleManager))
	router.POST("/trainers/login", h.login(domain.RoleTrainer))
	router.POST("/members/login", h.login(domain.RoleMember))

	members := router.Group("/members", authed)
	{
		members.GET("", managerOnly, h.listMembers)
		members.POST("/create", managerOnly, h.createMember)
		members.PUT("/:id", managerOnly, h.updateMember)
		members.DELETE("/:id", managerOnly, h.deleteMember)
		members.PUT("/:id/assign-trainer", managerOnly, h.assignTrainer)

		memberOnly := requireRole(domain.RoleMember)
		members.GET("/me", memberOnly, h.memberMe)
		members.GET("/assigned-trainer", memberOnly, h.memberAssignedTrainer)
		members.GET("/schedules", memberOnly, h.memberSchedules)
	}

	trainers := router.Group("/trainers", authed)
	{
		trainers.GET("", managerOnly, h.listTrainers)
		trainers.POST("/create", managerOnly, h.createTrainer)
		trainers.PUT("/:id", managerOnly, h.updateTrainer)
		trainers.DELETE("/:id", managerOnly, h.deleteTrainer)

		trainerOnly := requireRole(domain.RoleTrainer)
		trainers.GET("/assigned-members", trainerOnly, h.trainerAssignedMembers)
		trainers.GET("/schedules", trainerOnly, h.trainerSchedules)
	}

	schedules := router.Group("/schedules", authed, managerOnly)
	{
		schedules.GET("", h.listSchedules)
		schedules.POST("/create", h.createSchedule)
		schedules.DELETE("/:id", h.deleteSchedule)
		schedules.PUT("/:id/add-member", h.addMemberToSchedule)
	}

	router.GET("/reports/dashboard", authed, managerOnly, h.dashboard)

	return router
}

// requestLogger logs each request with its correlation id, if the client
// sent one.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
			zap.Duration("elapsed", time.Since(start)))
	}
}
