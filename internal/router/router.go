package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/zein-dev/kelasku-api/internal/handler"
	"github.com/zein-dev/kelasku-api/internal/middleware"
	"github.com/zein-dev/kelasku-api/internal/models"
	"github.com/zein-dev/kelasku-api/internal/service"
	"github.com/zein-dev/kelasku-api/pkg/config"
	"github.com/zein-dev/kelasku-api/pkg/logger"
	corsmiddleware "github.com/zein-dev/kelasku-api/pkg/middleware/cors"
	reqidmiddleware "github.com/zein-dev/kelasku-api/pkg/middleware/requestid"
)

// Deps carries everything the route table needs.
type Deps struct {
	Config *config.Config
	Logger *zap.Logger

	Auth         *service.AuthService
	Schedule     *service.ScheduleService
	Assignment   *service.AssignmentService
	Activity     *service.ActivityService
	ExternalInfo *service.ExternalInfoService
	Forum        *service.ForumService
	Affirmation  *service.AffirmationService
	Metrics      *service.MetricsService

	AuditWriter middleware.AuditWriter
	Tokens      middleware.TokenValidator
}

// New builds the gin engine with the full route table. The permission gate
// runs as middleware: JWT resolves the caller, RequireRoles checks the role,
// and ownership rules are re-checked inside the forum service.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
	}))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authRequired := middleware.JWT(deps.Tokens)
	adminOnly := middleware.AdminOnly()

	api := r.Group(deps.Config.APIPrefix)

	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", authRequired, authHandler.Profile)
	}

	scheduleHandler := handler.NewScheduleHandler(deps.Schedule)
	schedule := api.Group("/schedule")
	{
		schedule.GET("", authRequired, scheduleHandler.List)
		schedule.GET("/export", authRequired, adminOnly, scheduleHandler.Export)
		schedule.GET("/:id", authRequired, scheduleHandler.Get)
		schedule.POST("", authRequired, adminOnly, audit(deps, models.AuditActionCreate, "schedule"), scheduleHandler.Create)
		schedule.PUT("/:id", authRequired, adminOnly, audit(deps, models.AuditActionUpdate, "schedule"), scheduleHandler.Update)
		schedule.DELETE("/:id", authRequired, adminOnly, audit(deps, models.AuditActionDelete, "schedule"), scheduleHandler.Delete)
	}

	assignmentHandler := handler.NewAssignmentHandler(deps.Assignment)
	assignments := api.Group("/assignments")
	{
		assignments.GET("", authRequired, assignmentHandler.List)
		assignments.GET("/export", authRequired, adminOnly, assignmentHandler.Export)
		assignments.GET("/:id", authRequired, assignmentHandler.Get)
		assignments.POST("", authRequired, adminOnly, audit(deps, models.AuditActionCreate, "assignment"), assignmentHandler.Create)
		assignments.PUT("/:id", authRequired, adminOnly, audit(deps, models.AuditActionUpdate, "assignment"), assignmentHandler.Update)
		assignments.PATCH("/:id/complete", authRequired, assignmentHandler.Complete)
		assignments.DELETE("/:id", authRequired, adminOnly, audit(deps, models.AuditActionDelete, "assignment"), assignmentHandler.Delete)
	}

	activityHandler := handler.NewActivityHandler(deps.Activity)
	activities := api.Group("/activities")
	{
		activities.GET("", authRequired, activityHandler.List)
		activities.GET("/:id", authRequired, activityHandler.Get)
		activities.POST("", authRequired, adminOnly, audit(deps, models.AuditActionCreate, "activity"), activityHandler.Create)
		activities.PUT("/:id", authRequired, adminOnly, audit(deps, models.AuditActionUpdate, "activity"), activityHandler.Update)
		activities.DELETE("/:id", authRequired, adminOnly, audit(deps, models.AuditActionDelete, "activity"), activityHandler.Delete)
		activities.POST("/:id/register", authRequired, activityHandler.Register)
	}

	externalInfoHandler := handler.NewExternalInfoHandler(deps.ExternalInfo)
	externalInfo := api.Group("/external-info")
	{
		externalInfo.GET("", authRequired, externalInfoHandler.List)
		externalInfo.GET("/:id", authRequired, externalInfoHandler.Get)
		externalInfo.POST("", authRequired, adminOnly, audit(deps, models.AuditActionCreate, "external_info"), externalInfoHandler.Create)
		externalInfo.PUT("/:id", authRequired, adminOnly, audit(deps, models.AuditActionUpdate, "external_info"), externalInfoHandler.Update)
		externalInfo.DELETE("/:id", authRequired, adminOnly, audit(deps, models.AuditActionDelete, "external_info"), externalInfoHandler.Delete)
	}

	forumHandler := handler.NewForumHandler(deps.Forum)
	forum := api.Group("/forum/posts")
	{
		forum.GET("", authRequired, forumHandler.List)
		forum.GET("/:id", authRequired, forumHandler.Get)
		forum.POST("", authRequired, forumHandler.Create)
		forum.PUT("/:id", authRequired, forumHandler.Update)
		forum.DELETE("/:id", authRequired, forumHandler.Delete)
		forum.POST("/:id/comments", authRequired, forumHandler.AddComment)
		forum.PUT("/:id/upvote", middleware.OptionalJWT(deps.Tokens), forumHandler.Upvote)
	}

	affirmationHandler := handler.NewAffirmationHandler(deps.Affirmation)
	api.GET("/affirmations/daily", affirmationHandler.Daily)

	return r
}

func audit(deps Deps, action, resource string) gin.HandlerFunc {
	if deps.AuditWriter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.Audit(deps.AuditWriter, action, resource)
}
