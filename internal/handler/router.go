package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ExactwareSolution/booktimez-app/internal/handler/api"
	"github.com/ExactwareSolution/booktimez-app/internal/handler/middleware"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Public      *api.PublicHandler
	Schedule    *api.ScheduleHandler
	Resource    *api.ResourceHandler
	Appointment *api.AppointmentHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RedisRateLimiter,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware, rateLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RedisRateLimiter,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		public := apiGroup.Group("/public")
		{
			businesses := public.Group("/businesses/:ref")
			addRoutes(businesses, []route{
				{Method: http.MethodGet, Path: "/categories", Handler: handlers.Public.GetBusiness},
				{Method: http.MethodGet, Path: "/categories/:categoryId/slots", Handler: handlers.Public.ListSlots},
				{Method: http.MethodPost, Path: "/appointments", Handler: handlers.Public.CreateBooking,
					Mw: []gin.HandlerFunc{rateLimiter.LimitBooking()}},
			})

			appointments := public.Group("/appointments")
			addRoutes(appointments, []route{
				{Method: http.MethodGet, Path: "/:cancelToken", Handler: handlers.Public.GetAppointment},
				{Method: http.MethodPost, Path: "/:cancelToken/cancel", Handler: handlers.Public.CancelAppointment},
			})
		}

		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: handlers.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: handlers.Auth.Me},
			})
		}

		owner := apiGroup.Group("/businesses/:businessId")
		owner.Use(authMiddleware.RequireAuth())
		{
			addRoutes(owner, []route{
				{Method: http.MethodGet, Path: "/availabilities", Handler: handlers.Schedule.ListRules},
				{Method: http.MethodPost, Path: "/availabilities", Handler: handlers.Schedule.CreateRule},
				{Method: http.MethodDelete, Path: "/availabilities/:id", Handler: handlers.Schedule.DeleteRule},

				{Method: http.MethodGet, Path: "/resources", Handler: handlers.Resource.ListResources},
				{Method: http.MethodPost, Path: "/resources", Handler: handlers.Resource.CreateResource},
				{Method: http.MethodPut, Path: "/resources/:id", Handler: handlers.Resource.UpdateResource},
				{Method: http.MethodDelete, Path: "/resources/:id", Handler: handlers.Resource.DeleteResource},

				{Method: http.MethodGet, Path: "/appointments", Handler: handlers.Appointment.ListAppointments},
				{Method: http.MethodPost, Path: "/appointments/:id/cancel", Handler: handlers.Appointment.CancelAppointment},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
