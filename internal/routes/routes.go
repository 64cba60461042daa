package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-frontdesk/config"
	"github.com/c14220110/poliklinik-frontdesk/internal/common/middlewares"
	dashboardControllers "github.com/c14220110/poliklinik-frontdesk/internal/dashboard/controllers"
	dashboardRoutes "github.com/c14220110/poliklinik-frontdesk/internal/dashboard/routes"
	"github.com/c14220110/poliklinik-frontdesk/internal/dashboard/views"
	doctorControllers "github.com/c14220110/poliklinik-frontdesk/internal/doctor/controllers"
	doctorRoutes "github.com/c14220110/poliklinik-frontdesk/internal/doctor/routes"
	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/services"
	managementControllers "github.com/c14220110/poliklinik-frontdesk/internal/management/controllers"
	managementRoutes "github.com/c14220110/poliklinik-frontdesk/internal/management/routes"
	managementServices "github.com/c14220110/poliklinik-frontdesk/internal/management/services"
	receptionControllers "github.com/c14220110/poliklinik-frontdesk/internal/reception/controllers"
	receptionRoutes "github.com/c14220110/poliklinik-frontdesk/internal/reception/routes"
	"github.com/c14220110/poliklinik-frontdesk/pkg/utils"
	"github.com/c14220110/poliklinik-frontdesk/ws"
)

type Deps struct {
	Config *config.Config
	Desk   *services.Desk
	Hub    *ws.Hub
	Logger zerolog.Logger
}

// Init wires every area onto e. Mutating routes are guarded by the JWT
// middleware only when auth is configured.
func Init(e *echo.Echo, d Deps) error {
	renderer, err := views.NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer

	e.Use(middleware.RequestID())
	e.Use(middlewares.Logger(d.Logger))
	e.Use(middleware.Recover())

	var auth *managementServices.AuthService
	var guard echo.MiddlewareFunc = passthrough
	if d.Config.AuthEnabled() {
		auth = managementServices.NewAuthService(d.Config)
		guard = chain(
			middlewares.JWTMiddleware([]byte(d.Config.JWTSecret)),
			middlewares.RequireRole(utils.RoleFrontDesk),
		)
	}

	receptionController := receptionControllers.NewReceptionController(d.Desk)
	doctorController := doctorControllers.NewDoctorController(d.Desk)
	statsController := managementControllers.NewStatsController(d.Desk)
	boardController := dashboardControllers.NewBoardController(d.Desk, auth, !d.Config.IsDev())

	var authController *managementControllers.AuthController
	if auth != nil {
		authController = managementControllers.NewAuthController(auth)
	}

	api := e.Group("/api")
	receptionRoutes.RegisterReceptionRoutes(api, receptionController, guard)
	doctorRoutes.RegisterDoctorRoutes(api, doctorController, guard)
	managementRoutes.RegisterManagementRoutes(api, statsController, authController)

	dashboardRoutes.RegisterDashboardRoutes(e, boardController, guard)
	e.GET("/ws", ws.ServeWS(d.Hub), guard)

	return nil
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

// chain applies mws so that the first one runs first.
func chain(mws ...echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
