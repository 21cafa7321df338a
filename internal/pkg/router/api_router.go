package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	"github.com/seguraep/acm-reportes/app/controllers"
	"github.com/seguraep/acm-reportes/internal/pkg/env"
	"github.com/seguraep/acm-reportes/internal/pkg/middleware"
)

type ApiRouter struct {
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// shared limiter state so every instance behind the balancer counts the
	// same client
	store := redisstorage.New(redisstorage.Config{
		Host:     env.GetEnv("CACHE_HOST", "localhost"),
		Port:     env.GetEnvInt("CACHE_PORT", 6379),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
	})

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:     env.GetEnvInt("RATE_LIMIT_MAX", 120),
		Storage: store,
	}))

	api.Get("/health", controllers.HandleHealth)

	// auth
	auth := api.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/refresh", controllers.HandleRefresh)
	auth.Post("/logout", controllers.HandleLogout)
	auth.Post("/recuperar-contrasena", controllers.HandleRecoverPassword)
	auth.Post("/restablecer-contrasena", controllers.HandleResetPassword)

	// users
	usuarios := api.Group("/usuarios")
	usuarios.Get("/verificar-email", controllers.HandleCheckEmail)
	usuarios.Get("/verificar-cedula", controllers.HandleCheckCedula)
	usuarios.Get("/perfil", middleware.BearerAuthMiddleware(), controllers.HandleGetProfile)
	usuarios.Put("/perfil", middleware.BearerAuthMiddleware(), controllers.HandleUpdateProfile)
	usuarios.Get("/", middleware.BearerAuthMiddleware(), middleware.RequireAdmin, controllers.HandleListUsers)
	usuarios.Get("/buscar", middleware.BearerAuthMiddleware(), middleware.RequireAdmin, controllers.HandleSearchUsers)

	// reports
	reportes := api.Group("/reportes")
	// submission accepts anonymous reports, an invalid bearer degrades to
	// anonymous instead of rejecting
	reportes.Post("/", middleware.OptionalBearerAuthMiddleware(), controllers.HandleCreateReport)
	reportes.Get("/publicos", controllers.HandlePublicReports)
	reportes.Get("/publicos/:uuid", controllers.HandleGetPublicReport)
	reportes.Get("/estadisticas", controllers.HandleReportStats)
	reportes.Get("/mis-reportes", middleware.BearerAuthMiddleware(), controllers.HandleMyReports)
	reportes.Get("/buscar", middleware.BearerAuthMiddleware(), controllers.HandleSearchReports)
	reportes.Get("/exportar", middleware.BearerAuthMiddleware(), middleware.RequireAdmin, controllers.HandleExportReports)
	reportes.Get("/:uuid", middleware.BearerAuthMiddleware(), controllers.HandleGetReport)
	reportes.Get("/:uuid/descargar", middleware.BearerAuthMiddleware(), controllers.HandleDownloadReport)
	reportes.Get("/:uuid/imprimir", middleware.BearerAuthMiddleware(), controllers.HandlePrintReport)
	reportes.Get("/:uuid/coordenadas", controllers.HandleGetReportCoordinates)
	reportes.Put("/:uuid/estado", middleware.BearerAuthMiddleware(), middleware.RequireAdmin, controllers.HandleUpdateReportEstado)
	reportes.Delete("/:uuid", middleware.BearerAuthMiddleware(), middleware.RequireAdmin, controllers.HandleDeleteReport)

	// resumes
	hojas := api.Group("/hojas-vida", middleware.BearerAuthMiddleware())
	hojas.Get("/", controllers.HandleGetHojaVida)
	hojas.Put("/", controllers.HandleUpdateHojaVida)
	hojas.Get("/:userID/descargar", controllers.HandleDownloadHojaVida)
	hojas.Get("/:userID", middleware.RequireAdmin, controllers.HandleGetHojaVidaByUser)

	// law catalog (public reads)
	leyes := api.Group("/leyes-normas")
	leyes.Get("/", controllers.HandleListLaws)
	leyes.Get("/:id/articulos", controllers.HandleGetLawArticles)
	leyes.Post("/sincronizar", middleware.BearerAuthMiddleware(), middleware.RequireAdmin, controllers.HandleSyncLaws)
}
