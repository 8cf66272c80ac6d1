package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ketotrack/internal/auth"
	"ketotrack/internal/config"
	"ketotrack/internal/handler"
	"ketotrack/internal/repository"
)

// Register wires routes and middleware.
//
// Two protected surfaces: the account surface (/api/me) behind short-lived
// JWTs, and the data surface (/api/v1) behind the rotating opaque API token.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	tokenRepo repository.TokenRepository,
	profileRepo repository.ProfileRepository,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	productHandler *handler.ProductHandler,
	summaryHandler *handler.SummaryHandler,
	reportHandler *handler.ReportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Account surface (JWT)
	me := api.Group("/me", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))
	me.GET("/profile", profileHandler.GetProfile)
	me.PUT("/profile", profileHandler.UpdateProfile)
	me.GET("/demand", profileHandler.GetDemand)
	me.GET("/token", authHandler.APIToken)

	// Data surface (rotating API token)
	v1 := api.Group("/v1", auth.APITokenMiddleware(tokenStore, tokenRepo, profileRepo))

	v1.POST("/products", productHandler.CreateProduct)
	v1.GET("/products", productHandler.ListProducts)
	v1.GET("/products/:id", productHandler.GetProduct)
	v1.PUT("/products/:id", productHandler.UpdateProduct)
	v1.DELETE("/products/:id", productHandler.DeleteProduct)

	v1.GET("/summary/:date", summaryHandler.GetDaily)
	v1.GET("/calendar", summaryHandler.GetCalendar)

	v1.POST("/reports", reportHandler.RequestReport)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
