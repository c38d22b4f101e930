package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodgo/food-go-backend/api/controllers"
	"github.com/foodgo/food-go-backend/api/middleware"
	"github.com/foodgo/food-go-backend/internal/auth"
	"github.com/foodgo/food-go-backend/internal/devices"
	"github.com/foodgo/food-go-backend/internal/orders"
	"github.com/foodgo/food-go-backend/internal/paymentcards"
	"github.com/foodgo/food-go-backend/internal/users"
	"github.com/foodgo/food-go-backend/pkg/config"
	"github.com/foodgo/food-go-backend/pkg/db"
	"github.com/foodgo/food-go-backend/pkg/logger"
	redisclient "github.com/foodgo/food-go-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         redisclient.Pinger
	DeviceManager *devices.Manager

	AuthService          auth.Service
	RegisterService      auth.RegisterService
	PasswordResetService auth.PasswordResetService
	ProfileService       users.Service
	CardService          paymentcards.Service
	OrderService         orders.Service
}

// NewRouter assembles the API: public auth endpoints, token-guarded user
// resources, and device-scoped session/cart routes.
func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.DB, params.Redis))
	})

	r.Get("/api/ping", controllers.PublicPing())

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.Device(logg)).Post("/sign-in", controllers.AuthSignIn(params.AuthService, params.DeviceManager, logg))
		r.Post("/sign-up", controllers.AuthSignUp(params.RegisterService, params.AuthService, logg))
		r.Post("/forgot-password", controllers.AuthForgotPassword(params.PasswordResetService, logg))
		r.Post("/restore-password", controllers.AuthRestorePassword(params.PasswordResetService, logg))
		r.Post("/reset-password", controllers.AuthResetPassword(params.PasswordResetService, logg))
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/profile/{id}", controllers.ProfileGet(params.ProfileService, logg))
		r.Patch("/profile/{id}", controllers.ProfileUpdate(params.ProfileService, logg))

		r.Get("/payment-card/{id}", controllers.PaymentCardsList(params.CardService, logg))
		r.Post("/payment-card/{id}", controllers.PaymentCardsAdd(params.CardService, logg))
		r.Delete("/payment-card/{id}/{cardId}", controllers.PaymentCardsDelete(params.CardService, logg))

		r.Get("/order-history/{email}", controllers.OrderHistory(params.OrderService, logg))
	})

	r.Route("/api/session", func(r chi.Router) {
		r.Use(middleware.Device(logg))

		r.Get("/", controllers.SessionGet(params.DeviceManager, logg))
		r.Post("/sign-out", controllers.SessionSignOut(params.DeviceManager, logg))
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.Device(logg))

		r.Get("/", controllers.CartGet(params.DeviceManager, logg))
		r.Delete("/", controllers.CartClear(params.DeviceManager, logg))
		r.Post("/items", controllers.CartAddItem(params.DeviceManager, logg))
		r.Patch("/items/{productId}", controllers.CartUpdateQuantity(params.DeviceManager, logg))
		r.Delete("/items/{productId}", controllers.CartRemoveItem(params.DeviceManager, logg))
		r.Post("/checkout", controllers.CartCheckout(params.DeviceManager, params.OrderService, logg))
	})

	return r
}
