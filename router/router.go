package router

import (
	"net/http"

	"jewel-studio-api/common"
	"jewel-studio-api/handler"
	"jewel-studio-api/service"

	"github.com/rs/cors"
)

// NewRouter wires every endpoint. Admin mutation routes go through the
// bearer-token middleware; everything else is public.
func NewRouter(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	adminHandler *handler.AdminHandler,
	authService *service.AuthService,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	mux.Handle("POST /auth/signup", handler.ErrorHandlingMiddleware(authHandler.Signup))
	mux.Handle("POST /auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /auth/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))

	mux.Handle("GET /products", handler.ErrorHandlingMiddleware(productHandler.List))

	requireAuth := func(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return handler.AuthMiddleware(authService, handler.ErrorHandlingMiddleware(h))
	}
	mux.Handle("POST /admin/products", requireAuth(adminHandler.CreateProduct))
	mux.Handle("DELETE /admin/products", requireAuth(adminHandler.DeleteProduct))
	mux.Handle("POST /admin/products/upload-url", requireAuth(adminHandler.GenerateUploadURL))

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(mux)
}
