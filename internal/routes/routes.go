package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campuskart-backend/internal/handlers"
	"campuskart-backend/internal/middleware"
	"campuskart-backend/internal/token"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	authHandler *handlers.AuthHandler,
	itemsHandler *handlers.ItemsHandler,
	uploadHandler *handlers.UploadHandler,
	googleAuthHandler *handlers.GoogleAuthHandler,
	healthHandler *handlers.HealthHandler,
	tokens *token.Issuer,
	uploadDir string,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check routes
	mux.HandleFunc("/healthz", healthHandler.HealthCheck)
	mux.HandleFunc("/livez", healthHandler.LivenessCheck)
	mux.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("/auth/register", authHandler.Register)
	mux.HandleFunc("/auth/login", authHandler.Login)
	mux.HandleFunc("/auth/me", middleware.AuthMiddleware(authHandler.Me, tokens))
	mux.HandleFunc("GET /auth/profile/{userId}", authHandler.SellerProfile)
	mux.HandleFunc("/auth/google/login", googleAuthHandler.GoogleLogin)
	mux.HandleFunc("/auth/google/callback", googleAuthHandler.GoogleCallback)

	// Listing routes
	mux.HandleFunc("POST /items", middleware.AuthMiddleware(itemsHandler.Create, tokens))
	mux.HandleFunc("GET /items", itemsHandler.List)
	mux.HandleFunc("GET /items/{itemId}", itemsHandler.Detail)

	// Item photo upload and static serving
	mux.HandleFunc("POST /upload", middleware.AuthMiddleware(uploadHandler.Upload, tokens))
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("/", rootHandler)

	return mux
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte("CampusKart backend is running."))
}
