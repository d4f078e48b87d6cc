package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"campusmarket/cmd/app"
	"campusmarket/internal/config"
	handlers "campusmarket/internal/handler"
	"campusmarket/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	requireAuth := middleware.RequireAuth(services.Auth)

	// setting up routes
	r := mux.NewRouter()

	r.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-email", handler.VerifyEmail).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-id", handler.VerifyID).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/google", handler.GoogleAuth).Methods(http.MethodPost)

	api.HandleFunc("/items", handler.GetItems).Methods(http.MethodGet)
	api.Handle("/items", requireAuth(http.HandlerFunc(handler.CreateItem))).Methods(http.MethodPost)

	api.HandleFunc("/lost-found", handler.GetLostFoundPosts).Methods(http.MethodGet)
	api.Handle("/lost-found", requireAuth(http.HandlerFunc(handler.CreateLostFound))).Methods(http.MethodPost)
	api.HandleFunc("/lost-found/{id}", handler.GetLostFoundPost).Methods(http.MethodGet)
	api.Handle("/lost-found/{id}", requireAuth(http.HandlerFunc(handler.UpdateLostFoundPost))).Methods(http.MethodPut)
	api.Handle("/lost-found/{id}", requireAuth(http.HandlerFunc(handler.DeleteLostFoundPost))).Methods(http.MethodDelete)

	api.HandleFunc("/users/{id}", handler.GetUserProfile).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
