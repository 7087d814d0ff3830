package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davlatp7-commits/render-restaurant/internal/config"
	"github.com/davlatp7-commits/render-restaurant/internal/handlers"
	"github.com/davlatp7-commits/render-restaurant/internal/models"
	"github.com/davlatp7-commits/render-restaurant/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(cfg.MigrationsDir); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	templates.AddFunc("statuses", func() []models.Status { return models.Statuses })

	if err := templates.Load(cfg.TemplatesDir); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	clientHandler := &handlers.ClientHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
		BaseURL:      cfg.BaseURL,
	}
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
		UploadDir:    cfg.UploadDir,
	}
	waiterHandler := &handlers.WaiterHandler{
		Store:     db,
		Templates: templates,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Dampens duplicate order submissions from double-clicked forms.
	rateLimiter := handlers.NewRateLimiter(5 * time.Second)

	// Client Routes
	mux.HandleFunc("GET /{$}", clientHandler.Index)
	mux.HandleFunc("POST /add_to_cart/{dish_id}", clientHandler.AddToCart)
	mux.HandleFunc("GET /cart", clientHandler.Cart)
	mux.HandleFunc("POST /submit_order", rateLimiter.Middleware(clientHandler.SubmitOrder))
	mux.HandleFunc("GET /order_status/{table_id}", clientHandler.OrderStatus)
	mux.HandleFunc("GET /qr", clientHandler.QRPage)

	// Admin Routes
	mux.HandleFunc("GET /admin/{$}", adminHandler.Panel)
	mux.HandleFunc("POST /admin/add", adminHandler.AddDish)
	mux.HandleFunc("GET /admin/delete/{id}", adminHandler.DeleteDish)
	mux.HandleFunc("GET /admin/toggle/{id}", adminHandler.ToggleDish)
	mux.HandleFunc("GET /admin/edit/{id}", adminHandler.EditDishForm)
	mux.HandleFunc("POST /admin/edit/{id}", adminHandler.UpdateDish)
	mux.HandleFunc("GET /admin/orders", adminHandler.Orders)
	mux.HandleFunc("POST /admin/update_status/{order_id}", adminHandler.UpdateOrderStatus)
	mux.HandleFunc("GET /admin/orders/history", adminHandler.OrdersHistory)
	mux.HandleFunc("GET /admin/categories", adminHandler.Categories)
	mux.HandleFunc("POST /admin/categories/add", adminHandler.AddCategory)
	mux.HandleFunc("POST /admin/categories/edit/{id}", adminHandler.EditCategory)
	mux.HandleFunc("GET /admin/categories/delete/{id}", adminHandler.DeleteCategory)

	// Waiter Routes
	mux.HandleFunc("GET /waiter/{$}", waiterHandler.Panel)
	mux.HandleFunc("GET /waiter/update_status/{order_id}/{status}", waiterHandler.UpdateStatus)
	mux.HandleFunc("GET /waiter/check_new", waiterHandler.CheckNew)
	mux.HandleFunc("GET /waiter/delete/{order_id}", waiterHandler.CompleteOrder)
	mux.HandleFunc("GET /waiter/history", waiterHandler.History)
	mux.HandleFunc("GET /waiter/clear", waiterHandler.ClearHistory)

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
