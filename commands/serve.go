package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hotel-frontend/config"
	"hotel-frontend/controllers"
	"hotel-frontend/routes"
	"hotel-frontend/services"
)

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return fmt.Errorf("database connect failed: %w", err)
	}
	log.Printf("✅ Database connection established (%s) and migrations applied.", cfg.DBDriver)

	api := services.NewAPIClient(cfg.APIBaseURL, cfg.UpstreamTimeout)
	log.Printf("✅ Backend API at %s", cfg.APIBaseURL)

	// Initialize services
	storage := services.NewStorageService(db)
	roomService := services.NewRoomService(db, services.NewUpstreamRoomSource(api))
	bookingService := services.NewBookingService(cfg.GuestNoticeDuration, cfg.BookingDelay)
	authService := services.NewAuthService(api, storage)
	contactService := services.NewContactService(db, api)
	adminService := services.NewAdminService(api)

	if err := roomService.Warm(); err != nil {
		log.Printf("⚠️  %v", err)
	}

	// Initialize controllers
	roomController := controllers.NewRoomController(roomService, bookingService, storage)
	bookingController := controllers.NewBookingController(roomService, bookingService, storage)
	authController := controllers.NewAuthController(authService)
	contactController := controllers.NewContactController(contactService)
	adminController := controllers.NewAdminController(adminService, storage)

	router := routes.SetupRouter(routes.Options{
		CORSOrigins:   cfg.CORSOrigins,
		SessionCookie: cfg.SessionCookie,
		Auth:          authService,
		Admin:         adminService,
		Storage:       storage,
	}, roomController, bookingController, authController, contactController, adminController)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// first catalog load, like the rooms page does on mount
	go func() {
		if err := roomService.Load(ctx); err == nil {
			log.Printf("✅ Loaded %d rooms", len(roomService.Rooms()))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("✅ Server stopped gracefully")
	return nil
}
