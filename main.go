package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendance-be/internal/cache"
	"attendance-be/internal/config"
	"attendance-be/internal/controllers"
	"attendance-be/internal/database"
	"attendance-be/internal/geocode"
	"attendance-be/internal/jwt"
	"attendance-be/internal/logging"
	"attendance-be/internal/metrics"
	"attendance-be/internal/middleware"
	"attendance-be/internal/repository"
	"attendance-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const serviceName = "attendance-be"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	logger := logging.SetDefault(serviceName, version, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Connect to database
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	// Redis is optional; without it every location lookup goes to the provider.
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache", "error", err)
			cacheClient = nil
		} else {
			defer cacheClient.Close()
			logger.Info("connected to redis cache")
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewEntryRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTL)*time.Hour)

	// Initialize services
	authService := service.NewAuthService(userRepo, service.NewBcryptHasher(service.DefaultBcryptCost), jwtService)
	attendanceService := service.NewAttendanceService(entryRepo, cfg.MaxPageLimit)
	locationService := service.NewLocationService(
		geocode.NewHTTPClient(cfg.GeocodeBaseURL, cfg.GeocodeTimeout),
		cacheClient,
		cfg.GeocodeCacheTTL,
	)

	router := newRouter(routerDeps{
		logger:         logger,
		tokens:         jwtService,
		registry:       metrics.NewRegistry(),
		auth:           controllers.NewAuthController(authService, cfg.RegisterResponseDelay, logger),
		attendance:     controllers.NewAttendanceController(attendanceService, logger),
		location:       controllers.NewLocationController(locationService, logger),
		qrcode:         controllers.NewQRCodeController(logger),
		generalLimiter: middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		authLimiter:    middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type routerDeps struct {
	logger         *slog.Logger
	tokens         middleware.TokenValidator
	registry       *prometheus.Registry
	auth           *controllers.AuthController
	attendance     *controllers.AttendanceController
	location       *controllers.LocationController
	qrcode         *controllers.QRCodeController
	generalLimiter *middleware.RateLimiter
	authLimiter    *middleware.RateLimiter
}

func newRouter(d routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(d.logger), metrics.Middleware())

	// Health check and metrics (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler(d.registry)))

	api := router.Group("")
	api.Use(d.generalLimiter.LimitMiddleware())
	{
		api.POST("/register", d.authLimiter.LimitMiddleware(), d.auth.Register)
		api.POST("/login", d.authLimiter.LimitMiddleware(), d.auth.Login)
		api.GET("/getLocation", d.location.GetLocation)
		api.GET("/qrcode", d.qrcode.GenerateQRCode)

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(d.tokens))
		{
			protected.POST("/checkIn", d.attendance.CheckIn)
			protected.POST("/checkOut", d.attendance.CheckOut)
			protected.GET("/allEntry", d.attendance.ListEntries)
		}
	}

	return router
}
