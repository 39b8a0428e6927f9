package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/playcourt/booking-backend/internal/api"
	"github.com/playcourt/booking-backend/internal/auth"
	"github.com/playcourt/booking-backend/internal/booking"
	"github.com/playcourt/booking-backend/internal/coach"
	"github.com/playcourt/booking-backend/internal/config"
	"github.com/playcourt/booking-backend/internal/court"
	"github.com/playcourt/booking-backend/internal/db"
	"github.com/playcourt/booking-backend/internal/equipment"
	"github.com/playcourt/booking-backend/internal/pkg/storage"
	"github.com/playcourt/booking-backend/internal/pricing"
	"github.com/playcourt/booking-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	RedisClient *redis.Client
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
	txManager := db.NewTxManager(pool, cfg.TxTimeout)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage failed: %w", err)
	}
	imageProcessor := storage.NewImageProcessor()

	// Optional Redis, used only for rate limiting
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	// User module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher)

	// Court module
	courtRepo := court.NewPgxRepository(pool)
	courtService := court.NewService(courtRepo, store, imageProcessor)

	// Coach module
	coachRepo := coach.NewPgxRepository(pool)
	coachService := coach.NewService(coachRepo)

	// Equipment module
	equipmentRepo := equipment.NewPgxRepository(pool)
	equipmentService := equipment.NewService(equipmentRepo)

	// Pricing module
	pricingRepo := pricing.NewPgxRepository(pool)
	pricingService := pricing.NewService(pricingRepo, courtRepo)

	// Booking module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(
		bookingRepo, courtRepo, coachRepo, equipmentRepo, pricingService, txManager)

	router := api.NewRouter(api.RouterDeps{
		Config:           cfg,
		JWTManager:       jwtManager,
		UserService:      userService,
		CourtService:     courtService,
		CoachService:     coachService,
		EquipmentService: equipmentService,
		PricingService:   pricingService,
		BookingService:   bookingService,
		RedisClient:      redisClient,
	})

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		RedisClient: redisClient,
	}, nil
}
