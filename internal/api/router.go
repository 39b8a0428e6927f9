package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/playcourt/booking-backend/internal/auth"
	"github.com/playcourt/booking-backend/internal/booking"
	bookingHttp "github.com/playcourt/booking-backend/internal/booking/http"
	"github.com/playcourt/booking-backend/internal/coach"
	coachHttp "github.com/playcourt/booking-backend/internal/coach/http"
	"github.com/playcourt/booking-backend/internal/config"
	"github.com/playcourt/booking-backend/internal/court"
	courtHttp "github.com/playcourt/booking-backend/internal/court/http"
	"github.com/playcourt/booking-backend/internal/equipment"
	equipmentHttp "github.com/playcourt/booking-backend/internal/equipment/http"
	"github.com/playcourt/booking-backend/internal/pricing"
	pricingHttp "github.com/playcourt/booking-backend/internal/pricing/http"
	"github.com/playcourt/booking-backend/internal/user"
	userHttp "github.com/playcourt/booking-backend/internal/user/http"
)

// RouterDeps collects everything the router needs.
type RouterDeps struct {
	Config           *config.Config
	JWTManager       *auth.JWTManager
	UserService      user.Service
	CourtService     court.Service
	CoachService     coach.Service
	EquipmentService equipment.Service
	PricingService   pricing.Service
	BookingService   booking.Service
	RedisClient      *redis.Client
}

// NewRouter assembles middleware (CORS, logging, rate limiting, metrics) and
// registers routes for every module under /v1.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if deps.Config.IsProduction && deps.Config.ProdOrigins != "" {
		corsConfig.AllowOrigins = splitOrigins(deps.Config.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(RateLimit(deps.Config.RateLimit, deps.RedisClient))

	if deps.Config.MetricsEnabled {
		metrics := NewMetrics()
		r.Use(metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}

	authMiddleware := auth.AuthRequired(deps.JWTManager)
	roleMiddleware := ResolveRole(deps.UserService)
	adminMiddleware := RequireAdmin(deps.UserService)

	userHandler := userHttp.NewHandler(deps.UserService, deps.JWTManager)
	courtHandler := courtHttp.NewHandler(deps.CourtService)
	coachHandler := coachHttp.NewHandler(deps.CoachService)
	equipmentHandler := equipmentHttp.NewHandler(deps.EquipmentService)
	pricingHandler := pricingHttp.NewHandler(deps.PricingService)
	bookingHandler := bookingHttp.NewHandler(deps.BookingService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		courtHttp.RegisterRoutes(v1, courtHandler, authMiddleware, adminMiddleware)
		coachHttp.RegisterRoutes(v1, coachHandler, authMiddleware, adminMiddleware)
		equipmentHttp.RegisterRoutes(v1, equipmentHandler, authMiddleware, adminMiddleware)
		pricingHttp.RegisterRoutes(v1, pricingHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, roleMiddleware)
	}

	return r
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
