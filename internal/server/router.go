package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"vetclinic/internal/config"
	"vetclinic/internal/domain/auth"
	"vetclinic/internal/domain/booking"
	"vetclinic/internal/domain/branch"
	"vetclinic/internal/domain/consultation"
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/dashboard"
	"vetclinic/internal/domain/notification"
	"vetclinic/internal/domain/offer"
	"vetclinic/internal/domain/user"
	"vetclinic/internal/domain/vaccination"
	"vetclinic/internal/middleware"
	"vetclinic/internal/pkg/jwt"
)

func newRouter(cfg *config.Config, db *gorm.DB, tokens *jwt.Service, h handlers, log zerolog.Logger) *gin.Engine {
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery(log))
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/ws"})))

	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "time": time.Now().UTC()})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		auth.RegisterPublicRoutes(v1, h.auth)
		branch.RegisterPublicRoutes(v1, h.branch)
		vaccination.RegisterPublicRoutes(v1, h.vaccination)
		user.RegisterPublicRoutes(v1, h.user)
		offer.RegisterPublicRoutes(v1, h.offer)
		booking.RegisterPublicRoutes(v1, h.booking)
		notification.RegisterSocketRoutes(v1, h.notification)

		// any signed-in caller, staff or customer
		signed := v1.Group("")
		signed.Use(middleware.JWTAuth(tokens))
		{
			auth.RegisterProtectedRoutes(signed, h.auth)
			notification.RegisterInboxRoutes(signed, h.notification)
		}

		staff := v1.Group("")
		staff.Use(middleware.JWTAuth(tokens), middleware.StaffOnly())
		{
			customer.RegisterStaffRoutes(staff, h.customer)
			branch.RegisterStaffRoutes(staff, h.branch)
			booking.RegisterStaffRoutes(staff, h.booking)
			consultation.RegisterStaffRoutes(staff, h.consultation)
			dashboard.RegisterStaffRoutes(staff, h.dashboard)
		}

		admin := v1.Group("")
		admin.Use(middleware.JWTAuth(tokens), middleware.AdminOnly())
		{
			branch.RegisterAdminRoutes(admin, h.branch)
			vaccination.RegisterAdminRoutes(admin, h.vaccination)
			user.RegisterAdminRoutes(admin, h.user)
			offer.RegisterAdminRoutes(admin, h.offer)
			notification.RegisterAdminRoutes(admin, h.notification)
		}

		self := v1.Group("/customer/:customerId")
		self.Use(middleware.JWTAuth(tokens), middleware.CustomerSelf("customerId"))
		{
			customer.RegisterCustomerRoutes(self, h.customer)
			vaccination.RegisterCustomerRoutes(self, h.vaccination)
			user.RegisterCustomerRoutes(self, h.user)
			booking.RegisterCustomerRoutes(self, h.booking)
			consultation.RegisterCustomerRoutes(self, h.consultation)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	return cfg
}
