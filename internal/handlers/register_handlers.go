package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/middleware"
	"github.com/mizan-erp/mizan_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", getHome)

	// Public authentication routes
	registerAuthRoutes(r, services.Auth)

	// Everything under /api/v1 requires a valid token
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerCurrencyRoutes(v1, services.Currency)
	registerTaxRateRoutes(v1, services.TaxRate)
	registerDailyRateRoutes(v1, services.FXRate)
	registerCustomerRoutes(v1, services.Customer, services.Sales)
	registerSupplierRoutes(v1, services.Supplier, services.Purchase)
	registerInvoiceRoutes(v1, services.Sales)
	registerPaymentRoutes(v1, services.Sales)
	registerSalesReturnRoutes(v1, services.Sales)
	registerPurchaseRoutes(v1, services.Purchase)
}
