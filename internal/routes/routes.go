package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	handler "invoice-dashboard-backend/internal/handlers"
	service "invoice-dashboard-backend/internal/services/dashboard"
)

func RegisterRoutes(r *gin.Engine, svc *service.Service, gatherer prometheus.Gatherer) {
	dashboardHandler := handler.NewDashboardHandler(svc)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Dashboard overview
	overview := api.Group("/dashboard")
	overview.GET("/revenue", dashboardHandler.GetRevenue)
	overview.GET("/invoices/latest", dashboardHandler.GetLatestInvoices)
	overview.GET("/cards", dashboardHandler.GetCardData)

	// Invoice routes
	invoices := api.Group("/invoices")
	{
		invoices.GET("", dashboardHandler.ListInvoices)
		invoices.GET("/pages", dashboardHandler.GetInvoicesPages)
		invoices.GET("/:id", dashboardHandler.GetInvoice)
	}

	// Customer routes
	customers := api.Group("/customers")
	{
		customers.GET("", dashboardHandler.ListCustomers)
		customers.GET("/table", dashboardHandler.GetCustomersTable)
	}
}
