package handler

import (
	"net/http"
	"strconv"

	"invoice-dashboard-backend/internal/services/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *dashboard.Service
}

func NewDashboardHandler(s *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// pageParam mirrors the page component: missing, unparseable or
// non-positive values mean page 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func fail(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (h *DashboardHandler) GetRevenue(c *gin.Context) {
	revenue, err := h.service.FetchRevenue(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revenue": revenue})
}

func (h *DashboardHandler) GetLatestInvoices(c *gin.Context) {
	invoices, err := h.service.FetchLatestInvoices(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (h *DashboardHandler) GetCardData(c *gin.Context) {
	cards, err := h.service.FetchCardData(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// ListInvoices returns one page of the invoices table together with the
// page count for the same query.
func (h *DashboardHandler) ListInvoices(c *gin.Context) {
	ctx := c.Request.Context()
	q := c.Query("query")
	page := pageParam(c)

	invoices, err := h.service.FetchFilteredInvoices(ctx, q, page)
	if err != nil {
		fail(c, err)
		return
	}
	totalPages, err := h.service.FetchInvoicesPages(ctx, q)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices":    invoices,
		"page":        page,
		"total_pages": totalPages,
	})
}

func (h *DashboardHandler) GetInvoicesPages(c *gin.Context) {
	totalPages, err := h.service.FetchInvoicesPages(c.Request.Context(), c.Query("query"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_pages": totalPages})
}

func (h *DashboardHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.service.FetchInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

func (h *DashboardHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.FetchCustomers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *DashboardHandler) GetCustomersTable(c *gin.Context) {
	customers, err := h.service.FetchFilteredCustomers(c.Request.Context(), c.Query("query"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}
