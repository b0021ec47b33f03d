package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maintenance/backend/internal/interfaces/http/router"
)

// WorkOrderRoutes creates the route group for work order documents.
// Extra middleware (rate limiting) applies to the render endpoint only.
func WorkOrderRoutes(handler *WorkOrderHandler, renderMiddleware ...gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("work-orders", "/work-orders")

	render := append(append([]gin.HandlerFunc{}, renderMiddleware...), handler.GeneratePDF)
	group.POST("/pdf", render...)

	// Reference data for form dropdowns
	group.GET("/catalogs", handler.ListCatalogs)
	group.GET("/catalogs/:name", handler.GetCatalog)

	return group
}

// SystemRoutes creates the route group for system endpoints
func SystemRoutes(handler *SystemHandler) *router.DomainGroup {
	group := router.NewDomainGroup("system", "/system")
	group.GET("/info", handler.GetSystemInfo)
	group.GET("/ping", handler.Ping)
	return group
}
