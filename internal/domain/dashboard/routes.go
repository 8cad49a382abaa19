package dashboard

import "github.com/gin-gonic/gin"

func RegisterStaffRoutes(r *gin.RouterGroup, handler *Handler) {
	d := r.Group("/dashboard")
	{
		d.GET("/stats", handler.Stats)
		d.GET("/charts/status", handler.StatusChart)
		d.GET("/charts/revenue-by-branch", handler.RevenueByBranchChart)
		d.GET("/charts/animal-types", handler.AnimalTypesChart)
		d.GET("/charts/trends", handler.TrendsChart)
		d.GET("/charts/consultations", handler.ConsultationsChart)
		d.GET("/export/bookings.xlsx", handler.ExportBookings)
	}
}
