package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vetclinic/internal/access"
	"vetclinic/internal/domain/booking"
	"vetclinic/internal/pkg/params"
	"vetclinic/internal/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Stats handles GET /dashboard/stats
func (h *Handler) Stats(c *gin.Context) {
	st, err := h.service.Stats(c.Request.Context(), access.FromContext(c))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

func (h *Handler) StatusChart(c *gin.Context) {
	out, err := h.service.StatusDistribution(c.Request.Context(), access.FromContext(c))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) RevenueByBranchChart(c *gin.Context) {
	out, err := h.service.RevenueByBranch(c.Request.Context(), access.FromContext(c))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) AnimalTypesChart(c *gin.Context) {
	out, err := h.service.AnimalTypeDistribution(c.Request.Context(), access.FromContext(c))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ConsultationsChart(c *gin.Context) {
	out, err := h.service.ConsultationStatusDistribution(c.Request.Context(), access.FromContext(c))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// TrendsChart handles GET /dashboard/charts/trends?period=day|month&points=N
func (h *Handler) TrendsChart(c *gin.Context) {
	period := Period(c.DefaultQuery("period", string(PeriodDay)))
	points := 0
	if v := c.Query("points"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			response.Error(c, http.StatusBadRequest, "points must be a positive integer")
			return
		}
		points = n
	}

	out, err := h.service.Trends(c.Request.Context(), access.FromContext(c), period, points)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) || errors.Is(err, ErrInvalidPoints) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// ExportBookings handles GET /dashboard/export/bookings.xlsx with the booking list filters.
func (h *Handler) ExportBookings(c *gin.Context) {
	f := booking.ListFilter{
		Status:   c.Query("status"),
		BranchID: params.OptionalID(c, "branch"),
		DoctorID: params.OptionalID(c, "doctor"),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
	}

	var buf bytes.Buffer
	if _, err := h.service.ExportBookings(c.Request.Context(), access.FromContext(c), f, &buf); err != nil {
		response.Internal(c, err)
		return
	}
	name := fmt.Sprintf("bookings-%s.xlsx", h.service.clock().Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
