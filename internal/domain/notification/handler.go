package notification

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vetclinic/internal/pkg/jwt"
	"vetclinic/internal/pkg/params"
	"vetclinic/internal/pkg/response"
	"vetclinic/internal/pkg/validator"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type Handler struct {
	service *Service
	hub     *Hub
	tokens  TokenValidator
}

func NewHandler(service *Service, hub *Hub, tokens TokenValidator) *Handler {
	return &Handler{service: service, hub: hub, tokens: tokens}
}

func caller(c *gin.Context) Identity {
	return IdentityFor(c.GetString("role"), c.GetInt64("user_id"))
}

// Inbox godoc
// @Summary		List my notifications
// @Tags		Notifications
// @Security	BearerAuth
// @Param		page	query	int	false	"page"
// @Param		limit	query	int	false	"page size (max 100)"
// @Success		200	{object}		InboxResponse
// @Router		/notifications [get]
func (h *Handler) Inbox(c *gin.Context) {
	page, limit := params.Page(c)
	res, err := h.service.Inbox(c.Request.Context(), caller(c), page, limit)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// UnreadCount handles GET /notifications/unread-count
func (h *Handler) UnreadCount(c *gin.Context) {
	n, err := h.service.UnreadCount(c.Request.Context(), caller(c))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": n})
}

// MarkRead handles PATCH /notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}
	if err := h.service.MarkRead(c.Request.Context(), id, caller(c)); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead handles PATCH /notifications/read-all
func (h *Handler) MarkAllRead(c *gin.Context) {
	n, err := h.service.MarkAllRead(c.Request.Context(), caller(c))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Message(c, http.StatusOK, "All notifications marked as read", gin.H{"updated": n})
}

// List handles GET /notifications/manage
func (h *Handler) List(c *gin.Context) {
	page, limit := params.Page(c)
	list, total, err := h.service.List(c.Request.Context(), ListFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Paged(c, list, page, limit, total)
}

// Create handles POST /notifications/manage
func (h *Handler) Create(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	n, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Notification created", n)
}

// Send handles POST /notifications/manage/:id/send
func (h *Handler) Send(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}
	n, err := h.service.Send(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Notification processed", n)
}

// Delete handles DELETE /notifications/manage/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Notification deleted", nil)
}

// WebSocket godoc
// @Summary		Live notification stream
// @Tags		Notifications
// @Param		token	query	string	true	"access token"
// @Router		/ws/notifications [get]
func (h *Handler) WebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		response.Coded(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Token is required")
		return
	}
	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		response.Coded(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		return
	}
	h.hub.ServeWS(conn, IdentityFor(claims.Role, claims.UserID))
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotificationNotFound):
		response.Error(c, http.StatusNotFound, "Notification not found")
	case errors.Is(err, ErrNotSendable), errors.Is(err, ErrInvalidTarget),
		errors.Is(err, ErrInvalidChannel), errors.Is(err, ErrTargetIDsRequired), errors.Is(err, ErrNoRecipients):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Internal(c, err)
	}
}
