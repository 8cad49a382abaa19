package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vetclinic/internal/pkg/validator"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success bool                   `json:"success"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message"`
	Data    interface{}            `json:"data,omitempty"`
	Errors  []validator.FieldError `json:"errors,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type PagedData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{Success: true, Message: http.StatusText(statusCode), Data: data})
}

func Message(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Envelope{Success: true, Message: message, Data: data})
}

func Paged(c *gin.Context, items interface{}, page, limit int, total int64) {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	Success(c, http.StatusOK, PagedData{
		Items:      items,
		Pagination: Pagination{Page: page, Limit: limit, Total: total, Pages: pages},
	})
}

func Error(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{Success: false, Message: message})
}

// Coded adds a machine readable code for clients that branch on the failure kind.
func Coded(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{Success: false, Code: code, Message: message})
}

func ValidationError(c *gin.Context, errs []validator.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Success: false,
		Code:    "VALIDATION_ERROR",
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Internal hides err from the client; the request logger reports it from c.Errors.
func Internal(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Message: "Internal server error",
	})
}

// BindError answers a malformed JSON body.
func BindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Invalid request body",
		Errors:  []validator.FieldError{{Field: "body", Message: err.Error()}},
	})
}
