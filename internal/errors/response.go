package errors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 표준 에러 응답 구조
type ErrorResponse struct {
	Timestamp time.Time   `json:"timestamp"`
	Path      string      `json:"path"`
	Status    int         `json:"status"`
	Code      Code        `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// SuccessResponse 표준 성공 응답 구조
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// Respond writes the error envelope for a code using its default message
func Respond(c *gin.Context, code Code) {
	RespondWithDetails(c, code, nil)
}

// RespondWithDetails writes the error envelope with additional details,
// typically per-field validation messages
func RespondWithDetails(c *gin.Context, code Code, details interface{}) {
	def := Define(code)
	c.JSON(def.Status, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
		Status:    def.Status,
		Code:      code,
		Message:   def.Message,
		Details:   details,
	})
}

// RespondSuccess writes the success envelope with status 200
func RespondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// RespondCreated writes the success envelope with status 201
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: data})
}
