package common

import (
	"net/http"

	"github.com/artfolio/gallery-backend/internal/errs"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status string      `json:"status"`
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data,omitempty"`
}

func Respond(c *gin.Context, httpStatus int, status string, message string, data interface{}) {
	c.JSON(httpStatus, Response{
		Status: status,
		Msg:    message,
		Data:   data,
	})
}

// RespondSuccess sends a success response with data.
func RespondSuccess(c *gin.Context, data interface{}) {
	Respond(c, http.StatusOK, "success", "", data)
}

// RespondSuccessMessage sends a success response with message and data.
func RespondSuccessMessage(c *gin.Context, message string, data interface{}) {
	Respond(c, http.StatusOK, "success", message, data)
}

// RespondError sends an error response with message.
func RespondError(c *gin.Context, httpStatus int, message string) {
	Respond(c, httpStatus, "error", message, nil)
}

// RespondDomainError 将领域错误映射为对应的 HTTP 状态码
// 校验 400、不存在 404、容量上限 409、并发冲突与其余错误 500
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errs.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errs.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case errs.IsCapacity(err):
		RespondError(c, http.StatusConflict, err.Error())
	case errs.IsConflict(err):
		RespondError(c, http.StatusInternalServerError, err.Error())
	default:
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
