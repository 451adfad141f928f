package recipe

import (
	"errors"
	"net/http"

	"recipe-nutrition/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// respondError 將自定義錯誤映射為對應的 HTTP 響應
func respondError(c *gin.Context, err error) {
	var customErr *common.CustomError
	if errors.As(err, &customErr) {
		c.JSON(customErr.Status, common.ErrorResponse{
			Code:    customErr.Code,
			Message: customErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "服務器內部錯誤",
	})
}
