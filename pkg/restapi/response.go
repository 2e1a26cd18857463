package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"video-ingest-service/pkg/errno"
)

// Response is the JSON envelope returned by every endpoint.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope around data.
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Failed resolves err to its errno and writes the matching HTTP status.
func Failed(ctx *gin.Context, err error) {
	e := errno.Resolve(err)
	ctx.JSON(httpStatus(e), Response{
		Code:    e.Code,
		Message: e.Message,
	})
}

// httpStatus maps error codes onto HTTP statuses: invalid input is a
// client error, unknown resources are 404, everything else is a server
// error.
func httpStatus(e *errno.Errno) int {
	switch e {
	case errno.ErrInvalidParam, errno.ErrMissingParam, errno.ErrContentTypeNotVideo,
		errno.ErrEmptyUpload, errno.ErrUploadTooLarge, errno.ErrTitleRequired,
		errno.ErrOwnerUUIDRequired:
		return http.StatusBadRequest
	case errno.ErrNotFound, errno.ErrVideoNotFound, errno.ErrRenditionUnknown,
		errno.ErrVideoNotReady:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
