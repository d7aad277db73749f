package response

import (
	"net/http"

	"hotel/errors"

	"github.com/gin-gonic/gin"
)

// GraphQLError is one entry of the "errors" list of a GraphQL response.
type GraphQLError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Response is the GraphQL-over-HTTP body.
type Response struct {
	Data   interface{}    `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

func codeError(code errors.ErrorCode) GraphQLError {
	return GraphQLError{
		Message:    string(code),
		Extensions: map[string]interface{}{"code": string(code)},
	}
}

// Success writes a result that has already been shaped by the executor.
func Success(c *gin.Context, result interface{}) {
	c.JSON(http.StatusOK, result)
}

// Error writes a response carrying only the error code.
func Error(c *gin.Context, status int, code errors.ErrorCode) {
	c.JSON(status, Response{Errors: []GraphQLError{codeError(code)}})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, errors.ErrCodeUnauthenticated)
}

func ValidationError(c *gin.Context) {
	Error(c, http.StatusBadRequest, errors.ErrCodeValidation)
}

// AppError writes err with the status matching its code.
func AppError(c *gin.Context, err error) {
	code := errors.CodeOf(err)
	Error(c, StatusOf(code), code)
}

// StatusOf maps a code to the HTTP status used when a request fails before
// reaching the GraphQL executor.
func StatusOf(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeUnauthenticated, errors.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeRoomNotFound, errors.ErrCodeBookingNotFound, errors.ErrCodeUserNotFound:
		return http.StatusNotFound
	case errors.ErrCodeEmailInUse, errors.ErrCodeRoomNotAvailable:
		return http.StatusConflict
	case errors.ErrCodeInternal, errors.ErrCodeDatabase:
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
