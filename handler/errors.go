package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"prioritix/model"
	"prioritix/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// currentUser reads the identity the auth middleware attached.
func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "Missing or invalid token")
		return "", false
	}
	return userID, true
}

// respondError maps service errors to responses. Anything that is neither a
// validation failure nor a missing todo is logged and answered with a 500.
func respondError(c *gin.Context, operation string, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationFailed(c, verr)
	case errors.Is(err, model.ErrNotFound):
		utils.NotFound(c, "Todo not found")
	default:
		zap.L().Error("request failed",
			zap.String("operation", operation),
			zap.String("user_id", c.GetString("user_id")),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		utils.TrackError("handler", operation)
		utils.InternalError(c)
	}
}

// bindJSON decodes the request body into obj. A body over the size limit is a
// 413; a value of the wrong JSON type is reported against its field.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &tooLarge):
		utils.PayloadTooLarge(c)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		verr := (&model.ValidationError{}).Add(typeErr.Field, "Must be "+jsonKind(typeErr.Type), nil)
		utils.ValidationFailed(c, verr)
	default:
		utils.BadRequest(c, "Invalid request body")
	}
	return false
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return "an object"
	}
}
