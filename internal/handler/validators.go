package handler

import (
	"strings"

	"clinic-chat/internal/transport/httpdto"
	clinic_errors "clinic-chat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegisterValidators adds the custom binding rules to gin's validator. Call it
// once before serving.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("notblank", notBlank)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// bindJSON binds the body and reports a malformed or invalid body as a bad
// request.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(clinic_errors.BadRequest("invalid request: " + err.Error()))
		return false
	}
	return true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	return parseUUID(c, c.Param(name), name)
}

func parseUUID(c *gin.Context, raw, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = c.Error(clinic_errors.BadRequest("invalid " + name))
		return uuid.Nil, false
	}
	return id, true
}

func respond[T any](c *gin.Context, status int, data T) {
	c.JSON(status, httpdto.NewSuccessResponse(data))
}
