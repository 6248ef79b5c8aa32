package handler

import (
	"net/http"

	"clinic-chat/internal/domain/user"
	"clinic-chat/internal/services"
	"clinic-chat/internal/transport/httpdto"
	clinic_errors "clinic-chat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type UserHandler struct {
	service *services.UserService
	ratings *services.RatingService
}

func NewUserHandler(service *services.UserService, ratings *services.RatingService) *UserHandler {
	return &UserHandler{service: service, ratings: ratings}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req httpdto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	roles := lo.Map(req.UserRoles, func(r string, _ int) user.Role { return user.Role(r) })
	created, err := h.service.Register(c.Request.Context(), req.UserName, roles)
	if err != nil {
		_ = c.Error(err)
		return
	}

	respond(c, http.StatusCreated, httpdto.FromUser(created))
}

// List serves GET /api/users with optional role and name filters. A name
// filter needs a role.
func (h *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	rawRole, hasRole := c.GetQuery("role")
	name, hasName := c.GetQuery("name")

	if !hasRole {
		if hasName {
			_ = c.Error(clinic_errors.BadRequest("role is required when filtering by name"))
			return
		}
		items, err := h.service.ListAll(ctx)
		if err != nil {
			_ = c.Error(err)
			return
		}
		respond(c, http.StatusOK, httpdto.FromUserSlice(items))
		return
	}

	role, valid := user.ParseRole(rawRole)
	if !valid {
		_ = c.Error(clinic_errors.BadRequest("unknown role: " + rawRole))
		return
	}

	var (
		items []user.User
		err   error
	)
	if hasName {
		items, err = h.service.FindByNameAndRole(ctx, name, role)
	} else {
		items, err = h.service.FindByRole(ctx, role)
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, httpdto.FromUserSlice(items))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, httpdto.FromUser(found))
}

func (h *UserHandler) ListDoctors(c *gin.Context) {
	summaries, err := h.ratings.ListDoctorsWithRatings(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, httpdto.FromDoctorSummaries(summaries))
}
