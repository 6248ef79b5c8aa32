package httpdto

import (
	"time"

	"clinic-chat/internal/domain/rating"
	"clinic-chat/internal/domain/user"

	"github.com/samber/lo"
)

type CreateUserRequest struct {
	UserName  string   `json:"userName" binding:"required,notblank"`
	UserRoles []string `json:"userRoles" binding:"required,min=1,dive,oneof=PATIENT DOCTOR"`
}

type UserResponse struct {
	UserID    string    `json:"userID"`
	UserName  string    `json:"userName"`
	UserRoles []string  `json:"userRoles"`
	CreatedAt time.Time `json:"createdAt"`
}

// DoctorSummaryResponse is one row of the doctor directory.
type DoctorSummaryResponse struct {
	ID           string  `json:"id"`
	FullName     string  `json:"name"`
	Rating       float64 `json:"rating"`
	RatingsCount int64   `json:"ratingsCount"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{
		UserID:    u.ID.String(),
		UserName:  u.Name,
		UserRoles: lo.Map(u.Roles(), func(r user.Role, _ int) string { return string(r) }),
		CreatedAt: u.CreatedAt,
	}
}

func FromUserSlice(users []user.User) []UserResponse {
	return lo.Map(users, func(u user.User, _ int) UserResponse { return FromUser(u) })
}

func FromDoctorSummaries(summaries []rating.DoctorSummary) []DoctorSummaryResponse {
	return lo.Map(summaries, func(s rating.DoctorSummary, _ int) DoctorSummaryResponse {
		return DoctorSummaryResponse{
			ID:           s.DoctorID.String(),
			FullName:     s.Name,
			Rating:       s.AverageScore,
			RatingsCount: s.Count,
		}
	})
}
