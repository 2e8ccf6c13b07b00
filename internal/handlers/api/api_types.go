package api

import (
	"time"

	"github.com/khanghh/kwaitlist/model"
	"github.com/khanghh/kwaitlist/params"
)

type APIResponse struct {
	APIVersion string        `json:"apiVersion"`
	Data       any           `json:"data,omitempty"`
	Error      *APIErrorInfo `json:"error,omitempty"`
}

type APIErrorInfo struct {
	Code    int              `json:"code"`
	Message string           `json:"message"`
	Errors  []APIErrorDetail `json:"errors,omitempty"`
}

type APIErrorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func NewDataResponse(data any) APIResponse {
	return APIResponse{
		APIVersion: params.APIVersion,
		Data:       data,
	}
}

func NewErrorResponse(code int, message string, details ...APIErrorDetail) APIResponse {
	return APIResponse{
		APIVersion: params.APIVersion,
		Error: &APIErrorInfo{
			Code:    code,
			Message: message,
			Errors:  details,
		},
	}
}

// EntryStatusResponse is the public view of a waitlist entry. Invite codes are
// only ever delivered out of band. Snowflake ids exceed the exact integer
// range of JavaScript numbers and are sent as strings.
type EntryStatusResponse struct {
	ID         uint              `json:"id,string"`
	Email      string            `json:"email"`
	Status     model.EntryStatus `json:"status"`
	Position   int               `json:"position"`
	CreatedAt  time.Time         `json:"createdAt"`
	ApprovedAt *time.Time        `json:"approvedAt,omitempty"`
}

func newEntryStatusResponse(entry *model.WaitlistEntry) EntryStatusResponse {
	return EntryStatusResponse{
		ID:         entry.ID,
		Email:      entry.Email,
		Status:     entry.Status,
		Position:   entry.Position,
		CreatedAt:  entry.CreatedAt,
		ApprovedAt: entry.ApprovedAt,
	}
}

type UserInfoResponse struct {
	UserID      uint   `json:"userId,string"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	IsAnonymous bool   `json:"isAnonymous"`
}

type SignInResponse struct {
	User        UserInfoResponse `json:"user"`
	AccessToken string           `json:"accessToken"`
	ExpiresAt   time.Time        `json:"expiresAt"`
}

func newUserInfoResponse(user *model.User) UserInfoResponse {
	return UserInfoResponse{
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		IsAnonymous: user.IsAnonymous,
	}
}
