package domain

import (
	"errors"
)

var (
	MessageSuccessRequestOTP = "OTP sent successfully"
	MessageSuccessVerifyOTP  = "OTP verified successfully"
	MessageSuccessGetMe      = "user retrieved successfully"

	MessageFailedRequestOTP = "failed to send OTP"
	MessageFailedVerifyOTP  = "failed to verify OTP"
	MessageFailedGetMe      = "failed to retrieve user"

	ErrInvalidPhone = errors.New("valid 10-digit phone number required")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidOTP   = errors.New("invalid OTP")
	ErrOTPExpired   = errors.New("OTP expired")
)

type (
	RequestOTPRequest struct {
		Phone string `json:"phone" validate:"required,len=10,numeric"`
	}

	VerifyOTPRequest struct {
		Phone    string `json:"phone" validate:"required,len=10,numeric"`
		OTP      string `json:"otp" validate:"required,len=6,numeric"`
		Name     string `json:"name" validate:"omitempty"`
		Location string `json:"location" validate:"omitempty"`
	}

	UserResponse struct {
		ID       string `json:"id"`
		Phone    string `json:"phone"`
		Name     string `json:"name,omitempty"`
		Location string `json:"location,omitempty"`
		Role     string `json:"role"`
	}

	VerifyOTPResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}
)
