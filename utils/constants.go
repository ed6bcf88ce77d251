package utils

// Application constants
const (
	AppName = "EventHub"

	// Session token lifetime when JWT_EXPIRY is unset
	JWTExpiration = "24h"

	// Email verification link lifetime when VERIFICATION_TTL is unset
	VerificationExpiration = "2h"

	DefaultPaginationLimit = 10
	MaxPaginationLimit     = 100
)

// Error messages
const (
	ErrInvalidCredentials = "Invalid email or password"
	ErrInvalidToken       = "Invalid or expired token"
	ErrUnauthorized       = "Please login for access"
	ErrForbidden          = "You do not have permission to perform this action"
	ErrEmailNotVerified   = "Please verify your email before logging in"
	ErrInvalidReferral    = "Invalid referral code"
	ErrInsufficientPoints = "Insufficient points"
	ErrRateLimited        = "Too many requests. Please try again later."
	ErrInternalServer     = "Internal server error"
)

// Success messages
const (
	MsgLoginSuccess        = "Login successful"
	MsgRegisterSuccess     = "Registration successful. Please check your email to verify your account."
	MsgVerifySuccess       = "Email verified successfully"
	MsgVerificationResent  = "Verification email sent"
	MsgPointsRedeemed      = "Points redeemed successfully"
	MsgEventCreated        = "Event created and published successfully"
	MsgEventDraftSaved     = "Event saved as draft successfully"
	MsgReferralStatsLoaded = "Referral stats retrieved successfully"
)
