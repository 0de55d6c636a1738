package domain

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is a portal visitor created by the login form.
type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Authenticated   bool       `json:"authenticated"`
	AuthenticatedAt *time.Time `json:"authenticatedAt,omitempty"`
	TotalClicks     int        `json:"totalClicks"`
}

type LoginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Claims identify the holder of an admin token.
type Claims struct {
	UserEmail  string
	UserRoleID int
	jwt.RegisteredClaims
}

// Session is the dashboard view of the current user.
type Session struct {
	User           *User  `json:"user"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
	Elapsed        string `json:"elapsed"`
}

// NewSession computes the elapsed session time of user at now.
func NewSession(user *User, now time.Time) *Session {
	var elapsed int64
	if user.AuthenticatedAt != nil {
		elapsed = int64(now.Sub(*user.AuthenticatedAt) / time.Second)
		if elapsed < 0 {
			elapsed = 0
		}
	}

	return &Session{
		User:           user,
		ElapsedSeconds: elapsed,
		Elapsed:        FormatElapsed(elapsed),
	}
}

// FormatElapsed renders seconds as HH:MM:SS. Hours are not capped at 24.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
