package account

import (
	"time"

	"github.com/carson-networks/budget-tracker/internal/service"
)

// User is the API response model for an account holder. It never carries
// the credential hash.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Email     string `json:"email" doc:"Normalized email address"`
	FullName  string `json:"fullName" doc:"Full name"`
	Active    bool   `json:"active" doc:"Whether the account can sign in"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func userResponse(u *service.User) User {
	return User{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
