package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	clerkuser "github.com/clerk/clerk-sdk-go/v2/user"
)

// ClerkResolver looks up display names in Clerk by user id. The global
// Clerk key is set once in main; the zero value is ready to use.
type ClerkResolver struct{}

func NewClerkResolver() *ClerkResolver {
	return &ClerkResolver{}
}

// DisplayName prefers the Clerk username and falls back to first+last name.
// Callers decide what to show when this fails; feed and leaderboard
// enrichment substitutes a fallback name rather than failing the request.
func (r *ClerkResolver) DisplayName(ctx context.Context, userID string) (string, error) {
	u, err := clerkuser.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("clerk lookup for %s: %w", userID, err)
	}

	if u.Username != nil && *u.Username != "" {
		return *u.Username, nil
	}

	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	name := strings.Join(parts, " ")
	if name == "" {
		return "", errors.New("no name on clerk profile")
	}
	return name, nil
}
