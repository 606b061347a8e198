package model

import "time"

// PlaceholderAvatarURL is the sentinel the backend returns for accounts
// that never uploaded a photo. A profile carrying this value renders the
// synthesized initial avatar instead.
const PlaceholderAvatarURL = "https://via.placeholder.com/32x32/8b5cf6/ffffff?text=U"

// Profile is the authenticated user's account record.
type Profile struct {
	ID               int       `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name"`
	AvatarURL        string    `json:"avatar_url"`
	Bio              string    `json:"bio"`
	Company          string    `json:"company"`
	Website          string    `json:"website"`
	SubscriptionTier string    `json:"subscription_tier"`
	IsVerified       bool      `json:"is_verified"`
	CreatedAt        time.Time `json:"created_at"`
}

// DisplayName returns the name shown in the profile header, preferring
// the full name, then the username, then a generic fallback.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.Username != "" {
		return p.Username
	}
	return "User"
}

// HasPhoto reports whether the profile carries a real uploaded photo
// rather than the placeholder sentinel or nothing at all.
func (p Profile) HasPhoto() bool {
	return p.AvatarURL != "" && p.AvatarURL != PlaceholderAvatarURL
}

// PlaceholderProfile is the identity rendered when the profile fetch
// fails for a reason other than an expired session.
func PlaceholderProfile() Profile {
	return Profile{FullName: "User", Email: "user@example.com"}
}
