package model

import "time"

// ConnectedAccount stores a user's credential for one platform, unique per
// (user_id, platform). AccessToken holds the encrypted iv:ciphertext payload;
// the cleartext token only exists transiently inside a sync or verification
// call.
type ConnectedAccount struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Platform         string    `json:"platform"`
	AccessToken      string    `json:"-"`
	PlatformUserID   string    `json:"platform_user_id"`
	PlatformUsername string    `json:"platform_username"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
