package dto

// ReqConnectPlatform carries a manually obtained platform token.
// Tokens are pasted in by the user; there is no OAuth consent flow.
type ReqConnectPlatform struct {
	Platform       string `json:"platform" binding:"required"`
	Token          string `json:"token" binding:"required"`
	Username       string `json:"username"`
	PlatformUserID string `json:"platform_user_id"`
}

// ReqSyncPlatform selects the platform for a posts or analytics sync.
type ReqSyncPlatform struct {
	Platform string `json:"platform" binding:"required"`
}
