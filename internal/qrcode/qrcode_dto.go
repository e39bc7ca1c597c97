package qrcode

import "time"

type GenerateTokenRequest struct {
	ClockType  string `json:"clock_type" binding:"required,oneof=in out"`
	Location   string `json:"location" binding:"omitempty,max=255"`
	TTLSeconds int    `json:"ttl_seconds" binding:"omitempty,min=30,max=3600"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ClockType string    `json:"clock_type"`
	Location  string    `json:"location"`
	ExpiresAt time.Time `json:"expires_at"`
	// PNGBase64 is the QR image encoding the token.
	PNGBase64 string `json:"png_base64"`
}

type ScanRequest struct {
	Token string `json:"token" binding:"required"`
}

// tokenPayload is what the store keeps under the token key.
type tokenPayload struct {
	ClockType string `json:"clock_type"`
	Location  string `json:"location"`
}
