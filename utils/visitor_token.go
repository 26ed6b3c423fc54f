package utils

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"time"
)

// GenerateVisitorToken creates the anonymous client_id token handed to the
// tracking widget when a visitor first loads the site. The token is an
// opaque visitor proxy only; it is never joined back to a user account.
func GenerateVisitorToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Printf("ERROR: Failed to generate random bytes for visitor token: %v", err)
		return "fallback_visitor_" + time.Now().Format("20060102150405")
	}
	return base64.URLEncoding.EncodeToString(b)
}
