package types

import (
	"os"
	"strings"
)

// ContextUserKey holds the authenticated user on the gin context.
const ContextUserKey = "authUser"

// AllowedOrigins drives both CORS and the websocket origin check. The
// Next.js dev server is always allowed; CLIENT_URL adds the deployed
// frontend and ALLOWED_ORIGINS any extra comma-separated entries.
var AllowedOrigins = allowedOrigins()

func allowedOrigins() []string {
	origins := []string{"http://localhost:3000"}

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
