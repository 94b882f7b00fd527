package formbuilder

import (
	"strings"

	"github.com/agentstation/formsync/pkg/constants"
	"github.com/agentstation/formsync/pkg/errors"
)

// ValidateAPIKey checks the key format locally, before any request is made.
func ValidateAPIKey(key string) error {
	if !strings.HasPrefix(key, constants.APIKeyPrefix) {
		return errors.NewValidationError("api_key", MaskAPIKey(key), errors.MsgInvalidKeyFormat)
	}
	return nil
}

// MaskAPIKey masks an API key for safe display, showing only the prefix
// and the last 4 characters.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(empty)"
	}

	// short keys are masked entirely
	if len(key) <= 12 {
		return strings.Repeat("*", len(key))
	}

	return key[:len(constants.APIKeyPrefix)] + strings.Repeat("*", 16) + key[len(key)-4:]
}
