// internal/services/helpers.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/apperrors"
)

// translateUniqueViolation maps a unique-index violation onto a typed
// conflict. Both the postgres and sqlite drivers are recognized.
func translateUniqueViolation(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict(message)
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed") {
		return apperrors.Conflict(message)
	}
	return fmt.Errorf("database error: %w", err)
}
