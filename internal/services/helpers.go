package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"clinic-chat/internal/domain/message"
	clinic_errors "clinic-chat/pkg/errors"
)

// Timestamps are kept at microsecond precision, which is what Postgres
// stores, so values read back compare equal to values written.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func isNotFound(err error) bool {
	return errors.Is(err, clinic_errors.ErrNotFound)
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return clinic_errors.BadRequest("message content cannot be blank")
	}
	if utf8.RuneCountInString(content) > message.MaxContentLength {
		return clinic_errors.BadRequest("message content cannot exceed 1000 characters")
	}
	return nil
}
