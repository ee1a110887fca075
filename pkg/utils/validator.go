package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// acceptedReceiptExtensions lists the file extensions a receipt upload may
// carry. Anything else (pdf included) is rejected before an upload starts.
var acceptedReceiptExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// IsAcceptedReceiptFile reports whether the file name carries an accepted
// receipt image extension. The extension is the substring after the final
// dot, compared case-insensitively.
func IsAcceptedReceiptFile(fileName string) bool {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return false
	}
	return acceptedReceiptExtensions[strings.ToLower(fileName[idx+1:])]
}

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateAmount validates an expense amount
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive: %d", amount)
	}
	return nil
}

// SanitizeString removes control characters from free-text form input
func SanitizeString(s string) string {
	return regexp.MustCompile(`[\x00-\x1f\x7f]`).ReplaceAllString(s, "")
}
