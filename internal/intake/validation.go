package intake

import (
	"regexp"
	"strings"
)

const (
	MsgNameRequired   = "Please enter your name."
	MsgInvalidEmail   = "Please enter a valid email address."
	MsgInvalidPhone   = "Please enter a valid phone number (7-15 digits)."
	MsgSubmitFailed   = "An error occurred while submitting the form."
	MsgRejectFallback = "Failed to add to waitlist."
	MsgJoinedFallback = "Thank you for joining the waitlist!"
)

var (
	// local@domain.tld with no whitespace anywhere. Whitespace includes the
	// Unicode separators so a pasted non-breaking space is rejected too.
	emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{7,15}$`)
)

func ValidateName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidatePhoneNumber(phoneNumber string) bool {
	return phonePattern.MatchString(phoneNumber)
}
