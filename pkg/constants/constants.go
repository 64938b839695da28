package constants

// RFC 3339 date-time format string used for every timestamp the API emits.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// Response texts of POST /api/waitlist.
const (
	MsgInvalidRequestBody = "Invalid request body."
	MsgFieldsRequired     = "Name, email, and phone number are required."
	MsgAlreadyOnWaitlist  = "This email address is already on the waitlist."
	MsgAddToWaitlistFail  = "Failed to add user to waitlist."
	MsgPayloadTooLarge    = "Request payload too large"

	DefaultSuccessMessage = "Thank you for joining the waitlist!"
)

// MembershipKeyPrefix namespaces waitlist emails in the shared cache.
const MembershipKeyPrefix = "waitlist:member:"
