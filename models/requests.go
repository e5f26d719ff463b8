package models

// RegisterRequest is the POST /api/register body.
// Confirm must be 1 (personal-data processing consent).
type RegisterRequest struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Confirm              int    `json:"confirm"`
}

// LoginRequest is the POST /api/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubscriptionRequest is the POST /api/subscription body.
type SubscriptionRequest struct {
	Email string `json:"email"`
}

// ListingForm is the multipart payload for creating a listing.
// Photos holds local file paths; Photo1 is mandatory.
// When Register is set the server creates an account alongside the
// listing, using Password for the new user.
type ListingForm struct {
	Name        string
	Phone       string
	Email       string
	Kind        string
	District    string
	Mark        string
	Description string
	Photos      []string
	Confirm     bool
	Register    bool
	Password    string
}

// ListingEdit is the multipart payload for the restricted listing
// update: only description, mark and photos may change; species and
// district are immutable after creation.
type ListingEdit struct {
	Description string
	Mark        string
	Photos      []string
}
