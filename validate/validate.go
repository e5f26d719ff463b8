// Package validate holds the client-side validation rules shared by
// registration, listing submission and profile editing. All rules are
// pure functions; the server stays the final authority and its 422
// field errors always override a client-side pass.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	nameRe  = regexp.MustCompile(`^[А-Яа-яЁё\s-]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	markRe  = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

	pwLowerRe = regexp.MustCompile(`[a-z]`)
	pwUpperRe = regexp.MustCompile(`[A-Z]`)
	pwDigitRe = regexp.MustCompile(`[0-9]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
)

// Description length bounds, in runes.
const (
	MinDescriptionLen = 10
	MaxDescriptionLen = 1000
)

// MinPhoneDigits is the minimum count of digits in a phone number.
const MinPhoneDigits = 10

// Name checks a reporter/user name: Cyrillic letters, spaces and
// hyphens, at least two characters. relaxed skips the alphabet check
// for values auto-filled from an existing session.
func Name(name string, relaxed bool) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("name is required")
	}
	if relaxed {
		return nil
	}
	if !nameRe.MatchString(trimmed) {
		return errors.New("name may contain only Cyrillic letters, spaces and hyphens")
	}
	if utf8.RuneCountInString(trimmed) < 2 {
		return errors.New("name must be at least 2 characters")
	}
	return nil
}

// Phone checks a phone number: digits with an optional leading + and
// space/paren/hyphen separators, at least 10 digits total.
func Phone(phone string) error {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return errors.New("phone is required")
	}
	if !phoneRe.MatchString(trimmed) {
		return errors.New("phone may contain only digits and a leading +")
	}
	if len(digitRe.FindAllString(trimmed, -1)) < MinPhoneDigits {
		return errors.New("phone must contain at least 10 digits")
	}
	return nil
}

// Email checks the basic local@domain.tld shape. Deliberately not
// RFC-complete; it matches what the server accepts in practice.
func Email(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return errors.New("email is required")
	}
	if !emailRe.MatchString(trimmed) {
		return errors.New("enter a valid email address")
	}
	return nil
}

// Password checks the strength rules: at least 7 characters with one
// lowercase, one uppercase and one digit.
func Password(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if len(password) < 7 {
		return errors.New("password must be at least 7 characters")
	}
	if !pwLowerRe.MatchString(password) {
		return errors.New("password must contain a lowercase letter")
	}
	if !pwUpperRe.MatchString(password) {
		return errors.New("password must contain an uppercase letter")
	}
	if !pwDigitRe.MatchString(password) {
		return errors.New("password must contain a digit")
	}
	return nil
}

// ValidPassword is the boolean form of Password.
func ValidPassword(password string) bool {
	return Password(password) == nil
}

// ChipMark checks the optional chip/brand code: Latin letters, digits
// and hyphens only. An empty mark is valid.
func ChipMark(mark string) error {
	trimmed := strings.TrimSpace(mark)
	if trimmed == "" {
		return nil
	}
	if !markRe.MatchString(trimmed) {
		return errors.New("chip mark may contain only Latin letters, digits and hyphens")
	}
	return nil
}

// ValidChipMark is the boolean form of ChipMark.
func ValidChipMark(mark string) bool {
	return ChipMark(mark) == nil
}

// Description checks the 10–1000 character bound (counted in runes).
func Description(description string) error {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return errors.New("description is required")
	}
	n := utf8.RuneCountInString(trimmed)
	if n < MinDescriptionLen || n > MaxDescriptionLen {
		return errors.New("description must be between 10 and 1000 characters")
	}
	return nil
}

// PhotoFile checks an uploaded photo path. The API accepts PNG only.
func PhotoFile(path string) error {
	if path == "" {
		return nil
	}
	if !strings.HasSuffix(strings.ToLower(path), ".png") {
		return errors.New("photo must be a PNG file")
	}
	return nil
}

// PasswordStrength scores a password 0–4, one point per satisfied rule.
func PasswordStrength(password string) int {
	if password == "" {
		return 0
	}
	score := 0
	if len(password) >= 7 {
		score++
	}
	if pwLowerRe.MatchString(password) {
		score++
	}
	if pwUpperRe.MatchString(password) {
		score++
	}
	if pwDigitRe.MatchString(password) {
		score++
	}
	return score
}

// PasswordStrengthLabel renders a score as user-facing text.
func PasswordStrengthLabel(score int) string {
	switch score {
	case 4:
		return "strong"
	case 3:
		return "good"
	case 2:
		return "fair"
	default:
		return "weak"
	}
}
