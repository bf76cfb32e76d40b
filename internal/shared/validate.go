package shared

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	UsernameMessage      = "Username must be between 3 and 20 characters."
	EmailMessage         = "Please enter a valid email."
	PasswordMessage      = "Password must be at least 6 characters long."
	PasswordEmptyMessage = "Please enter a password."
	FileTypeMessage      = "Unsupported file type. Please upload a JPEG, PNG, or MP4 file."
	FileSizeMessage      = "File size exceeds 5MB. Please upload a smaller file."
)

// MaxUploadSize is the largest media file accepted for upload.
const MaxUploadSize = 5 * 1024 * 1024

var uploadTypes = []string{"image/jpeg", "image/png", "video/mp4"}

// IsUploadType reports whether a MIME type may be uploaded as event media.
func IsUploadType(mimeType string) bool { return slices.Contains(uploadTypes, mimeType) }

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError collects every message produced by a failed [ValidateInputs] call.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "\n")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Check pairs a value with its predicate and the message shown when the predicate fails.
type Check struct {
	Value   string
	Valid   func(string) bool
	Message string
}

// ValidateInputs runs checks in order and returns a [*ValidationError] listing every failure, or nil.
func ValidateInputs(checks ...Check) error {
	var messages []string
	for _, c := range checks {
		if !c.Valid(c.Value) {
			messages = append(messages, c.Message)
		}
	}
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

// IsValidUsername accepts 4 to 20 characters; three or fewer are rejected.
func IsValidUsername(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > 3 && n <= 20
}

func IsValidEmail(s string) bool { return emailPattern.MatchString(s) }

func IsValidPassword(s string) bool { return utf8.RuneCountInString(s) >= 6 }

func NotEmpty(s string) bool { return strings.TrimSpace(s) != "" }

// UsernameCheck, EmailCheck and PasswordCheck build the standard form checks.
func UsernameCheck(v string) Check { return Check{v, IsValidUsername, UsernameMessage} }
func EmailCheck(v string) Check    { return Check{v, IsValidEmail, EmailMessage} }
func PasswordCheck(v string) Check { return Check{v, IsValidPassword, PasswordMessage} }

// ValidateLogin checks credentials before any request is made.
func ValidateLogin(username, password string) error {
	return ValidateInputs(
		UsernameCheck(username),
		Check{password, NotEmpty, PasswordEmptyMessage},
	)
}

// ValidateSignup checks registration input before any request is made.
func ValidateSignup(username, email, password string) error {
	return ValidateInputs(UsernameCheck(username), EmailCheck(email), PasswordCheck(password))
}
