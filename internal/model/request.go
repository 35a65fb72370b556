package model

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors returned by NewRequest
var (
	ErrEmptyURL       = errors.New("no URL entered")
	ErrInvalidURL     = errors.New("invalid URL")
	ErrEmptyDirectory = errors.New("no download folder selected")
	ErrUnknownFormat  = errors.New("unknown format")
)

// RequestIDPrefix prefixes generated request IDs
const RequestIDPrefix = "dl-"

// YouTubeWatchURLTemplate is the canonical form of a single video URL
const YouTubeWatchURLTemplate = "https://www.youtube.com/watch?v=%s"

var videoURLRegex = regexp.MustCompile(
	`^https?://(?:www\.)?youtu(?:\.be/|be\.com/(?:watch\?v=|v/|embed/|user/(?:[\w#]+/)+))([^&#?\n]+)[^\s]*$`,
)

// Request is the transient record built from the form on submit.
// It is consumed once to build an argument list and dropped when the
// subprocess exits.
type Request struct {
	ID        string
	URL       string
	Directory string
	Format    Format
	CreatedAt time.Time
}

// NewRequest validates the form values and builds a request
func NewRequest(rawURL, directory string, format Format) (*Request, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	directory = strings.TrimSpace(directory)
	if directory == "" {
		return nil, ErrEmptyDirectory
	}

	if format == "" {
		format = DefaultFormat
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &Request{
		ID:        generateRequestID(),
		URL:       CanonicalURL(u),
		Directory: directory,
		Format:    format,
		CreatedAt: time.Now(),
	}, nil
}

// ValidateURL trims the input and checks it is an absolute http(s) URL
func ValidateURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", ErrEmptyURL
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: URL must start with http:// or https://", ErrInvalidURL)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	if strings.ContainsAny(trimmed, " \t\r\n") {
		return "", fmt.Errorf("%w: URL contains whitespace", ErrInvalidURL)
	}

	return trimmed, nil
}

// VideoID returns the YouTube video id when the whole URL is a video link
func VideoID(rawURL string) (string, bool) {
	match := videoURLRegex.FindStringSubmatch(strings.TrimSpace(rawURL))
	if match == nil {
		return "", false
	}
	return match[1], true
}

// CanonicalURL rewrites YouTube video links to the plain watch URL.
// Links to other sites are returned unchanged.
func CanonicalURL(rawURL string) string {
	if id, ok := VideoID(rawURL); ok {
		return fmt.Sprintf(YouTubeWatchURLTemplate, id)
	}
	return strings.TrimSpace(rawURL)
}

// generateRequestID generates a time ordered unique ID
func generateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(RequestIDPrefix+"%d", time.Now().UnixNano())
	}
	return RequestIDPrefix + id.String()
}
