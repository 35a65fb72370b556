package model

import (
	"errors"
	"strings"
	"testing"
)

func TestNewRequest(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		dir         string
		format      Format
		expectedURL string
		expectedErr error
	}{
		{
			name:        "youtube watch URL is kept canonical",
			url:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			dir:         "/tmp/dl",
			format:      FormatBest,
			expectedURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:        "short link is rewritten",
			url:         "  https://youtu.be/dQw4w9WgXcQ?t=42  ",
			dir:         "/tmp/dl",
			format:      FormatAudio,
			expectedURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:        "playlist parameter is dropped",
			url:         "https://www.youtube.com/watch?v=abc123&list=PL1",
			dir:         "/tmp/dl",
			format:      FormatMedium,
			expectedURL: "https://www.youtube.com/watch?v=abc123",
		},
		{
			name:        "other sites pass through",
			url:         "https://vimeo.com/76979871",
			dir:         "/tmp/dl",
			format:      FormatLow,
			expectedURL: "https://vimeo.com/76979871",
		},
		{
			name:        "empty format falls back to default",
			url:         "https://vimeo.com/76979871",
			dir:         "/tmp/dl",
			expectedURL: "https://vimeo.com/76979871",
		},
		{
			name:        "empty URL",
			url:         "   ",
			dir:         "/tmp/dl",
			format:      FormatBest,
			expectedErr: ErrEmptyURL,
		},
		{
			name:        "non http scheme",
			url:         "ftp://example.com/video",
			dir:         "/tmp/dl",
			format:      FormatBest,
			expectedErr: ErrInvalidURL,
		},
		{
			name:        "missing host",
			url:         "https:///watch",
			dir:         "/tmp/dl",
			format:      FormatBest,
			expectedErr: ErrInvalidURL,
		},
		{
			name:        "empty directory",
			url:         "https://youtu.be/abc",
			dir:         " ",
			format:      FormatBest,
			expectedErr: ErrEmptyDirectory,
		},
		{
			name:        "unknown format",
			url:         "https://youtu.be/abc",
			dir:         "/tmp/dl",
			format:      Format("8k"),
			expectedErr: ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.url, tt.dir, tt.format)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				if req != nil {
					t.Errorf("expected nil request on error, got %+v", req)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.URL != tt.expectedURL {
				t.Errorf("expected URL %s, got %s", tt.expectedURL, req.URL)
			}
			if req.Directory != strings.TrimSpace(tt.dir) {
				t.Errorf("expected directory %s, got %s", tt.dir, req.Directory)
			}
			if !req.Format.IsValid() {
				t.Errorf("expected valid format, got %q", req.Format)
			}
			if !strings.HasPrefix(req.ID, RequestIDPrefix) {
				t.Errorf("expected ID with prefix %s, got %s", RequestIDPrefix, req.ID)
			}
			if req.CreatedAt.IsZero() {
				t.Error("expected CreatedAt to be set")
			}
		})
	}
}

func TestNewRequest_UniqueIDs(t *testing.T) {
	a, err := NewRequest("https://youtu.be/abc", "/tmp", FormatBest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewRequest("https://youtu.be/abc", "/tmp", FormatBest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both were %s", a.ID)
	}
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
		ok       bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"http://youtube.com/watch?v=dQw4w9WgXcQ&t=10", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/user/someone/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/playlist?list=PL123", "", false},
		{"https://vimeo.com/76979871", "", false},
		{"not a url", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		id, ok := VideoID(test.url)
		if ok != test.ok || id != test.expected {
			t.Errorf("VideoID(%q) = (%q, %v), expected (%q, %v)", test.url, id, ok, test.expected, test.ok)
		}
	}
}
