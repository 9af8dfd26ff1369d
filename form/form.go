// Package form validates and normalizes user input before it is submitted to
// the backend. Validation failures block submission entirely; an invalid
// request is never sent.
package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"studymeet/api"
)

// localScheduleLayout is the datetime-local shape users type into the
// schedule field. Full RFC 3339 is also accepted.
const localScheduleLayout = "2006-01-02T15:04"

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrUsernameRequired    = errors.New("username is required")
)

// CreateSession holds the raw field contents of the create-session form.
type CreateSession struct {
	Title       string
	Description string
	// DateTime is optional; the empty string means unscheduled.
	DateTime string
	// Tags is a comma-separated free-text field.
	Tags string
}

// Validate checks the required fields after trimming. It does not modify the
// form, so a failed submission keeps the user's input intact.
func (f *CreateSession) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(f.Description) == "" {
		return ErrDescriptionRequired
	}
	if _, err := normalizeSchedule(f.DateTime); err != nil {
		return err
	}
	return nil
}

// Request normalizes the form into the wire payload. Call Validate first.
func (f *CreateSession) Request() (api.CreateSessionRequest, error) {
	if err := f.Validate(); err != nil {
		return api.CreateSessionRequest{}, err
	}

	schedule, err := normalizeSchedule(f.DateTime)
	if err != nil {
		return api.CreateSessionRequest{}, err
	}

	return api.CreateSessionRequest{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		DateTime:    schedule,
		Tags:        ParseTags(f.Tags),
	}, nil
}

// Reset returns the form to empty defaults after a successful submission.
func (f *CreateSession) Reset() {
	*f = CreateSession{}
}

// ParseTags splits a comma-separated tag field: each segment trimmed, empty
// segments dropped, order preserved, no dedup.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, segment := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(segment)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// normalizeSchedule maps the empty string to absent (nil) and everything else
// to RFC 3339. The datetime-local shape is interpreted in the local timezone.
func normalizeSchedule(raw string) (*string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	if ts, err := time.Parse(time.RFC3339, trimmed); err == nil {
		normalized := ts.Format(time.RFC3339)
		return &normalized, nil
	}
	if ts, err := time.ParseInLocation(localScheduleLayout, trimmed, time.Local); err == nil {
		normalized := ts.Format(time.RFC3339)
		return &normalized, nil
	}
	return nil, fmt.Errorf("invalid schedule %q, use YYYY-MM-DDTHH:MM", trimmed)
}

// Login holds the raw contents of the sign-in form.
type Login struct {
	Username string
}

// Validate requires a non-empty username after trimming.
func (f *Login) Validate() error {
	if strings.TrimSpace(f.Username) == "" {
		return ErrUsernameRequired
	}
	return nil
}

// Normalized returns the trimmed username. Call Validate first.
func (f *Login) Normalized() string {
	return strings.TrimSpace(f.Username)
}
