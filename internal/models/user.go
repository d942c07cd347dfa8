// Package models defines the records exchanged between the UserDesk client
// and the user-records REST API.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedRecord is returned when a user record is missing a required
// field or carries a value of the wrong shape.
var ErrMalformedRecord = errors.New("malformed record")

// Known roles. Other role names are accepted and sorted like any string.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is one record of the directory. Every field is required.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// wireUser mirrors User with optional fields so missing keys can be told
// apart from empty values.
type wireUser struct {
	ID           json.RawMessage `json:"id"`
	Name         *string         `json:"name"`
	Email        *string         `json:"email"`
	Role         *string         `json:"role"`
	RegisteredAt *string         `json:"registeredAt"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02",
}

// UnmarshalJSON decodes a record through ParseUser, so decoding into
// []User rejects malformed input.
func (u *User) UnmarshalJSON(data []byte) error {
	parsed, err := ParseUser(data)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseUser decodes a single JSON object into a User. The id may be a JSON
// string or number. Timestamps without a zone are read as UTC.
func ParseUser(data []byte) (User, error) {
	var w wireUser
	if err := json.Unmarshal(data, &w); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	id, err := parseID(w.ID)
	if err != nil {
		return User{}, err
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"name", w.Name},
		{"email", w.Email},
		{"role", w.Role},
		{"registeredAt", w.RegisteredAt},
	}
	for _, f := range fields {
		if f.value == nil {
			return User{}, fmt.Errorf("%w: missing field %q", ErrMalformedRecord, f.name)
		}
	}

	registeredAt, err := ParseTimestamp(*w.RegisteredAt)
	if err != nil {
		return User{}, err
	}

	return User{
		ID:           id,
		Name:         *w.Name,
		Email:        *w.Email,
		Role:         *w.Role,
		RegisteredAt: registeredAt,
	}, nil
}

// ParseUsers decodes a JSON array of user records. The first malformed
// element fails the whole batch.
func ParseUsers(data []byte) ([]User, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: expected an array: %v", ErrMalformedRecord, err)
	}

	users := make([]User, 0, len(raw))
	for i, item := range raw {
		u, err := ParseUser(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		users = append(users, u)
	}
	return users, nil
}

// ParseTimestamp accepts the timestamp formats produced by common REST
// backends for registeredAt.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid registeredAt %q", ErrMalformedRecord, s)
}

func parseID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("%w: missing field %q", ErrMalformedRecord, "id")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", fmt.Errorf("%w: empty id", ErrMalformedRecord)
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%w: id must be a string or number", ErrMalformedRecord)
	}
	return n.String(), nil
}

// NewUser is the payload for creating a record. The backend assigns the id
// and the registration time.
type NewUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Normalize trims the fields, lowercases the email and defaults an empty
// role to RoleUser.
func (n NewUser) Normalize() NewUser {
	n.Name = strings.TrimSpace(n.Name)
	n.Email = strings.ToLower(strings.TrimSpace(n.Email))
	n.Role = strings.TrimSpace(n.Role)
	if n.Role == "" {
		n.Role = RoleUser
	}
	return n
}

// Validate checks a normalized payload.
func (n NewUser) Validate() error {
	switch {
	case n.Name == "":
		return errors.New("name is required")
	case n.Email == "":
		return errors.New("email is required")
	case !strings.Contains(n.Email, "@"):
		return fmt.Errorf("invalid email %q", n.Email)
	case n.Role == "":
		return errors.New("role is required")
	}
	return nil
}
