package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUser_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want User
	}{
		{
			name: "string id, RFC3339",
			in:   `{"id":"u-1","name":"Bob","email":"b@x.com","role":"admin","registeredAt":"2024-03-05T10:00:00Z"}`,
			want: User{ID: "u-1", Name: "Bob", Email: "b@x.com", Role: "admin", RegisteredAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)},
		},
		{
			name: "numeric id, fractional seconds",
			in:   `{"id":7,"name":"Amy","email":"a@x.com","role":"user","registeredAt":"2024-01-02T03:04:05.123Z"}`,
			want: User{ID: "7", Name: "Amy", Email: "a@x.com", Role: "user", RegisteredAt: time.Date(2024, 1, 2, 3, 4, 5, 123_000_000, time.UTC)},
		},
		{
			name: "date only",
			in:   `{"id":"x","name":"C","email":"c@x.com","role":"user","registeredAt":"2023-12-31"}`,
			want: User{ID: "x", Name: "C", Email: "c@x.com", Role: "user", RegisteredAt: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		},
		{
			name: "no zone",
			in:   `{"id":"y","name":"D","email":"d@x.com","role":"user","registeredAt":"2023-06-01T08:30:00"}`,
			want: User{ID: "y", Name: "D", Email: "d@x.com", Role: "user", RegisteredAt: time.Date(2023, 6, 1, 8, 30, 0, 0, time.UTC)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUser([]byte(tt.in))
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}

func TestParseUser_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not an object", `[1,2]`},
		{"missing id", `{"name":"Bob","email":"b@x.com","role":"admin","registeredAt":"2024-03-05T10:00:00Z"}`},
		{"null id", `{"id":null,"name":"Bob","email":"b@x.com","role":"admin","registeredAt":"2024-03-05T10:00:00Z"}`},
		{"empty id", `{"id":"","name":"Bob","email":"b@x.com","role":"admin","registeredAt":"2024-03-05T10:00:00Z"}`},
		{"bool id", `{"id":true,"name":"Bob","email":"b@x.com","role":"admin","registeredAt":"2024-03-05T10:00:00Z"}`},
		{"missing name", `{"id":"1","email":"b@x.com","role":"admin","registeredAt":"2024-03-05T10:00:00Z"}`},
		{"missing email", `{"id":"1","name":"Bob","role":"admin","registeredAt":"2024-03-05T10:00:00Z"}`},
		{"missing role", `{"id":"1","name":"Bob","email":"b@x.com","registeredAt":"2024-03-05T10:00:00Z"}`},
		{"missing registeredAt", `{"id":"1","name":"Bob","email":"b@x.com","role":"admin"}`},
		{"bad registeredAt", `{"id":"1","name":"Bob","email":"b@x.com","role":"admin","registeredAt":"yesterday"}`},
		{"name wrong type", `{"id":"1","name":5,"email":"b@x.com","role":"admin","registeredAt":"2024-03-05T10:00:00Z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUser([]byte(tt.in))
			require.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestParseUsers(t *testing.T) {
	users, err := ParseUsers([]byte(`[
		{"id":1,"name":"Bob","email":"b@x.com","role":"admin","registeredAt":"2024-03-05T10:00:00Z"},
		{"id":2,"name":"Amy","email":"a@x.com","role":"user","registeredAt":"2024-02-05T10:00:00Z"}
	]`))
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "1", users[0].ID)
	require.Equal(t, "Amy", users[1].Name)

	empty, err := ParseUsers([]byte(`[]`))
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestParseUsers_ReportsIndex(t *testing.T) {
	_, err := ParseUsers([]byte(`[
		{"id":1,"name":"Bob","email":"b@x.com","role":"admin","registeredAt":"2024-03-05T10:00:00Z"},
		{"id":2,"name":"Amy"}
	]`))
	require.ErrorIs(t, err, ErrMalformedRecord)
	require.Contains(t, err.Error(), "record 1")

	_, err = ParseUsers([]byte(`{"users":[]}`))
	require.ErrorIs(t, err, ErrMalformedRecord)
}

func TestUser_JSONRoundTripThroughUnmarshaler(t *testing.T) {
	in := User{ID: "9", Name: "Eve", Email: "e@x.com", Role: RoleAdmin, RegisteredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out User
	require.NoError(t, json.Unmarshal(b, &out))
	require.True(t, in.RegisteredAt.Equal(out.RegisteredAt))
	require.Equal(t, in.ID, out.ID)

	var list []User
	require.ErrorIs(t, json.Unmarshal([]byte(`[{"id":"1"}]`), &list), ErrMalformedRecord)
}

func TestNewUser_NormalizeAndValidate(t *testing.T) {
	n := NewUser{Name: "  Amy ", Email: " a@x.com "}.Normalize()
	require.Equal(t, NewUser{Name: "Amy", Email: "a@x.com", Role: RoleUser}, n)
	require.NoError(t, n.Validate())

	n = NewUser{Name: "Bob", Email: " Bob@Example.COM", Role: "admin"}.Normalize()
	require.Equal(t, "bob@example.com", n.Email)

	require.Error(t, NewUser{Email: "a@x.com", Role: "user"}.Validate())
	require.Error(t, NewUser{Name: "Amy", Role: "user"}.Validate())
	require.Error(t, NewUser{Name: "Amy", Email: "nope", Role: "user"}.Validate())
	require.Error(t, NewUser{Name: "Amy", Email: "a@x.com"}.Validate())
}
