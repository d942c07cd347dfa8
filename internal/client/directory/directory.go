// Package directory implements the user table: case-insensitive search on
// name or email, locale-aware sorting and the rows handed to the renderer.
package directory

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/userdesk/internal/models"
)

// SortKey selects the column the table is ordered by.
type SortKey string

const (
	SortByName  SortKey = "name"
	SortByEmail SortKey = "email"
	SortByRole  SortKey = "role"
)

// DefaultSortKey is used until the operator picks another column.
const DefaultSortKey = SortByName

// EmptyPlaceholder is the single row shown when nothing matches.
const EmptyPlaceholder = "No users found"

// Headers are the table column titles, in row order.
var Headers = []string{"ID", "Name", "Email", "Role"}

// ParseSortKey maps user input to a SortKey. An empty string selects the default.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultSortKey, nil
	case SortByName:
		return SortByName, nil
	case SortByEmail:
		return SortByEmail, nil
	case SortByRole:
		return SortByRole, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want name, email or role)", s)
}

func (k SortKey) field(u models.User) string {
	switch k {
	case SortByEmail:
		return u.Email
	case SortByRole:
		return u.Role
	default:
		return u.Name
	}
}

// Filter returns the users whose name or email contains query, ignoring
// case. An empty query keeps everything. The input slice is not modified.
func Filter(users []models.User, query string) []models.User {
	q := strings.ToLower(query)
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}

// Sorter orders users with the collation rules of one locale.
type Sorter struct {
	tag language.Tag
}

// NewSorter parses a BCP 47 tag such as "en" or "de-DE".
func NewSorter(locale string) (*Sorter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Sorter{tag: tag}, nil
}

// Sort returns a copy of users ordered ascending by key. The sort is stable,
// so records comparing equal keep their input order.
func (s *Sorter) Sort(users []models.User, key SortKey) []models.User {
	// A Collator keeps internal buffers and must not be shared between goroutines.
	c := collate.New(s.tag)
	out := slices.Clone(users)
	slices.SortStableFunc(out, func(a, b models.User) int {
		return c.CompareString(key.field(a), key.field(b))
	})
	return out
}

// View is the current state of the table controls.
type View struct {
	Query string
	Key   SortKey
}

// Apply filters then sorts users according to v.
func (s *Sorter) Apply(users []models.User, v View) []models.User {
	key := v.Key
	if key == "" {
		key = DefaultSortKey
	}
	return s.Sort(Filter(users, v.Query), key)
}

// Rows converts users into table rows matching Headers. An empty input yields
// a single row holding EmptyPlaceholder.
func Rows(users []models.User) [][]string {
	if len(users) == 0 {
		return [][]string{{EmptyPlaceholder}}
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Name, u.Email, u.Role})
	}
	return rows
}
