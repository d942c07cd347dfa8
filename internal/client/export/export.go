// Package export writes a JSON report of the directory and its analytics,
// either to a local file or to S3-compatible object storage.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/client/analytics"
	"github.com/dmitrijs2005/userdesk/internal/filex"
	"github.com/dmitrijs2005/userdesk/internal/models"
)

// Report is the exported document.
type Report struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Users       []models.User      `json:"users"`
	Analytics   analytics.Snapshot `json:"analytics"`
}

// NewReport bundles users with their analytics snapshot.
func NewReport(users []models.User, snap analytics.Snapshot, at time.Time) Report {
	if users == nil {
		users = []models.User{}
	}
	return Report{GeneratedAt: at, Users: users, Analytics: snap}
}

// Exporter stores a report and returns where it went.
type Exporter interface {
	Export(ctx context.Context, r Report) (string, error)
}

func encode(r Report) ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return b, nil
}

// FileExporter writes the report to Path.
type FileExporter struct {
	Path string
}

func (e FileExporter) Export(_ context.Context, r Report) (string, error) {
	b, err := encode(r)
	if err != nil {
		return "", err
	}
	if err := filex.WriteFileAtomic(e.Path, b, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return e.Path, nil
}
