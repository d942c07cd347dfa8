package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/dmitrijs2005/userdesk/internal/client/analytics"
	"github.com/dmitrijs2005/userdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	at    = time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	users = []models.User{{ID: "1", Name: "Bob", Email: "b@x.com", Role: "admin", RegisteredAt: at.Add(-time.Hour)}}
)

func sampleReport() Report {
	return NewReport(users, analytics.Compute(users, at, time.UTC), at)
}

func TestNewReport_NilUsersEncodeAsEmptyArray(t *testing.T) {
	b, err := encode(NewReport(nil, analytics.Snapshot{}, at))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"users": []`)
}

func TestFileExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	loc, err := FileExporter{Path: path}.Export(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, path, loc)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, users, got.Users)
	assert.Equal(t, 1, got.Analytics.Last24h)
	assert.True(t, at.Equal(got.GeneratedAt))
}

func TestFileExporter_BadPath(t *testing.T) {
	_, err := FileExporter{Path: filepath.Join(t.TempDir(), "missing", "r.json")}.Export(context.Background(), sampleReport())
	require.ErrorContains(t, err, "write report")
}

func TestS3Exporter_UploadsThroughPresignedURL(t *testing.T) {
	var gotPath, gotQuery, gotMethod string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := NewS3Exporter(S3Config{
		Bucket:       "reports",
		Region:       "us-east-1",
		BaseEndpoint: srv.URL,
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
	})
	e.now = func() time.Time { return at }

	loc, err := e.Export(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.True(t, strings.HasPrefix(gotPath, "/reports/reports/2024/03/09/"), gotPath)
	assert.True(t, strings.HasSuffix(gotPath, ".json"), gotPath)
	assert.Contains(t, gotQuery, "X-Amz-Signature=")
	assert.Equal(t, "s3://reports"+strings.TrimPrefix(gotPath, "/reports"), loc)

	var got Report
	require.NoError(t, json.Unmarshal(gotBody, &got))
	assert.Equal(t, users, got.Users)
}

func TestS3Exporter_UploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	e := NewS3Exporter(S3Config{Bucket: "b", Region: "us-east-1", BaseEndpoint: srv.URL, AccessKey: "a", SecretKey: "s"})
	_, err := e.Export(context.Background(), sampleReport())
	require.ErrorContains(t, err, "upload failed: 403")
}

func TestS3Exporter_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	e := NewS3Exporter(S3Config{Bucket: "b"})
	_, err := e.Export(context.Background(), sampleReport())
	require.ErrorContains(t, err, "no config")
}

func TestObjectKey_IsUnique(t *testing.T) {
	e := NewS3Exporter(S3Config{})
	e.now = func() time.Time { return at }
	a, b := e.ObjectKey(), e.ObjectKey()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "reports/2024/03/09/"))
}
