package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sitrack/internal/config"
)

func TestReportKey(t *testing.T) {
	assert.Equal(t, "reports/r-1/abc.pdf", ReportKey("r-1", "abc.pdf"))
	assert.Equal(t, "reports/r-1/abc", ReportKey("r-1", "abc"))
}

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantErr string
	}{
		{name: "no endpoint", cfg: config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}, wantErr: "minio endpoint is required"},
		{name: "no credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"}, wantErr: "minio credentials are required"},
		{name: "no bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}, wantErr: "minio bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(tt.cfg)
			assert.Nil(t, s)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
