package s3_test

import (
	"roomboard/config"
	"roomboard/infras/otel/mocks"
	"roomboard/infras/s3"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name     string
		public   string
		endpoint string
		expected string
	}{
		{name: "public url", public: "https://files.example.com/", expected: "https://files.example.com/board/2024-06.json"},
		{name: "path style endpoint", endpoint: "http://localhost:9000", expected: "http://localhost:9000/exports/board/2024-06.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.External.S3.PublicURL = tt.public
			cfg.External.S3.Endpoint = tt.endpoint

			assert.Equal(t, tt.expected, s3.ObjectURL(cfg, "exports", "board/2024-06.json"))
		})
	}
}

func TestNew_WithoutBucket(t *testing.T) {
	assert.Nil(t, s3.New(&config.Config{}, mocks.NewOtel()))
}
