package publisher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiteURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "public base url wins",
			cfg:  Config{PublicBaseURL: "https://sites.example.com", EndpointURL: "https://minio.local", BucketName: "sites", Region: "us-east-1"},
			want: "https://sites.example.com/sites/abc/",
		},
		{
			name: "custom endpoint uses path style",
			cfg:  Config{EndpointURL: "https://minio.local/", BucketName: "sites", Region: "us-east-1"},
			want: "https://minio.local/sites/sites/abc/",
		},
		{
			name: "plain aws",
			cfg:  Config{BucketName: "progen-sites", Region: "eu-central-1"},
			want: "https://progen-sites.s3.eu-central-1.amazonaws.com/sites/abc/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &S3Publisher{config: &tt.cfg}
			assert.Equal(t, tt.want, p.siteURL("abc"))
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/html; charset=utf-8", contentType("index.html"))
	assert.Equal(t, "text/css; charset=utf-8", contentType("styles.css"))
	assert.Equal(t, "application/octet-stream", contentType("favicon.ico"))
}
