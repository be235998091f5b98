package filestore

import (
	"path"
	"strings"
)

// Provider identifies the file storage backend.
type Provider string

const (
	ProviderMinIO Provider = "minio"
)

// Content types of published artifacts.
const (
	ContentTypeHCL = "text/plain; charset=utf-8"
	ContentTypeSQL = "application/sql"
)

// Config holds the settings needed to publish artifacts to object storage.
type Config struct {
	Provider Provider

	// Endpoint is the host:port of the storage server, e.g. "localhost:9000".
	// An empty endpoint disables publishing.
	Endpoint string

	AccessKey string
	SecretKey string
	UseSSL    bool

	// Region is used by region-aware backends. Leave empty for MinIO.
	Region string

	// Bucket receives every published artifact.
	Bucket string

	// Prefix is prepended to every object key, e.g. "schemas/v1".
	Prefix string
}

// DefaultConfig returns a local-dev config for MinIO.
func DefaultConfig(endpoint, accessKey, secretKey string) *Config {
	return &Config{
		Provider:  ProviderMinIO,
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
	}
}

// Enabled reports whether a storage endpoint is configured.
func (c *Config) Enabled() bool {
	return c != nil && c.Endpoint != ""
}

// Key returns the object key for name under the configured prefix.
func (c *Config) Key(name string) string {
	prefix := strings.Trim(c.Prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
