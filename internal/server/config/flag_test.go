package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	args := []string{
		"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "30", "-k", "4",
		"-m", "2048", "-r", "s3", "-o", "/var/uploads",
		"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
		"-x", "http://a.example, http://b.example", "-l", "debug",
	}

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseFlags(c, args))

	assert.Equal(t, &Config{
		EndpointAddrHTTP:            "127.0.0.1:9090",
		DatabaseDSN:                 "db",
		SecretKey:                   "secret",
		AccessTokenValidityDuration: 30 * time.Minute,
		BcryptCost:                  4,
		MaxUploadBytes:              2048,
		ArchiveBackend:              "s3",
		ArchiveDir:                  "/var/uploads",
		S3RootUser:                  "user",
		S3RootPassword:              "password",
		S3Bucket:                    "bucket",
		S3Region:                    "us-west-1",
		S3BaseEndpoint:              "http://endpoint",
		AllowedOrigins:              []string{"http://a.example", "http://b.example"},
		LogLevel:                    "debug",
	}, c)
}

func TestParseFlags_UnsetFlagsKeepValues(t *testing.T) {
	c := &Config{AccessTokenValidityDuration: 90 * time.Second, AllowedOrigins: []string{"*"}}
	require.NoError(t, parseFlags(c, []string{"-c", "cfg.json", "-unknown", "x"}))

	assert.Equal(t, 90*time.Second, c.AccessTokenValidityDuration)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
}

func TestParseFlags_BadValue(t *testing.T) {
	c := &Config{}
	require.Error(t, parseFlags(c, []string{"-t", "an-hour"}))
}
