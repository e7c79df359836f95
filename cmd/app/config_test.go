package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config.env")
	require.NoError(t, err)
	defer os.Remove(tempFile.Name())

	configData := []byte(`
PORT=8080
ENVIRONMENT=development
VERSION=1.0.0
TRUSTED_ORIGINS="http://localhost:3000,http://localhost:3001"
POSTGRES_HOST=localhost
POSTGRES_USER=testuser
POSTGRES_PASSWORD=testpassword
POSTGRES_DB=testdb
DB_MAX_IDLE_TIME=5m
MAIL_HOST=smtp.example.com
MAIL_PORT=2525
MAIL_USER=testuser@example.com
MAIL_PASSWORD=testpassword
MAIL_SENDER=sender@example.com
ACTIVATION_URL=http://localhost:3000/activate
RABBITMQ_HOST=rabbitmq.example.com
RABBITMQ_USER=testuser
RABBITMQ_PASSWORD=testpassword
MINIO_ENDPOINT=minio.example.com:9000
MINIO_ACCESS_KEY=minio
MINIO_SECRET_KEY=minio-secret
UNSPLASH_ACCESS_KEY=unsplash-key
RATE_LIMIT_ENABLED=false
`)
	_, err = tempFile.Write(configData)
	require.NoError(t, err)

	config, err := loadConfig(tempFile.Name())
	require.NoError(t, err)

	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, config.TrustedOrigins)
	assert.Equal(t, "localhost", config.DBHost)
	assert.Equal(t, "testuser", config.DBUser)
	assert.Equal(t, "testpassword", config.DBPassword)
	assert.Equal(t, "testdb", config.DBName)
	assert.Equal(t, 5*time.Minute, config.DBMaxIdleTime)
	assert.Equal(t, "smtp.example.com", config.MailHost)
	assert.Equal(t, 2525, config.MailPort)
	assert.Equal(t, "testuser@example.com", config.MailUser)
	assert.Equal(t, "sender@example.com", config.MailSender)
	assert.Equal(t, "http://localhost:3000/activate", config.ActivationURL)
	assert.Equal(t, "rabbitmq.example.com", config.MQHost)
	assert.Equal(t, "testuser", config.MQUser)
	assert.Equal(t, "minio.example.com:9000", config.MinioEndpoint)
	assert.Equal(t, "minio", config.MinioAccessKey)
	assert.Equal(t, "unsplash-key", config.UnsplashAccessKey)
	assert.False(t, config.RateLimitEnabled)

	// unset keys fall back to the defaults
	assert.Equal(t, "5432", config.DBPort)
	assert.Equal(t, "5672", config.MQPort)
	assert.Equal(t, "publicavatar", config.MinioBucket)
	assert.Equal(t, "https://api.unsplash.com", config.UnsplashURL)
	assert.Equal(t, 25, config.DBMaxOpenConns)
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "4000", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 15*time.Minute, config.DBMaxIdleTime)
	assert.True(t, config.RateLimitEnabled)
}
