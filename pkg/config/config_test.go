// pkg/config/config_test.go

package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-studio/pkg/pdf"
	"github.com/invoice-studio/pkg/profile"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"INVOICE_ADDR", "INVOICE_STORE", "INVOICE_STORE_DSN", "INVOICE_DATA_DIR", "INVOICE_LOG_LEVEL", "INVOICE_S3_BUCKET", "PORT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file", cfg.Store)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "invoice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9000\"\nstore: memory\nlog_level: debug\ns3_bucket: from-file\n"), 0o644))
	t.Setenv("INVOICE_S3_BUCKET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from-env", cfg.S3Bucket)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("INVOICE_DATA_DIR=/tmp/dotenv-data\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dotenv-data", cfg.DataDir)
}

func TestLoadPort(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "3000")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store = "sqlite"
	assert.Error(t, cfg.Validate())
	cfg.StoreDSN = "x.db"
	assert.NoError(t, cfg.Validate())
	cfg.Store = "redis"
	assert.Error(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	cfg := Default()
	cfg.DataDir = t.TempDir()
	s, closeFn, err := cfg.OpenStore()
	require.NoError(t, err)
	assert.IsType(t, &profile.FileStore{}, s)
	assert.NoError(t, closeFn())

	cfg.Store = "sqlite"
	cfg.StoreDSN = filepath.Join(t.TempDir(), "p.db")
	svc, closeFn, err := cfg.ProfileService(context.Background(), logrus.New())
	require.NoError(t, err)
	defer closeFn()
	assert.True(t, svc.Current(context.Background()).IsEmpty())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"
	log := cfg.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestEngine(t *testing.T) {
	cfg := Default()
	assert.True(t, pdf.Available(cfg.Engine(logrus.New())))

	cfg.PDFFont = filepath.Join(t.TempDir(), "missing.ttf")
	e := cfg.Engine(logrus.New())
	assert.IsType(t, &pdf.LazyEngine{}, e)
}

func TestPublishSink(t *testing.T) {
	sink, err := Default().PublishSink()
	require.NoError(t, err)
	assert.Nil(t, sink)
}
