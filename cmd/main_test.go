// cmd/main_test.go

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoiceYAML = `
number: INV-7
currency: usd
client:
  name: Globex
items:
  - desc: Design
    qty: 2
    price: "10.5"
  - desc: Hosting
    qty: 1
    price: 4
taxRate: 10
discount: 1
shipping: abc
`

func setup(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	t.Chdir(dir)
	cfgPath = filepath.Join(dir, "config.yaml")
	cfg := "store: file\ndata_dir: " + filepath.Join(dir, "data") + "\nlog_level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inv.yaml"), []byte(invoiceYAML), 0o644))
	return dir, cfgPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := newApp(&out, &errOut).RunContext(context.Background(), append([]string{"invoice-studio"}, args...))
	return out.String(), err
}

func TestInvoiceTotals(t *testing.T) {
	_, cfg := setup(t)
	out, err := run(t, "--config", cfg, "invoice", "totals", "inv.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Design")
	// 21 + 4 = 25, +2.50 tax, -1 discount, shipping ignored
	assert.Contains(t, out, "$26.50")
}

func TestInvoiceTotalsNeedsFile(t *testing.T) {
	_, cfg := setup(t)
	_, err := run(t, "--config", cfg, "invoice", "totals")
	assert.Error(t, err)
}

func TestProfileSetAndRender(t *testing.T) {
	_, cfg := setup(t)

	out, err := run(t, "--config", cfg, "profile", "set", "--name", "Acme", "--email", "hi@acme.test")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Acme")

	_, err = run(t, "--config", cfg, "profile", "set", "--phone", "555")
	require.NoError(t, err)

	out, err = run(t, "--config", cfg, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Acme")
	assert.Contains(t, out, "phone: \"555\"")

	out, err = run(t, "--config", cfg, "invoice", "render", "--plain", "inv.yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Invoice INV-7"), out)
	assert.Contains(t, out, "Acme")

	out, err = run(t, "--config", cfg, "invoice", "render", "--format", "print", "inv.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")

	_, err = run(t, "--config", cfg, "profile", "clear")
	require.NoError(t, err)
	out, err = run(t, "--config", cfg, "profile", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "Acme")
}

func TestProfileLogoRejectsText(t *testing.T) {
	dir, cfg := setup(t)
	_, err := run(t, "--config", cfg, "profile", "logo", filepath.Join(dir, "inv.yaml"))
	assert.Error(t, err)
}

func TestInvoicePDF(t *testing.T) {
	dir, cfg := setup(t)
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	out, err := run(t, "--config", cfg, "invoice", "pdf", "--out", outDir, "inv.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "Invoice_INV-7.pdf"), strings.TrimSpace(out))

	data, err := os.ReadFile(filepath.Join(outDir, "Invoice_INV-7.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	_, err = run(t, "--config", cfg, "invoice", "pdf", "--publish", "inv.yaml")
	assert.Error(t, err)
}
