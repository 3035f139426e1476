package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagebooks-dev/stagebooks/internal/model"
	"github.com/stagebooks-dev/stagebooks/internal/payroll"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Events")
	cfg.Server.AllowedOrigins = []string{"https://books.example.com"}
	cfg.Payroll.ZUSTiers["full"] = decimal.RequireFromString("1773.96")
	cfg.Tax.SmallBusiness = false

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Business, got.Business)
	assert.Equal(t, cfg.Export, got.Export)
	assert.Equal(t, cfg.Server, got.Server)
	assert.Equal(t, cfg.Log, got.Log)
	assert.False(t, got.Tax.SmallBusiness)
	assert.True(t, got.Tax.CITStandard.Equal(cfg.Tax.CITStandard))
	assert.True(t, got.Payroll.EmployerContribution.Equal(decimal.RequireFromString("0.2048")))
	assert.True(t, got.Payroll.ZUSTiers["full"].Equal(decimal.RequireFromString("1773.96")))
	assert.Len(t, got.Payroll.Ryczalt, 3)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company")

	assert.Equal(t, "My Company", cfg.Business.Name)
	assert.Equal(t, "PLN", cfg.Business.Currency)
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.Equal(t, 30*time.Second, cfg.Export.PDFTimeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Tax.SmallBusiness)
	assert.True(t, cfg.Tax.CITSmall.Equal(decimal.RequireFromString("0.09")))
}

func TestRates_RoundTrip(t *testing.T) {
	want := payroll.DefaultRates()
	got := FromRates(want).Rates()

	assert.True(t, got.EmployeeZUSRate().Equal(want.EmployeeZUSRate()))
	assert.True(t, got.MonthlyThreshold().Equal(decimal.NewFromInt(10000)))
	assert.True(t, got.Ryczalt[model.ServiceIT].Equal(decimal.RequireFromString("0.12")))
	assert.True(t, got.ZUSTiers[model.ZUSMinimal].IsZero())
}

func TestCalculator_UsesConfig(t *testing.T) {
	cfg := Default("x")
	cfg.Payroll.B2BFlat = decimal.RequireFromString("0.10")
	cfg.Payroll.ZUSTiers["minimal"] = decimal.Zero

	rec := cfg.Calculator().Calculate(model.StaffMember{
		PayrollType: model.PayrollB2B,
		ZUSTier:     model.ZUSMinimal,
		RateAmount:  decimal.NewFromInt(1000),
	})
	assert.True(t, rec.PITAmount.Equal(decimal.NewFromInt(100)), "got %s", rec.PITAmount)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("business:\n  name: Scena\nexport:\n  dir: out\n  pdf_timeout: 5s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Scena", cfg.Business.Name)
	assert.Equal(t, "out", cfg.Export.Dir)
	assert.Equal(t, 5*time.Second, cfg.Export.PDFTimeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Payroll.HealthRate.Equal(decimal.RequireFromString("0.09")))
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Events")
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Events")
	assert.Contains(t, contents, "currency: PLN")
	assert.Contains(t, contents, "dir: exports")
	assert.Contains(t, contents, "pdf_timeout: 30s")
	assert.Contains(t, contents, "format: text")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default("x")
	env := map[string]string{
		EnvAddr:       "127.0.0.1:9000",
		EnvLogLevel:   "debug",
		EnvExportedBy: "anna@example.com",
	}
	ApplyEnv(cfg, func(k string) string { return env[k] })

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "anna@example.com", cfg.Business.ExportedBy)

	untouched := Default("x")
	ApplyEnv(untouched, func(string) string { return "" })
	assert.Equal(t, ":8080", untouched.Server.Addr)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STAGEBOOKS_TEST_DOTENV=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("STAGEBOOKS_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "loaded", os.Getenv("STAGEBOOKS_TEST_DOTENV"))
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, Save(path, Default("Scena")))

	t.Setenv(EnvConfig, path)
	t.Setenv(EnvAddr, ":7070")

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "Scena", cfg.Business.Name)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestPath_Precedence(t *testing.T) {
	t.Setenv(EnvConfig, "")
	assert.Equal(t, FileName, Path(""))

	t.Setenv(EnvConfig, "/etc/stagebooks.yaml")
	assert.Equal(t, "/etc/stagebooks.yaml", Path(""))
	assert.Equal(t, "local.yaml", Path("local.yaml"), "explicit path beats the environment")
}

func TestResolve_ExplicitPathBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	flagPath := filepath.Join(dir, "flag.yaml")
	envPath := filepath.Join(dir, "env.yaml")
	require.NoError(t, Save(flagPath, Default("From Flag")))
	require.NoError(t, Save(envPath, Default("From Env")))
	t.Setenv(EnvConfig, envPath)

	cfg, err := Resolve(flagPath)
	require.NoError(t, err)
	assert.Equal(t, "From Flag", cfg.Business.Name)
}

func TestResolve_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvConfig, "")
	cfg, err := Resolve(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, "exports", cfg.Export.Dir)
}
