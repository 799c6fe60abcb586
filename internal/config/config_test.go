package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/sheets"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func clearSheetsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("HIRE_TEST_DIR", "/srv/hire")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/data/hire.db", want: filepath.Join(home, "data/hire.db")},
		{in: "$HIRE_TEST_DIR/hire.db", want: "/srv/hire/hire.db"},
		{in: "/abs/path", want: "/abs/path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDirsHonorXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	assert.Equal(t, "/xdg/data/hireflow", DataDir())
	assert.Equal(t, "/xdg/config/hireflow", ConfigDir())
}

func TestLoad(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	v := viper.New()
	SetDefaults(v)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/xdg/data/hireflow/hireflow.db", s.DatabasePath)
	assert.Equal(t, "/xdg/data/hireflow/exports", s.ExportDir)
	assert.Equal(t, "warn", s.LogLevel)
	assert.True(t, s.AutoSnapshot)

	v.Set(KeyDatabasePath, ":memory:")
	s, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", s.DatabasePath)
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyLogFormat, "xml")

	_, err := Load(v)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	v.Set(KeyLogFormat, "json")
	v.Set(KeyDatabasePath, "")
	_, err = Load(v)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoadSheetsConfig(t *testing.T) {
	clearSheetsEnv(t)
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Env Name")

	v := viper.New()
	v.Set("sheets.service_account_path", "/keys/sa.json")
	v.Set("sheets.spreadsheet_id", "from-viper")

	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
	assert.Equal(t, "from-viper", cfg.SpreadsheetID, "viper wins over env")
	assert.Equal(t, "Env Name", cfg.SpreadsheetName, "env fills the default name")
}

func TestLoadSheetsConfig_SavedToken(t *testing.T) {
	clearSheetsEnv(t)
	tokenFile := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, sheets.SaveToken(tokenFile, &oauth2.Token{RefreshToken: "saved"}))

	v := viper.New()
	v.Set("sheets.client_id", "id")
	v.Set("sheets.client_secret", "secret")
	v.Set(KeyTokenFile, tokenFile)

	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "saved", cfg.RefreshToken)
	assert.Equal(t, sheets.DefaultSpreadsheetName, cfg.SpreadsheetName)
}

func TestLoadSheetsConfig_NoCredentials(t *testing.T) {
	clearSheetsEnv(t)
	v := viper.New()
	v.Set(KeyTokenFile, filepath.Join(t.TempDir(), "missing.json"))

	_, err := LoadSheetsConfig(v)
	assert.Error(t, err)
}
