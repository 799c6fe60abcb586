package config

import (
	"fmt"
	"path/filepath"

	"github.com/Veraticus/hireflow/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyDatabasePath = "database.path"
	KeyExportDir    = "export.dir"
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
	KeyAutoSnapshot = "snapshots.auto"
	KeyTokenFile    = "sheets.token_file"
)

// Settings are the resolved application settings.
type Settings struct {
	DatabasePath string `validate:"required"`
	ExportDir    string
	LogLevel     string `validate:"oneof=debug info warn error"`
	LogFormat    string `validate:"oneof=console json"`
	AutoSnapshot bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, filepath.Join(DataDir(), "hireflow.db"))
	v.SetDefault(KeyExportDir, filepath.Join(DataDir(), "exports"))
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyAutoSnapshot, true)
	v.SetDefault(KeyTokenFile, filepath.Join(ConfigDir(), "sheets-token.json"))
}

var validate = validator.New()

// Load reads and validates Settings from v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		DatabasePath: v.GetString(KeyDatabasePath),
		ExportDir:    v.GetString(KeyExportDir),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		AutoSnapshot: v.GetBool(KeyAutoSnapshot),
	}
	if s.DatabasePath != ":memory:" {
		s.DatabasePath = ExpandPath(s.DatabasePath)
	}
	s.ExportDir = ExpandPath(s.ExportDir)

	if err := validate.Struct(s); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return s, nil
}
