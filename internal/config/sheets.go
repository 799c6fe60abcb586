package config

import (
	"github.com/Veraticus/hireflow/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig builds the Google Sheets configuration. It follows this
// precedence:
// 1. Viper configuration (from config file or HIRE_ env vars)
// 2. A refresh token saved by "hire sheets auth"
// 3. Direct environment variables (GOOGLE_SHEETS_*)
// 4. Default values
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if p := v.GetString("sheets.service_account_path"); p != "" {
		config.ServiceAccountPath = ExpandPath(p)
	}
	config.ClientID = v.GetString("sheets.client_id")
	config.ClientSecret = v.GetString("sheets.client_secret")
	config.RefreshToken = v.GetString("sheets.refresh_token")
	config.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	if name := v.GetString("sheets.spreadsheet_name"); name != "" {
		config.SpreadsheetName = name
	}
	if title := v.GetString("sheets.sheet_title"); title != "" {
		config.SheetTitle = title
	}

	if err := config.ApplyToken(ExpandPath(v.GetString(KeyTokenFile))); err != nil {
		return nil, err
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, err
	}
	config.ServiceAccountPath = ExpandPath(config.ServiceAccountPath)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
