package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	OCR      OCRConfig
	Export   ExportConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string
}

// OCRConfig holds text-recovery configuration
type OCRConfig struct {
	Pdftotext  string
	Pdftoppm   string
	Tesseract  string
	Lang       string
	DPI        int
	MaxPages   int
	Preprocess bool
}

// ExportConfig holds export-related configuration
type ExportConfig struct {
	SheetName string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "purchasing.db"),
		},
		OCR: OCRConfig{
			Pdftotext:  getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:   getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:  getEnv("TESSERACT_BIN", "tesseract"),
			Lang:       getEnv("OCR_LANG", "jpn+eng"),
			DPI:        getEnvAsInt("OCR_DPI", 300),
			MaxPages:   getEnvAsInt("OCR_MAX_PAGES", 0),
			Preprocess: getEnvAsBool("OCR_PREPROCESS", false),
		},
		Export: ExportConfig{
			SheetName: getEnv("EXPORT_SHEET_NAME", "Purchases"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return NewAppError("CONFIG_ERROR", "DB_PATH is required", ErrInvalidInput)
	}
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	return nil
}
