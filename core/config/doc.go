// Package config provides configuration management for registry-ingest.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file, with hardcoded defaults declared as struct
// tags on each section's Config type.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Source: remote registry endpoint, page size, page cap, job settings
//   - Database: MySQL/SQLite connection details
//   - Storage: S3/MinIO credentials for raw page archival
//   - Server: observability API port and API key
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Source.BaseURL)
package config
