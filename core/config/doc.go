// Package config provides configuration management for the worker.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into
// subsections:
//   - Feed: changes-feed database connection and polling intervals
//   - Lots / Auctions / Assets / Contracts: resource API endpoints and tokens
//   - TargetDocs: destination document store (http service or s3 bucket)
//   - Mapping: processed-auctions store backend
//   - Bridge: document transfer loop timings
//   - DirectLock / Embedded: auction type aliases per family
//   - Log, Server: logging and the status endpoint
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Feed.URL)
package config
