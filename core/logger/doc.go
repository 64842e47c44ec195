// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and a stable vocabulary of message identifiers
// for the worker's externally significant operations.
//
// # Message identifiers
//
// The worker is unattended; failures surface only through logs. Every state
// transition it performs against a remote resource logs with a stable
// message_id field (lock_lot, switch_lot_status, create_contract, ...), so
// external alerting can match on identifiers instead of message text.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Lock lot", logger.MessageID(logger.MsgLockLot))
package logger
