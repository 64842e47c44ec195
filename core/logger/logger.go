package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the output encoding (json or console).
	Format string `mapstructure:"format" default:"json"`
}

// New creates a new zap logger based on the configuration.
func New(cfg *Config) (*zap.Logger, error) {
	var config zap.Config

	if cfg.Level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	// Set format based on configuration
	if cfg.Format == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	} else {
		config.Encoding = "json"
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}

// MessageID returns the stable message-identifier field attached to every
// externally significant operation, so alerting can key on it without parsing
// message text.
func MessageID(id string) zap.Field {
	return zap.String("message_id", id)
}

// Stable message identifiers.
const (
	MsgGetAuction             = "get_auction"
	MsgLockLot                = "lock_lot"
	MsgSwitchLotStatus        = "switch_lot_status"
	MsgSwitchAuctionStatus    = "switch_auction_status"
	MsgSwitchLotAuctionStatus = "switch_lot_auction_status"
	MsgCreateContract         = "create_contract"
	MsgUpdateContract         = "update_contract"
	MsgInvalidLotStatus       = "invalid_lot_status"
)
