package cliconfig

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bft-labs/graphitepush/pkg/log"
)

// NewLogger returns a console logger at the named level.
func NewLogger(level string) (*log.ZerologAdapter, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return log.NewZerologAdapter(lvl), nil
}
