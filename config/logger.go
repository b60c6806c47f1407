package config

import (
	"github.com/MonkyMars/gecho"
)

var logger gecho.Logger

func InitializeLogger() *gecho.Logger {
	level := gecho.ParseLogLevel(GetLogLevel())

	logger = *gecho.NewLogger(gecho.NewConfig(
		gecho.WithLogLevel(level),
		gecho.WithShowCaller(!IsProduction()),
	))
	return &logger
}

func GetLogger() *gecho.Logger {
	return &logger
}
