package config

import "time"

var AppVersion = "DEVELOPMENT"

const (
	AppName           = "scenescan"
	LogFile           = "scenescan.log"
	PidFile           = "scenescan.pid"
	CfgFile           = "config.toml"
	APIRequestTimeout = 30 * time.Second
)
