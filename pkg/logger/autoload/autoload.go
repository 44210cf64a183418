// Package autoload initializes the global logger from LOG_* environment
// variables on import. Blank-import it from main.
package autoload

import (
	configx "github.com/omarelhadidy/hesab-agent/pkg/config"
	logx "github.com/omarelhadidy/hesab-agent/pkg/logger"
)

func init() {
	cfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*cfg)
}
