package main

import (
	"github.com/helica-bio/expertgraph/backend/internal/server"
	"github.com/helica-bio/expertgraph/backend/internal/util"
	"github.com/helica-bio/expertgraph/backend/pkg/logger"
	"github.com/helica-bio/expertgraph/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
