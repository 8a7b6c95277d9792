// gridlight-inspector serves the FOV engine over a websocket for
// non-terminal clients and debugging. Build:
//
//	go build -o gridlight-inspector ./cmd/inspector
//
// Usage:
//
//	./gridlight-inspector [--config config.yaml]
//
// Then connect to ws://localhost:8080/ws and send JSON ops, e.g.:
//
//	{"op":"calculate","x":10,"y":10,"radius":8,"shape":"circle"}
package main

import (
	"flag"

	"gridlight/internal/config"
	"gridlight/internal/logger"
	"gridlight/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	flag.Parse()

	logger.Init()
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("load config")
	}

	logger.Log.Fatal(server.New(cfg).Run())
}
