// cmd/opencam-export/main.go
package main

import (
	"github.com/bstardust/opencamera-meta-export/internal/logger"
	"github.com/bstardust/opencamera-meta-export/pkg/cli"
)

func main() {
	// Initialize logger
	logger.Init()

	// Execute CLI
	cli.Execute()
}
