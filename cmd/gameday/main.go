package main

import (
	"gameday/cmd/cmd"
	"gameday/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	cmd.Execute()
}
