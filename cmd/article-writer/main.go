package main

import (
	"github.com/rahimkhoja/ai-article-writer/cmd/handlers"
	"github.com/rahimkhoja/ai-article-writer/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	handlers.Execute()
}
