package main

import (
	"github.com/humanbelnik/matchpoint/core/internal/app"
	"github.com/humanbelnik/matchpoint/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
