package main

import (
	"github.com/joho/godotenv"

	"github.com/Ana-sthesia/shroom-game/cmd"
)

func main() {
	// Load .env first so config resolution sees every variable
	_ = godotenv.Load()

	cmd.Execute()
}
