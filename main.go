package main

import (
	"github.com/joho/godotenv"

	"github.com/MOYARU/mas/cmd"
)

func main() {
	// Load environment variables from .env files if present. This helps local dev.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cmd.Execute()
}
