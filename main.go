package main

import (
	"github.com/joho/godotenv"

	"github.com/clearwave-security/clearscan-agent/pkg/cli"
)

func main() {
	// Load environment variables from .env files if present. This
	// helps local dev; missing files are fine.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cli.Execute()
}
