package main

import (
	"os"

	"sms-ingest/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
