package main

import (
	"fmt"
	"os"

	"github.com/eventdesk/eventdesk-backend/internal/app"
	"github.com/eventdesk/eventdesk-backend/internal/platform/envutil"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	port := envutil.Str("PORT", "8080")
	application.Log.Info("Server listening", "port", port)
	if err := application.Run(":" + port); err != nil {
		application.Log.Error("Server failed", "error", err)
	}
}
