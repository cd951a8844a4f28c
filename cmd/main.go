// Command dashboard serves the AI-driven DevSecOps dashboard locally.
package main

import (
	"os"

	"github.com/bilgisen/dashboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
