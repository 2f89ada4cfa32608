// Command dndemo replays and renders drag and drop scenes.
package main

import (
	"os"

	"github.com/go-drift/dnd/cmd/dndemo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
