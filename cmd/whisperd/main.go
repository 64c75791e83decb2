package main

import (
	"fmt"
	"os"

	"github.com/anashammo/whisper-ui/cmd/whisperd/cmd"
	"github.com/anashammo/whisper-ui/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}
	cmd.Execute()
}
