package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"vestd/internal/di"
	"vestd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	pflag.StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the configuration file")
	pflag.BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug mode (console logging)")
	pflag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "vestd: %s\n", err)
		os.Exit(1)
	}
}
