package main

import (
	"fmt"
	"os"

	"github.com/releasegate/releasegate/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// The root command silences cobra's own error printing, so the
		// final error is reported here.
		fmt.Fprintln(os.Stderr, "releasegate:", err)
		os.Exit(1)
	}
}
