package main

import (
	"os"

	"github.com/yaptide/geomc/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
