package main

import (
	"fmt"
	"os"

	"github.com/brunosoares877/Crefaz/internal/cli"
)

func main() {
	if err := cli.NewApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
