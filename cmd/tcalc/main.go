package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/vidyasagar/tcalc/internal/storage"
	"github.com/vidyasagar/tcalc/internal/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// .env values feed the env-backed flags below; real environment wins.
	if err := storage.LoadEnvFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tcalc"),
		kong.Description("tcalc - a terminal calculator with history"),
		kong.UsageOnError(),
		kong.Vars{"themes": strings.Join(theme.List(), ", ")},
	)

	err := ctx.Run(&Global{Out: os.Stdout, Err: os.Stderr}, &cli)
	ctx.FatalIfErrorf(err)
}
