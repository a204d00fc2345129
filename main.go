package main

import (
	"github.com/alecthomas/kong"

	"github.com/nvembar/onehundredbeers/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("onehundredbeers"), kong.Description("One Hundred Beers is a beer contest tracker."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
