package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/karlp-asrs/nus-apartment/cmd"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	sub := map[string]*complete.Command{}
	for _, c := range cmd.Commands() {
		commander.Register(c, "")
		sub[c.Name()] = &complete.Command{}
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")

	// Shell completion: takes over and exits when invoked by the shell's
	// completion hook, a no-op otherwise.
	completion := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"scenario": predict.Files("*.json"),
		},
	}
	completion.Complete("dcfa")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
