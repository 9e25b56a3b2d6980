// Package cmd implements the CLI application to analyze a rental-property
// investment project.
package cmd

import (
	"flag"

	"github.com/google/subcommands"

	dcf "github.com/karlp-asrs/nus-apartment"
)

// Commands returns all the subcommands of the application.
// A main package registers them on a commander and Execute()s the user-selected one.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&reportCmd{},
		&cashflowCmd{},
		&scheduleCmd{},
		&irrCmd{},
		&queryCmd{},
		&assistCmd{},
		&topicCmd{},
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var scenarioFile = flag.String("scenario", "scenario.json", "Path to the scenario file (JSON format)")

// loadScenario is the central function to read the app scenario file.
func loadScenario() (dcf.Scenario, error) {
	return dcf.LoadScenario(*scenarioFile)
}
