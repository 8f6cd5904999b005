// buffercalc prints the stock volumes and solid masses needed to make up a
// buffer recipe, or writes them into a worksheet template.
//
// Usage:
//
//	buffercalc calc --volume "1 L" "20 mM Tris, 150 mM NaCl"
//	buffercalc export --volume "500 mL" --template template.xlsx --out recipe.xlsx "10 % 甘油"
//	buffercalc catalog
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "buffercalc",
		Usage:   "Laboratory buffer recipe calculator",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "Path to a YAML reagent catalog (defaults to the built-in table)",
				EnvVars: []string{"CATALOG_FILE"},
			},
			&cli.StringFlag{
				Name:    "lang",
				Value:   "en",
				Usage:   "Output language (en, zh)",
				EnvVars: []string{"DEFAULT_LANG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug output to stderr",
			},
		},

		Commands: []*cli.Command{
			calcCommand(),
			exportCommand(),
			catalogCommand(),
		},
	}
}
