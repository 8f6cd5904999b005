package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/buffercalc/internal/catalog"
	"github.com/mamadbah2/buffercalc/internal/export"
	"github.com/mamadbah2/buffercalc/internal/i18n"
	"github.com/mamadbah2/buffercalc/internal/render"
	"github.com/mamadbah2/buffercalc/internal/service/recipe"
	"github.com/mamadbah2/buffercalc/pkg/logger"
)

var errMissingRecipe = errors.New("missing recipe argument")

var (
	volumeFlag = &cli.StringFlag{
		Name:     "volume",
		Usage:    "Total volume, e.g. \"1 L\", \"500 mL\", \"1000 μL\"",
		Required: true,
	}
	solidFlag = &cli.StringSliceFlag{
		Name:    "solid",
		Aliases: []string{"s"},
		Usage:   "Weigh this reagent as a solid even when a stock solution exists",
	}
)

func calcCommand() *cli.Command {
	return &cli.Command{
		Name:      "calc",
		Usage:     "Compute stock volumes and solid masses for a recipe",
		ArgsUsage: "\"<recipe>\"",
		Flags: []cli.Flag{
			volumeFlag,
			solidFlag,
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json)",
			},
		},
		Action: runCalc,
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write the worksheet into an xlsx template",
		ArgsUsage: "\"<recipe>\"",
		Flags: []cli.Flag{
			volumeFlag,
			solidFlag,
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Template workbook (a blank workbook when empty)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output file (defaults to a timestamped name)",
			},
		},
		Action: runExport,
	}
}

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:   "catalog",
		Usage:  "List stock solutions and solid reagents",
		Action: runCatalog,
	}
}

func runCalc(c *cli.Context) error {
	svc, lang, err := setup(c)
	if err != nil {
		return err
	}

	req, err := recipeRequest(c, lang)
	if err != nil {
		return err
	}

	outcome, err := svc.Calculate(c.Context, req)
	if err != nil {
		return errors.New(i18n.Message(err, lang))
	}

	if c.String("format") == "json" {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome.Rows)
	}

	_, err = fmt.Fprint(c.App.Writer, render.Text(outcome.Rows, lang))
	return err
}

func runExport(c *cli.Context) error {
	svc, lang, err := setup(c, export.NewXLSXExporter(c.String("template"), export.DefaultLayout(), nil))
	if err != nil {
		return err
	}

	req, err := recipeRequest(c, lang)
	if err != nil {
		return err
	}

	art, _, err := svc.Export(c.Context, req, "xlsx")
	if err != nil {
		return errors.New(i18n.Message(err, lang))
	}

	out := c.String("out")
	if out == "" {
		out = art.Filename
	}
	if err := os.WriteFile(out, art.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	_, err = fmt.Fprintln(c.App.Writer, out)
	return err
}

func runCatalog(c *cli.Context) error {
	svc, _, err := setup(c)
	if err != nil {
		return err
	}
	cat := svc.Catalog()

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STOCK\tCONCENTRATION\tDENSITY (g/mL)")
	for _, s := range cat.Stocks() {
		fmt.Fprintf(w, "%s\t%s %s\t%s\n", s.Name, formatNumber(s.Concentration), s.Unit, formatNumber(s.Density))
	}
	fmt.Fprintln(w, "\nSOLID\tMW (g/mol)\t")
	for _, s := range cat.Solids() {
		fmt.Fprintf(w, "%s\t%s\t\n", s.Name, formatNumber(s.MolecularWeight))
	}
	return w.Flush()
}

// setup loads the catalog named by the global flags and builds the service.
func setup(c *cli.Context, exporters ...export.Exporter) (*recipe.Service, i18n.Lang, error) {
	log, err := logger.NewConsole(c.Bool("verbose"))
	if err != nil {
		return nil, "", err
	}

	initial := catalog.Default()
	if path := c.String("catalog"); path != "" {
		initial, err = catalog.NewFileSource(path).Load(c.Context)
		if err != nil {
			return nil, "", err
		}
		log.Debug("catalog loaded", zap.String("path", path), zap.Int("entries", initial.Len()))
	}

	store := catalog.NewStore(nil, initial, log.Named("catalog"))
	lang := i18n.Parse(c.String("lang"), i18n.English)
	return recipe.NewService(store, log.Named("recipe"), exporters...), lang, nil
}

func recipeRequest(c *cli.Context, lang i18n.Lang) (recipe.Request, error) {
	if c.NArg() == 0 {
		return recipe.Request{}, errMissingRecipe
	}

	return recipe.Request{
		Formula: strings.Join(c.Args().Slice(), " "),
		Volume:  c.String("volume"),
		Solids:  c.StringSlice("solid"),
		Lang:    lang,
	}, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
