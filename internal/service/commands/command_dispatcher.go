package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/mamadbah2/buffercalc/internal/catalog"
	"github.com/mamadbah2/buffercalc/internal/domain/models"
	"github.com/mamadbah2/buffercalc/internal/i18n"
	"github.com/mamadbah2/buffercalc/internal/render"
	"github.com/mamadbah2/buffercalc/internal/service/recipe"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// RecipeCalculator is the part of the recipe service the dispatcher needs.
type RecipeCalculator interface {
	Calculate(ctx context.Context, req recipe.Request) (*recipe.Outcome, error)
	Catalog() *catalog.Catalog
}

// Dispatcher executes parsed chat commands and produces the reply text.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	recipes     RecipeCalculator
	defaultLang i18n.Lang
	logger      *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(recipes RecipeCalculator, defaultLang i18n.Lang, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultLang == "" {
		defaultLang = i18n.English
	}
	return &Service{
		recipes:     recipes,
		defaultLang: defaultLang,
		logger:      logger,
	}
}

// HandleCommand always returns a reply suitable for the sender. The error,
// when set, explains why the reply is a usage or failure message.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	lang := s.langFor(cmd.Raw)

	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender))

	switch cmd.Type {
	case models.CommandCalc:
		volume, text, ok := models.SplitCalcArgs(cmd.Args)
		if !ok {
			return i18n.CalcUsage(lang), ErrInvalidArguments
		}

		outcome, err := s.recipes.Calculate(ctx, recipe.Request{Formula: text, Volume: volume, Lang: lang})
		if err != nil {
			return i18n.Message(err, lang), err
		}

		return fmt.Sprintf("%s @ %s mL\n%s", text, render.Fixed(outcome.TotalVolumeML, render.LiquidPlaces), render.Text(outcome.Rows, lang)), nil
	case models.CommandCatalog:
		return describeCatalog(s.recipes.Catalog(), lang), nil
	case models.CommandHelp:
		return i18n.Help(lang), nil
	default:
		return i18n.Help(lang), ErrUnsupportedCommand
	}
}

// langFor answers in Chinese when the message contains Han characters.
func (s *Service) langFor(text string) i18n.Lang {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return i18n.Chinese
		}
	}
	return s.defaultLang
}

func describeCatalog(c *catalog.Catalog, lang i18n.Lang) string {
	stockTitle, solidTitle := "Stock solutions:", "Solids:"
	if lang == i18n.Chinese {
		stockTitle, solidTitle = "储液:", "固体试剂:"
	}

	var b strings.Builder
	b.WriteString(stockTitle)
	for _, s := range c.Stocks() {
		fmt.Fprintf(&b, "\n  %s %s %s (%s g/mL)", s.Name, formatNumber(s.Concentration), s.Unit, formatNumber(s.Density))
	}
	b.WriteString("\n")
	b.WriteString(solidTitle)
	for _, s := range c.Solids() {
		fmt.Fprintf(&b, "\n  %s %s g/mol", s.Name, formatNumber(s.MolecularWeight))
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
