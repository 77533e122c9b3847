package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"macro-averages/chart"
	"macro-averages/config"
	"macro-averages/prompt"
	"macro-averages/services"
	"macro-averages/storage"
	"macro-averages/utils"
)

func main() {
	logger := utils.NewLogger()

	var weightFile, macrosFile, year string
	cmd := &cobra.Command{
		Use:           "macro-averages",
		Short:         "Chart monthly averages of body weight and nutrition macros for one year",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load().Override(weightFile, macrosFile, year)
			return run(cfg, logger)
		},
	}
	cmd.Flags().StringVarP(&weightFile, "weight", "w", "", "weight CSV (columns Date, Weight)")
	cmd.Flags().StringVarP(&macrosFile, "macros", "m", "", "macros CSV (columns Date, Calories, Protein (g), Fat (g), Carbs (g))")
	cmd.Flags().StringVarP(&year, "year", "y", "", "year to average, YYYY")

	if err := cmd.Execute(); err != nil {
		logger.Error("%s", userMessage(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *utils.Logger) error {
	in, err := prompt.Resolve(prompt.Inputs{
		WeightFile: cfg.WeightFile,
		MacrosFile: cfg.MacrosFile,
		Year:       cfg.Year,
	}, prompt.SurveyAsker{}, logger)
	if err != nil {
		return err
	}

	logger.Info("=== Monthly averages for %s ===", in.Year)
	logger.Info("Weight: %s | Macros: %s", in.WeightFile, in.MacrosFile)

	pipeline := services.NewPipeline(
		storage.NewCSVReader(logger),
		services.NewCleaner(logger),
		services.NewAverager(logger),
		logger,
	)
	res, err := pipeline.Run(in.WeightFile, in.MacrosFile, in.Year)
	if err != nil {
		return err
	}
	pipeline.Print(res)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	saved, err := chart.NewRenderer(cwd, logger).Render(res.Weight, res.Macros, res.Year)
	if err != nil {
		return err
	}
	fmt.Println(saved)
	return nil
}

// userMessage turns a pipeline error into the line shown before exiting.
func userMessage(err error) string {
	switch {
	case errors.Is(err, chart.ErrTableMismatch):
		return chart.ErrTableMismatch.Error()
	case errors.Is(err, storage.ErrMissingFields):
		return err.Error() + " (did you switch up the weight and macros files?)"
	default:
		return err.Error()
	}
}
