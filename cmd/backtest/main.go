package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/chart-patterns/internal/backtest"
	"github.com/rxtech-lab/chart-patterns/internal/datasource"
	"github.com/rxtech-lab/chart-patterns/internal/logger"
	"github.com/rxtech-lab/chart-patterns/internal/pattern"
	"github.com/rxtech-lab/chart-patterns/internal/types"
)

// loadStrategyConfig reads the strategy YAML, falling back to the defaults
// over the full catalogue when no config path is given.
func loadStrategyConfig(path string) (backtest.StrategyConfig, error) {
	if path == "" {
		return backtest.DefaultConfig(types.PatternCatalog()...), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return backtest.StrategyConfig{}, fmt.Errorf("failed to read strategy config: %w", err)
	}

	var config backtest.StrategyConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return backtest.StrategyConfig{}, fmt.Errorf("failed to parse strategy config: %w", err)
	}

	return config, nil
}

// analyze loads the bar series and runs the recognizer over it.
func analyze(dataPath string, log *logger.Logger) ([]types.Bar, []types.Signal, error) {
	bars, err := datasource.LoadCSV(dataPath)
	if err != nil {
		return nil, nil, err
	}

	recognizer, err := pattern.NewRecognizer(pattern.DefaultConfig(), log)
	if err != nil {
		return nil, nil, err
	}

	signals, err := recognizer.AnalyzeAllPatterns(bars)
	if err != nil {
		return nil, nil, err
	}

	log.Info("pattern analysis complete",
		zap.Int("bars", len(bars)),
		zap.Int("signals", len(signals)),
	)

	return bars, signals, nil
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	config, err := loadStrategyConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	bars, signals, err := analyze(cmd.String("data"), log)
	if err != nil {
		return err
	}

	runner, err := backtest.NewRunner(bars, log)
	if err != nil {
		return err
	}

	result, err := runner.RunToResult(signals, config)
	if err != nil {
		return err
	}

	log.Info("backtest complete",
		zap.String("id", result.ID),
		zap.Int("total_trades", result.Metrics.TotalTrades),
		zap.Float64("win_rate", result.Metrics.WinRate),
		zap.Float64("total_return", result.Metrics.TotalReturn),
		zap.Float64("sharpe_ratio", result.Metrics.SharpeRatio),
		zap.Float64("max_drawdown", result.Metrics.MaxDrawdown),
	)

	return types.WriteResults(cmd.String("output"), []types.BacktestResult{result})
}

func optimizeAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	config, err := loadStrategyConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	bars, signals, err := analyze(cmd.String("data"), log)
	if err != nil {
		return err
	}

	runner, err := backtest.NewRunner(bars, log)
	if err != nil {
		return err
	}

	optimizer, err := backtest.NewOptimizer(runner, signals, log,
		backtest.WithBaseConfig(config),
		backtest.WithRankField(backtest.RankField(cmd.String("rank-by"))),
		backtest.WithProgress(),
	)
	if err != nil {
		return err
	}

	results, err := optimizer.OptimizeCombinations(int(cmd.Int("min-patterns")), int(cmd.Int("max-patterns")))
	if err != nil {
		return err
	}

	top := int(cmd.Int("top"))
	if top > 0 && top < len(results) {
		results = results[:top]
	}

	for i, result := range results {
		log.Info("ranked combination",
			zap.Int("rank", i+1),
			zap.Any("patterns", result.Patterns),
			zap.Float64("total_return", result.Metrics.TotalReturn),
			zap.Float64("win_rate", result.Metrics.WinRate),
			zap.Int("total_trades", result.Metrics.TotalTrades),
		)
	}

	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal optimization results: %w", err)
	}

	return os.WriteFile(cmd.String("output"), data, 0644)
}

func schemaAction(ctx context.Context, cmd *cli.Command) error {
	config := backtest.DefaultConfig()

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	dataFlag := &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Usage:    "Path to the bar data CSV file",
		Required: true,
	}
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the strategy config YAML. Defaults trade the full pattern catalogue.",
	}

	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Recognize chart patterns and backtest pattern strategies",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a pattern strategy over a bar series",
				Flags: []cli.Flag{
					dataFlag,
					configFlag,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the YAML results file",
						Value:   "results.yaml",
					},
				},
				Action: runAction,
			},
			{
				Name:  "optimize",
				Usage: "Search pattern combinations for the best strategy",
				Flags: []cli.Flag{
					dataFlag,
					configFlag,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the YAML results file",
						Value:   "optimization.yaml",
					},
					&cli.IntFlag{
						Name:  "min-patterns",
						Usage: "Smallest combination size to evaluate",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "max-patterns",
						Usage: "Largest combination size to evaluate",
						Value: 3,
					},
					&cli.StringFlag{
						Name:  "rank-by",
						Usage: "Metric to rank combinations by (total_return, win_rate, sharpe_ratio, profit_factor, max_drawdown)",
						Value: string(backtest.RankByTotalReturn),
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Keep only the best N combinations in the output (0 keeps all)",
						Value: 10,
					},
				},
				Action: optimizeAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the strategy config JSON schema",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
