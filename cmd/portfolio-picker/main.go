package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/portfolio-picker/internal/config"
	"github.com/iwvelando/portfolio-picker/internal/dataset"
	"github.com/iwvelando/portfolio-picker/internal/logging"
	"github.com/iwvelando/portfolio-picker/internal/optimizer"
	"github.com/iwvelando/portfolio-picker/pkg/constants"
	"github.com/iwvelando/portfolio-picker/pkg/output"
	"github.com/iwvelando/portfolio-picker/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	envFile := flag.String("env-file", "", "path to a .env file loaded before the configuration")
	datasetPath := flag.String("dataset", "", "path to the CSV share list override")
	budget := flag.String("budget", "", "investment budget override")
	algorithm := flag.String("algorithm", "", "solver override: dynamic, exhaustive")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	// A missing default config file means defaults and environment only
	path := *configLocation
	if !flagPassed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	if *datasetPath != "" {
		conf.Dataset.Path = *datasetPath
	}
	if *budget != "" {
		conf.Optimizer.Budget = *budget
	}
	if *algorithm != "" {
		conf.Optimizer.Algorithm = config.CanonicalAlgorithm(*algorithm)
	}
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	if conf.Dataset.Path == "" {
		logger.Fatal("a dataset is required, set dataset.path or pass -dataset",
			zap.String("op", "main"),
		)
	}

	runner, err := optimizer.NewRunner(logger, conf.Optimizer)
	if err != nil {
		logger.Fatal("failed to initialize optimizer",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	ds, err := dataset.Load(logger, conf.Dataset.Path, conf.Dataset.Columns, runner.Options())
	if err != nil {
		logger.Fatal("failed to load dataset",
			zap.String("op", "main"),
			zap.String("path", conf.Dataset.Path),
			zap.Error(err),
		)
	}

	result, err := runner.Run(ds.Items)
	if err != nil {
		logger.Fatal("failed to optimize portfolio",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	summary := result.Summary(ds.Source, len(ds.Rejected))
	if err := output.Write(os.Stdout, outputFormat, summary, conf.Output.CurrencySymbol); err != nil {
		logger.Fatal("failed to write report",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func flagPassed(name string) bool {
	passed := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}
