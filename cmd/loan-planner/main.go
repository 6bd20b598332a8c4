package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/loanplanner/loan-planner/internal/advice"
	"github.com/loanplanner/loan-planner/internal/config"
	"github.com/loanplanner/loan-planner/internal/server"
	"github.com/loanplanner/loan-planner/internal/store"
	"github.com/loanplanner/loan-planner/pkg/analytics"
	"github.com/loanplanner/loan-planner/pkg/constants"
	"github.com/loanplanner/loan-planner/pkg/loans"
	"github.com/loanplanner/loan-planner/pkg/output"
	"github.com/loanplanner/loan-planner/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	listen := flag.Bool("listen", false, "serve the HTTP API instead of printing schedules")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Validate configuration and display any warnings; validation is
	// advisory and never blocks generation.
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *listen {
		serve(logger, conf)
		return
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

	run(logger, conf, outputFormat)
}

func run(logger *zap.Logger, conf *config.Configuration, outputFormat string) {
	generator := loans.NewScheduleGenerator(logger)

	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "main"),
			)
			continue
		}

		loan := scenario.LoanConfig()
		standard := generator.GenerateSchedule(loan, false)
		prepaid := generator.GenerateSchedule(loan, true)
		summary := analytics.SummarizeSchedules(loan, standard, prepaid)
		insight := analytics.ComputeInsight(summary)

		switch outputFormat {
		case constants.OutputFormatPretty:
			output.PrettySummary(os.Stdout, scenario.Name, summary, insight)
			fmt.Println()
			output.PrettySchedule(os.Stdout, scenario.Name, prepaid)
			fmt.Println()
		case constants.OutputFormatCSV:
			if err := output.WriteScheduleCSV(os.Stdout, prepaid); err != nil {
				logger.Fatal("failed to write schedule",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
		}
	}
}

func serve(logger *zap.Logger, conf *config.Configuration) {
	var scenarios store.Store
	if conf.Store.RedisAddress != "" {
		scenarios = store.NewRedisStore(conf.Store.RedisAddress)
		logger.Info("using redis scenario store",
			zap.String("op", "main"),
			zap.String("address", conf.Store.RedisAddress),
		)
	} else {
		scenarios = store.NewMemoryStore()
	}

	advisor := advice.NewService(logger, conf.Advice)
	handler := server.NewHandler(logger, conf.Server.MaxRequestSize, advisor, scenarios)

	logger.Info("listening",
		zap.String("op", "main"),
		zap.String("address", conf.Server.Address),
	)
	if err := http.ListenAndServe(conf.Server.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
