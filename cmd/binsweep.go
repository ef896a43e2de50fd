package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/joncooperworks/binsweep"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// settingsFromContext layers the config file, then any flag that was explicitly set, over the defaults.
func settingsFromContext(c *cli.Context) (*binsweep.Settings, error) {
	settings := binsweep.DefaultSettings()
	if path := c.String("config"); path != "" {
		var err error
		settings, err = binsweep.LoadSettingsFile(path)
		if err != nil {
			return nil, err
		}
	}

	if c.IsSet("alphabet") {
		settings.Alphabet = c.String("alphabet")
	}
	if c.IsSet("length") {
		settings.Length = c.Int("length")
	}
	if c.IsSet("endpoint") {
		settings.Endpoint = c.String("endpoint")
	}
	if c.IsSet("max-concurrent-requests") {
		settings.MaxConcurrentRequests = c.Int64("max-concurrent-requests")
	}
	if c.IsSet("delay") {
		settings.RequestDelay = c.Duration("delay")
	}
	if c.IsSet("timeout") {
		settings.Timeout = c.Duration("timeout")
	}
	if c.IsSet("failure-policy") {
		settings.FailurePolicy = c.String("failure-policy")
	}
	if c.IsSet("skip-cert-verify") {
		settings.SkipCertVerify = c.Bool("skip-cert-verify")
	}
	if c.IsSet("archive-dir") {
		settings.ArchiveDir = c.String("archive-dir")
	}

	return settings, settings.Validate()
}

func actionBinSweep(c *cli.Context) (err error) {
	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	settings, err := settingsFromContext(c)
	if err != nil {
		return err
	}

	runID := uuid.New()
	logger = logger.With(zap.String("run", runID.String()))

	doc := binsweep.NewResultsDocument(fmt.Sprintf("binsweep %s", runID))
	sink, err := binsweep.NewResultSink(doc)
	if err != nil {
		return err
	}

	plugins := []binsweep.Plugin{sink}
	if settings.ArchiveDir != "" {
		archive, err := binsweep.NewArchive(settings.ArchiveDir)
		if err != nil {
			return err
		}
		plugins = append(plugins, archive)
	}

	config, err := settings.Config(logger, plugins...)
	if err != nil {
		return err
	}

	sweeper := binsweep.NewSweeper(config)
	requestCount := sweeper.RequestCount()
	logger.Info("Sending requests",
		zap.Int("count", requestCount),
		zap.String("endpoint", config.Endpoint.Base),
		zap.String("alphabet", config.Enumerator.Alphabet.String()),
		zap.Int("length", config.Enumerator.Length),
		zap.Stringer("failure_policy", config.FailurePolicy),
	)

	if c.Bool("count-only") {
		fmt.Fprintln(c.App.Writer, requestCount)
		return nil
	}

	// Fail on a bad output before sweeping, not after.
	format := c.String("format")
	if format != binsweep.FormatText && format != binsweep.FormatHTML {
		return fmt.Errorf("unknown output format %q", format)
	}

	out := c.App.Writer
	if path := c.String("output"); path != "" {
		file, createErr := os.Create(path)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if closeErr := file.Close(); err == nil {
				err = closeErr
			}
		}()
		out = file
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := sweeper.Sweep(ctx)
	logger.Info("Finished.",
		zap.Int64("sent", summary.Sent),
		zap.Int64("found", summary.Succeeded),
		zap.Int64("failed", summary.Failed),
	)

	return doc.Render(out, binsweep.ResultsContainerID, format)
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "binsweep",
		Usage:  "look up every short bin id on a JSON bin storage API",
		Action: actionBinSweep,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:     "count-only",
				Required: false,
				Usage:    "don't send the requests, just count how many would be sent",
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML settings file, flags override its values",
				EnvVars: []string{"BINSWEEP_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "alphabet",
				Value:   binsweep.DefaultAlphabet,
				Usage:   "ordered characters bin ids are built from",
				EnvVars: []string{"BINSWEEP_ALPHABET"},
			},
			&cli.IntFlag{
				Name:    "length",
				Value:   3,
				Usage:   "length of the bin ids to sweep",
				EnvVars: []string{"BINSWEEP_LENGTH"},
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Value:   binsweep.DefaultEndpoint,
				Usage:   "base URL bin ids are appended to",
				EnvVars: []string{"BINSWEEP_ENDPOINT"},
			},
			&cli.Int64Flag{
				Name:    "max-concurrent-requests",
				Usage:   "maximum lookups in flight, 0 for no limit",
				EnvVars: []string{"BINSWEEP_MAX_CONCURRENT_REQUESTS"},
			},
			&cli.DurationFlag{
				Name:    "delay",
				Usage:   "the delay between each lookup",
				EnvVars: []string{"BINSWEEP_DELAY"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "per request timeout, 0 to wait forever",
				EnvVars: []string{"BINSWEEP_TIMEOUT"},
			},
			&cli.StringFlag{
				Name:    "failure-policy",
				Value:   binsweep.IgnoreFailures.String(),
				Usage:   "what to do with failed lookups: ignore or report",
				EnvVars: []string{"BINSWEEP_FAILURE_POLICY"},
			},
			&cli.StringFlag{
				Name:    "archive-dir",
				Usage:   "directory to save the contents of every found bin to",
				EnvVars: []string{"BINSWEEP_ARCHIVE_DIR"},
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "file to write results to instead of stdout",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: binsweep.FormatText,
				Usage: "results format: text or html",
			},
			&cli.BoolFlag{
				Name:     "skip-cert-verify",
				Required: false,
				Value:    false,
				Usage:    "skip verifying SSL certificate when making requests",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log every lookup, including failures",
				EnvVars: []string{"BINSWEEP_VERBOSE"},
			},
		},
	}
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
