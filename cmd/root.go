package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-cli/internal/apperr"
	"github.com/vzahanych/weather-cli/internal/config"
	"github.com/vzahanych/weather-cli/internal/locale"
	"github.com/vzahanych/weather-cli/internal/lookup"
	"github.com/vzahanych/weather-cli/internal/present"
	"github.com/vzahanych/weather-cli/pkg/logger"
	"github.com/vzahanych/weather-cli/pkg/telemetry"
	"go.uber.org/zap"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	log        *logger.Logger
	tele       *telemetry.Telemetry
	configPath string
)

type lookupOptions struct {
	postalCode string
	country    string
	days       int
	json       bool
	lang       string
}

// ExitError ends the process with Code without printing anything more.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func rootCmd(lang string) *cobra.Command {
	cat := locale.Get(lang)
	opts := &lookupOptions{}

	cmd := &cobra.Command{
		Use:           "weather [ORT]",
		Short:         cat.T(locale.KeyDesc),
		Example:       "  " + cat.T(locale.KeyExample),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeServices()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args, opts)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", cat.T(locale.KeyHelpConfig))

	// The German and English flag names are aliases; help shows the
	// ones matching the selected language.
	countryFlag, countryAlias := "country", "land"
	daysFlag, daysAlias := "days", "tage"
	if cat.Lang == locale.German {
		countryFlag, countryAlias = countryAlias, countryFlag
		daysFlag, daysAlias = daysAlias, daysFlag
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.postalCode, "plz", "p", "", cat.T(locale.KeyHelpPlz))
	flags.StringVarP(&opts.country, countryFlag, "l", "", cat.T(locale.KeyHelpCountry))
	flags.StringVar(&opts.country, countryAlias, "", cat.T(locale.KeyHelpCountry))
	flags.IntVarP(&opts.days, daysFlag, "t", 1, cat.T(locale.KeyHelpDays))
	flags.IntVar(&opts.days, daysAlias, 1, cat.T(locale.KeyHelpDays))
	flags.BoolVarP(&opts.json, "json", "j", false, cat.T(locale.KeyHelpJSON))
	flags.StringVarP(&opts.lang, "lang", "L", locale.Default, cat.T(locale.KeyHelpLang))
	_ = flags.MarkHidden(countryAlias)
	_ = flags.MarkHidden(daysAlias)

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperr.Invalid("%v", err)
	})

	cmd.AddCommand(serverCmd())

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			if log != nil {
				log.Info("Received shutdown signal", zap.String("signal", sig.String()))
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	lang := preparseLang(args)

	cmd := rootCmd(lang)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	shutdownServices()

	if err == nil {
		return apperr.ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	for _, line := range locale.Get(lang).ErrorLines(err) {
		fmt.Fprintln(stderr, line)
	}
	return apperr.ExitCode(err)
}

// preparseLang picks the language before cobra parses flags so that
// help output is already localized.
func preparseLang(args []string) string {
	for i, arg := range args {
		var value string
		switch {
		case arg == "--lang" || arg == "-L":
			if i+1 < len(args) {
				value = args[i+1]
			}
		case strings.HasPrefix(arg, "--lang="):
			value = strings.TrimPrefix(arg, "--lang=")
		case strings.HasPrefix(arg, "-L="):
			value = strings.TrimPrefix(arg, "-L=")
		default:
			continue
		}
		if locale.Supported(value) {
			return value
		}
		break
	}
	return locale.Default
}

func runLookup(cmd *cobra.Command, args []string, opts *lookupOptions) error {
	name := strings.TrimSpace(strings.Join(args, " "))

	if name == "" && strings.TrimSpace(opts.postalCode) == "" {
		_ = cmd.Help()
		return &ExitError{Code: apperr.ExitInvalidInput}
	}

	if !locale.Supported(opts.lang) {
		return apperr.Invalid("lang must be one of: %s %s", locale.German, locale.English)
	}
	cat := locale.Get(opts.lang)

	if name != "" && opts.postalCode != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), cat.T(locale.KeyNotePlzUsed, name))
	}

	cfg := config.GetConfig()
	svc := lookup.NewService(&cfg.Weather, log.Logger, tele)

	report, err := svc.Lookup(cmd.Context(), lookup.Query{
		Name:       name,
		PostalCode: opts.postalCode,
		Country:    opts.country,
		Days:       opts.days,
		Lang:       opts.lang,
	})
	if err != nil {
		return err
	}

	if opts.json {
		return present.JSON(cmd.OutOrStdout(), report.Location, report.Forecast, cat)
	}
	return present.Text(cmd.OutOrStdout(), report.Location, report.Forecast, cat)
}

func initializeServices() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return apperr.Invalid("failed to load config: %v", err)
	}

	config.SetConfig(cfg)

	log, err = logger.New(cfg.Logging)
	if err != nil {
		return apperr.Invalid("failed to initialize logger: %v", err)
	}

	tele, err = telemetry.New(context.Background(), cfg.Telemetry, cfg.Version)
	if err != nil {
		log.Warn("Failed to initialize telemetry", zap.Error(err))
		tele = telemetry.NewNop()
	}

	return nil
}

func shutdownServices() {
	if tele != nil {
		if err := tele.Shutdown(context.Background()); err != nil && log != nil {
			log.Warn("Failed to shutdown telemetry", zap.Error(err))
		}
		tele = nil
	}
	if log != nil {
		_ = log.Sync()
		log = nil
	}
}
