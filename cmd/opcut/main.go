// opcut optimizes rectangular cut lists against stock sheets and writes
// the winning layout as JSON, PDF, DXF, or QR part labels.
//
// Build:
//   go build -o opcut ./cmd/opcut
//
// Usage:
//   opcut --request job.json --out solution.json --pdf layout.pdf
//
// Flags can also come from a config file (--config) or OPCUT_* environment
// variables, e.g. OPCUT_KERF=2.2.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ouarzazisaid0/wood-opcut/internal/engine"
	"github.com/ouarzazisaid0/wood-opcut/internal/export"
	"github.com/ouarzazisaid0/wood-opcut/internal/importer"
	"github.com/ouarzazisaid0/wood-opcut/internal/model"
	"github.com/ouarzazisaid0/wood-opcut/internal/project"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "opcut:", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("opcut", pflag.ContinueOnError)

	flags.String("request", "", "request JSON file (stocks, pieces, params)")
	flags.String("pieces", "", "optional CSV/XLSX cut list merged into the request pieces")
	flags.String("out", "-", "solution JSON output path, - for stdout")
	flags.String("pdf", "", "optional PDF layout output path")
	flags.String("dxf", "", "optional DXF layout output path")
	flags.String("labels", "", "optional QR part label PDF output path")
	flags.String("profile", "", "named cut profile overriding the request params")
	flags.Float64("kerf", -1, "kerf override in mm")
	flags.Float64("min-offcut", -1, "minimum useful offcut override in mm")
	flags.Float64("edge-trim", -1, "edge trim override in mm")
	flags.String("rotation", "", "rotation policy override: per-piece, all, none")
	flags.Duration("timeout", 0, "per-strategy timeout, 0 for the default")
	flags.Bool("verify", false, "verify layout invariants after optimization")
	flags.Bool("debug", false, "verbose console logging")
	flags.String("config", "", "config file path")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	v.SetEnvPrefix("OPCUT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	log, err := newLogger(v.GetBool("debug"))
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	requestPath := v.GetString("request")
	if requestPath == "" {
		return errors.New("--request is required")
	}

	appCfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Warn("app config unreadable, using defaults", zap.Error(err))
		appCfg = model.DefaultAppConfig()
	}

	stocks, pieces, params, err := project.LoadRequestFile(requestPath)
	if err != nil {
		return err
	}

	if listPath := v.GetString("pieces"); listPath != "" {
		imported, err := importPieces(listPath, log)
		if err != nil {
			return err
		}
		pieces = append(pieces, imported...)
	}

	params, err = applyOverrides(params, appCfg, v)
	if err != nil {
		return err
	}

	req, err := model.Validate(stocks, pieces, params)
	if err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	opts := []engine.Option{engine.WithLogger(log)}
	timeout := v.GetDuration("timeout")
	if timeout == 0 && appCfg.StrategyTimeoutSeconds > 0 {
		timeout = time.Duration(appCfg.StrategyTimeoutSeconds) * time.Second
	}
	if timeout > 0 {
		opts = append(opts, engine.WithStrategyTimeout(timeout))
	}
	coord := engine.NewCoordinator(opts...)

	start := time.Now()
	sol, err := coord.Optimize(ctx, req)
	if err != nil {
		return err
	}

	log.Info("optimization finished",
		zap.String("strategy", sol.Strategy),
		zap.Int("sheets", sol.SheetsUsed()),
		zap.Int("placed", sol.PlacedCount()),
		zap.Int("unplaced", sol.UnplacedCount()),
		zap.Float64("efficiency_pct", sol.TotalEfficiency()),
		zap.Duration("elapsed", time.Since(start)))

	if v.GetBool("verify") {
		if violations := engine.VerifySolution(sol); len(violations) > 0 {
			return fmt.Errorf("layout verification failed: %s", strings.Join(violations, "; "))
		}
		log.Debug("layout verification passed")
	}

	if err := project.SaveSolution(v.GetString("out"), *sol); err != nil {
		return fmt.Errorf("write solution: %w", err)
	}

	project.AddRecentRequest(&appCfg, requestPath)
	if err := project.SaveAppConfig(project.DefaultConfigPath(), appCfg); err != nil {
		log.Warn("could not update app config", zap.Error(err))
	}

	if path := v.GetString("pdf"); path != "" {
		if err := export.ExportPDF(path, *sol, req.Params); err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
		log.Info("wrote pdf", zap.String("path", path))
	}
	if path := v.GetString("dxf"); path != "" {
		if err := export.ExportDXF(path, *sol); err != nil {
			return fmt.Errorf("export dxf: %w", err)
		}
		log.Info("wrote dxf", zap.String("path", path))
	}
	if path := v.GetString("labels"); path != "" {
		if err := export.ExportLabels(path, *sol); err != nil {
			return fmt.Errorf("export labels: %w", err)
		}
		log.Info("wrote labels", zap.String("path", path))
	}

	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// importPieces loads a CSV or XLSX cut list, logging warnings and failing
// on row errors.
func importPieces(path string, log *zap.Logger) ([]model.Piece, error) {
	var result importer.ImportResult
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") || strings.HasSuffix(strings.ToLower(path), ".xls") {
		result = importer.ImportExcel(path)
	} else {
		result = importer.ImportCSV(path)
	}
	for _, w := range result.Warnings {
		log.Warn("cut list import", zap.String("warning", w))
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("cut list import: %s", strings.Join(result.Errors, "; "))
	}
	return result.Pieces, nil
}

// applyOverrides layers profile and flag overrides onto the request params.
// The profile comes from the --profile flag, falling back to the app config's
// default profile.
func applyOverrides(params model.CutParams, appCfg model.AppConfig, v *viper.Viper) (model.CutParams, error) {
	name := v.GetString("profile")
	if name == "" {
		name = appCfg.DefaultProfile
	}
	if name != "" {
		custom, err := project.LoadCustomProfiles(project.DefaultProfilesPath())
		if err != nil {
			return params, fmt.Errorf("load profiles: %w", err)
		}
		profile, ok := project.FindProfile(name, custom)
		if !ok {
			return params, fmt.Errorf("unknown profile %q", name)
		}
		params = profile.Params
	}

	if kerf := v.GetFloat64("kerf"); kerf >= 0 {
		params.Kerf = kerf
	}
	if mo := v.GetFloat64("min-offcut"); mo >= 0 {
		params.MinOffcut = mo
	}
	if trim := v.GetFloat64("edge-trim"); trim >= 0 {
		params.EdgeTrim = trim
	}
	if rot := v.GetString("rotation"); rot != "" {
		params.Rotation = model.ParseRotationPolicy(rot)
	}
	return params, nil
}
