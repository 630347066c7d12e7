package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/term"

	"github.com/marklaroya/portfolio/internal/analytics"
	"github.com/marklaroya/portfolio/internal/auth"
	"github.com/marklaroya/portfolio/internal/config"
	"github.com/marklaroya/portfolio/internal/content"
	"github.com/marklaroya/portfolio/internal/logging"
	"github.com/marklaroya/portfolio/internal/metrics"
	"github.com/marklaroya/portfolio/internal/schedule"
	"github.com/marklaroya/portfolio/internal/server"
	"github.com/marklaroya/portfolio/internal/view"
	"github.com/marklaroya/portfolio/internal/web"
)

var version = "dev"

const (
	shutdownTimeout = 10 * time.Second
	retentionEvery  = 24 * time.Hour
)

type CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml" env:"PORTFOLIO_CONFIG"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Serve        ServeCmd        `cmd:"" default:"1" help:"Serve the portfolio (default)"`
	Init         InitCmd         `cmd:"" help:"Write a default configuration file"`
	HashPassword HashPasswordCmd `cmd:"" name:"hash-password" help:"Print a bcrypt hash for admin.password_hash"`
	Version      VersionCmd      `cmd:"" help:"Print the version and exit"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("portfolio"),
		kong.Description("Mark Lester Laroya's portfolio site"),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&cli); err != nil {
		slog.Error("command failed", "command", ctx.Command(), "err", err)
		os.Exit(1)
	}
}

type ServeCmd struct{}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if cli.Verbose {
		cfg.Logging.Level = "debug"
	}
	log := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	slog.SetDefault(log)
	gin.SetMode(ginMode(cli.Verbose))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(logging.WithLogger(ctx, log), cfg)
}

// ginMode keeps gin's own debug output, which bypasses slog, for --verbose.
func ginMode(verbose bool) string {
	if verbose {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logging.From(ctx)

	renderer, err := web.NewRenderer(cfg.Site.TemplatesDir, log)
	if err != nil {
		return err
	}
	if err := renderer.Watch(ctx); err != nil {
		return err
	}

	views := view.NewStore(cfg.Views.TTL, cfg.Views.Max, content.Sections())

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var gatherer prom.Gatherer
	if cfg.Metrics.Enabled {
		reg := prom.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		rec = metrics.NewPrometheusRecorder(reg)
		gatherer = reg
	}

	sched, err := schedule.New(log)
	if err != nil {
		return err
	}
	err = sched.Every("evict-views", cfg.Views.SweepInterval, false, func(context.Context) error {
		if n := views.Evict(time.Now()); n > 0 {
			rec.IncEvictedViews(n)
			log.Debug("evicted idle views", "count", n)
		}
		rec.SetActiveViews(views.Len())
		return nil
	})
	if err != nil {
		return err
	}

	deps := server.Deps{
		Config:   cfg,
		Views:    views,
		Renderer: renderer,
		Metrics:  rec,
		Gatherer: gatherer,
		Log:      log,
	}

	var visits *analytics.Store
	if cfg.Analytics.Enabled {
		visits, err = analytics.Open(ctx, cfg.Analytics.DBPath)
		if err != nil {
			return err
		}
		defer visits.Close()

		deps.Tracker, err = analytics.NewTracker(visits, cfg.Analytics.Exclude, log)
		if err != nil {
			return err
		}
		deps.Ready = visits.Ping

		retention := cfg.Analytics.Retention
		err = sched.Every("visit-retention", retentionEvery, true, func(ctx context.Context) error {
			n, err := visits.Cleanup(ctx, retention)
			if err != nil {
				return err
			}
			if n > 0 {
				log.Info("privacy cleanup removed old visits", "count", n, "retention", retention)
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Info("visitor tracking enabled with hashed IP addresses", "db", cfg.Analytics.DBPath)
	}

	engine := server.New(deps)
	if cfg.AdminEnabled() {
		setupAdminRoutes(engine, adminDeps{
			auth:      auth.New(cfg.Admin.Username, cfg.Admin.PasswordHash, cfg.Admin.JWTSecret),
			visits:    visits,
			tracker:   deps.Tracker,
			limiter:   server.NewRateLimiter(5, time.Minute),
			log:       log,
			retention: cfg.Analytics.Retention,
		})
		log.Info("admin dashboard available", "path", "/admin/login")
	} else {
		log.Info("admin dashboard disabled, set admin.password_hash to enable it")
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	sched.Start()
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.HTTP.Address, "version", version, "gin_mode", gin.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			_ = sched.Stop()
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "err", err)
	}
	if err := sched.Stop(); err != nil {
		log.Error("scheduler shutdown", "err", err)
	}
	if deps.Tracker != nil {
		deps.Tracker.Wait()
	}
	return nil
}

type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (c *InitCmd) Run(cli *CLI) error {
	if _, err := os.Stat(cli.Config); err == nil && !c.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", cli.Config)
	}
	if err := config.Default().Save(cli.Config); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", cli.Config)
	return nil
}

type HashPasswordCmd struct{}

func (c *HashPasswordCmd) Run() error {
	pw, err := readPassword(os.Stdin, os.Stderr)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(pw)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Println(hash)
	return nil
}

// readPassword prompts twice on a terminal and reads one line otherwise,
// so the command also works in scripts.
func readPassword(in *os.File, prompt io.Writer) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return readPasswordLine(in)
	}

	fmt.Fprint(prompt, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(prompt, "Repeat: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("empty password")
	}
	return string(first), nil
}

func readPasswordLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(version)
	return nil
}
