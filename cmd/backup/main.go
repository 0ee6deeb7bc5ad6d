package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"corpoleve/internal/config"
	"corpoleve/internal/database"
	"corpoleve/internal/logger"
	"corpoleve/internal/repository"
	"corpoleve/internal/service"
)

// appContext is handed to every command's Run method
type appContext struct {
	ctx context.Context
	db  *database.DB
	log *zap.Logger
}

type exportCmd struct {
	Output string `help:"Output file path (default: backup_YYYYMMDD_HHMMSS.json)." type:"path"`
}

func (c *exportCmd) Run(app *appContext) error {
	outputPath := c.Output
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	app.log.Info("exporting database", zap.String("path", outputPath))
	data, err := service.NewBackupService(app.db, app.log).Export(app.ctx, f)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	app.log.Info("export complete",
		zap.Int("users", len(data.Users)),
		zap.Int("challenge_days", len(data.ChallengeDays)),
		zap.Int("favorites", len(data.Favorites)),
		zap.Int("menus", len(data.Menus)))
	return nil
}

type importCmd struct {
	Input string `help:"Backup file to import." type:"existingfile" required:""`
	Clear bool   `help:"Delete existing user data before importing (destructive)."`
	Yes   bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *importCmd) Run(app *appContext) error {
	if c.Clear && !c.Yes {
		fmt.Print("WARNING: This will delete all existing user data. Type 'yes' to confirm: ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			app.log.Info("import cancelled")
			return nil
		}
	}

	f, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	app.log.Info("importing database", zap.String("path", c.Input), zap.Bool("clear", c.Clear))
	if err := service.NewBackupService(app.db, app.log).Import(app.ctx, f, c.Clear); err != nil {
		return err
	}
	app.log.Info("import complete")
	return nil
}

type demoLoginCmd struct {
	State string `arg:"" enum:"on,off,status" help:"Turn demo login on or off, or show the current state."`
}

func (c *demoLoginCmd) Run(app *appContext) error {
	settings := repository.NewSettingsRepository(app.db)
	switch c.State {
	case "on", "off":
		if err := settings.SetDemoLoginEnabled(app.ctx, c.State == "on"); err != nil {
			return err
		}
	}
	fmt.Printf("demo login enabled: %t\n", settings.IsDemoLoginEnabled(app.ctx))
	return nil
}

var cli struct {
	Export    exportCmd    `cmd:"" help:"Export user data to a JSON file."`
	Import    importCmd    `cmd:"" help:"Import user data from a JSON file."`
	DemoLogin demoLoginCmd `cmd:"" name:"demo-login" help:"Toggle the demo account at runtime."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("backup"),
		kong.Description("Corpo Leve database maintenance tool. Connection settings come from DATABASE_TYPE, DB_PATH and DATABASE_URL."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	kctx.FatalIfErrorf(err)

	log, err := logger.New(cfg)
	kctx.FatalIfErrorf(err)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.InitializeWithConfig(cfg)
	kctx.FatalIfErrorf(err)
	defer db.Close()

	// Keep the schema current before touching any table
	if err := db.RunMigrations(ctx, cfg.MigrationsPath, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := kctx.Run(&appContext{ctx: ctx, db: db, log: log}); err != nil {
		log.Error("command failed", zap.String("command", kctx.Command()), zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}
