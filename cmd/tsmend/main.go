package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/EhssanAtassi/tsmend/internal/api"
	"github.com/EhssanAtassi/tsmend/internal/engine"
	"github.com/EhssanAtassi/tsmend/internal/ir"
	"github.com/EhssanAtassi/tsmend/internal/reporting"
	"github.com/EhssanAtassi/tsmend/internal/rules"
	"github.com/EhssanAtassi/tsmend/internal/rulesdsl"
	"github.com/EhssanAtassi/tsmend/internal/security"
	"github.com/EhssanAtassi/tsmend/internal/shared"
	"github.com/EhssanAtassi/tsmend/internal/storage"
	"github.com/EhssanAtassi/tsmend/internal/walker"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "fix":
		fixCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "useradd":
		userAddCmd(os.Args[2:])
	case "version":
		fmt.Println("tsmend – TypeScript source repair, IR:", ir.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `tsmend – TypeScript Source Repair

Usage:
  tsmend fix     [--path src] [--out ./reports] [--db ./tsmend.db] [--dry-run] [--rules-pack ./rules.yaml] [--disable R1,R2] [--config ./tsmend.yaml]
  tsmend report  --run <run-id>  [--out ./reports] [--db ./tsmend.db] [--config ./tsmend.yaml]
  tsmend diff    --base <run-id> --head <run-id> [--out ./reports] [--db ./tsmend.db]
  tsmend serve   [--addr :8080] [--db ./tsmend.db] [--config ./tsmend.yaml]
  tsmend useradd --username <u> [--role viewer|admin] [--db ./tsmend.db]   (password via TSMEND_PASSWORD)
  tsmend version
`)
}

func fixCmd(args []string) {
	fs := flag.NewFlagSet("fix", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	inPath := fs.String("path", "", "Root of the TypeScript source tree")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	dryRun := fs.Bool("dry-run", false, "Print diffs instead of writing files")
	rulesPack := fs.String("rules-pack", "", "Extra YAML rules pack (optional)")
	disable := fs.String("disable", "", "Comma-separated rule IDs to disable")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	if *inPath == "" {
		*inPath = cfg.Fix.Root
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *rulesPack == "" {
		*rulesPack = cfg.Fix.RulesPack
	}
	if !*dryRun {
		*dryRun = cfg.Fix.DryRun
	}

	disabled := map[string]bool{}
	for _, id := range cfg.Fix.DisabledRules {
		disabled[strings.ToUpper(strings.TrimSpace(id))] = true
	}
	for _, id := range strings.Split(*disable, ",") {
		if id = strings.ToUpper(strings.TrimSpace(id)); id != "" {
			disabled[id] = true
		}
	}
	rules.SetSettings(rules.Settings{Disabled: disabled})

	if *rulesPack != "" {
		n, err := rulesdsl.LoadAndRegister(*rulesPack)
		if err != nil {
			slog.Error("rules pack error", "path", *rulesPack, "err", err)
			os.Exit(1)
		}
		slog.Info("rules pack loaded", "path", *rulesPack, "rules", n)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "fix: cannot create out dir:", err)
		os.Exit(1)
	}

	var db *storage.DB
	var sups []storage.Suppression
	if !*dryRun {
		var err error
		db, err = storage.OpenSQLite(*dbPath)
		if err != nil {
			slog.Error("db open error", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.CreateSchema(); err != nil {
			slog.Error("db schema error", "err", err)
			os.Exit(1)
		}
		if sups, err = db.ListSuppressions(true); err != nil {
			slog.Error("db suppressions error", "err", err)
			os.Exit(1)
		}
	}

	eng := engine.Engine{
		Walker:       walker.New(*inPath, cfg.Fix.Extensions, cfg.Fix.ExcludeDirs),
		Suppressions: sups,
		DryRun:       *dryRun,
		DiffOut:      os.Stdout,
	}
	run, err := eng.Run(context.Background())
	if err != nil {
		slog.Error("fix aborted", "err", err)
		os.Exit(1)
	}
	run.ID = fmt.Sprintf("run-%d", time.Now().Unix())
	run.StartedAt = time.Now().UTC()
	run.Context.RulesPack = *rulesPack
	for id := range disabled {
		run.Context.DisabledRules = append(run.Context.DisabledRules, id)
	}

	if !*dryRun {
		if err := db.SaveRun(&run); err != nil {
			slog.Error("db save run error", "err", err)
			os.Exit(1)
		}
		jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
		htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
		slog.Info("fix complete",
			"run", run.ID,
			"json", jsonPath,
			"html", htmlPath,
			"db", filepath.Clean(*dbPath),
		)
	}

	fmt.Printf("Fixed %d of %d files\n", run.Summary.Fixed, run.Summary.Scanned)
	fmt.Println(`Run "npm run build" to verify the fixes`)
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *runID == "" {
		fmt.Fprintln(os.Stderr, "report: --run is required")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	run, err := db.LoadRun(*runID)
	if err != nil {
		slog.Error("load run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		os.Exit(1)
	}
	path, err := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	if err != nil {
		slog.Error("write diff error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Diff OK\n  %s\n", path)
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", ":8080", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Logger:          logger,
		SessionDuration: 12 * time.Hour,
	}
	slog.Info("serving", "addr", *addr, "db", filepath.Clean(*dbPath))
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func userAddCmd(args []string) {
	fs := flag.NewFlagSet("useradd", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	username := fs.String("username", "", "Username")
	role := fs.String("role", "viewer", "Role (viewer|admin)")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *username == "" {
		fmt.Fprintln(os.Stderr, "useradd: --username is required")
		os.Exit(2)
	}
	password := os.Getenv("TSMEND_PASSWORD")
	if password == "" {
		fmt.Fprintln(os.Stderr, "useradd: set TSMEND_PASSWORD")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		slog.Error("hash error", "err", err)
		os.Exit(1)
	}
	id, err := db.CreateUser(*username, hash, *role)
	if err != nil {
		slog.Error("create user error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("User OK\n  ID: %d\n  Username: %s\n  Role: %s\n", id, *username, *role)
}
