// Command stayauth-probe exercises a LumenStay backend end to end: login,
// optional second-factor confirmation, session restore from the credential
// file, and logout.
//
// Configuration is layered: a YAML file (-config), then a .env file
// (-env, loaded via godotenv), then flags. Useful for smoke-testing a
// staging backend without booting the mobile app.
//
// Run:
//
//	go run ./cmd/stayauth-probe -config probe.yaml -email alice@example.com -password secret
//
// With -metrics-addr set, the probe serves Prometheus metrics while it runs
// so collection can be verified alongside the auth flows.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	stayauth "github.com/lumenstay/stayauth"
	"github.com/lumenstay/stayauth/metrics/export/prometheus"
)

type probeConfig struct {
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`

	Endpoints struct {
		Login  string `yaml:"login"`
		Signup string `yaml:"signup"`
		Me     string `yaml:"me"`
	} `yaml:"endpoints"`

	CredentialFile string `yaml:"credential_file"`
}

func main() {
	var (
		configPath  = flag.String("config", "", "path to a YAML probe config")
		envPath     = flag.String("env", "", "path to a .env file; defaults to ./.env if present")
		baseURL     = flag.String("base-url", "", "backend origin; overrides config and STAYAUTH_BASE_URL")
		email       = flag.String("email", "", "login email; overrides STAYAUTH_EMAIL")
		password    = flag.String("password", "", "login password; overrides STAYAUTH_PASSWORD")
		restoreOnly = flag.Bool("restore", false, "skip login and restore from the stored credential")
		keepSession = flag.Bool("keep-session", false, "leave the credential file in place instead of logging out")
		metricsAddr = flag.String("metrics-addr", "", "serve Prometheus metrics on this address while probing")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := loadEnv(*envPath); err != nil {
		logger.Error("failed to load env file", "error", err)
		os.Exit(1)
	}

	cfg := stayauth.DefaultConfig()
	fileCfg, err := loadProbeConfig(*configPath)
	if err != nil {
		logger.Error("failed to load probe config", "error", err)
		os.Exit(1)
	}
	applyProbeConfig(&cfg, fileCfg)

	if v := os.Getenv("STAYAUTH_BASE_URL"); v != "" {
		cfg.HTTP.BaseURL = v
	}
	if *baseURL != "" {
		cfg.HTTP.BaseURL = *baseURL
	}
	if *email == "" {
		*email = os.Getenv("STAYAUTH_EMAIL")
	}
	if *password == "" {
		*password = os.Getenv("STAYAUTH_PASSWORD")
	}

	credPath := fileCfg.CredentialFile
	if credPath == "" {
		credPath = filepath.Join(os.TempDir(), "stayauth-probe", "token")
	}

	engine, err := stayauth.New().
		WithConfig(cfg).
		WithCredentialStore(stayauth.NewFileCredentialStore(credPath)).
		WithLogger(logger).
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		logger.Error("engine build failed", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	if *metricsAddr != "" {
		exp := prometheus.NewPrometheusExporter(engine)
		mux := http.NewServeMux()
		mux.Handle("/metrics", exp.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		fmt.Printf("serving metrics on %s/metrics\n", *metricsAddr)
	}

	unsubscribe := engine.Subscribe(func(snap stayauth.Snapshot) {
		fmt.Printf("session -> %s\n", snap.Status)
	})
	defer unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if *restoreOnly {
		runRestore(ctx, engine)
	} else {
		if *email == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "email and password are required unless -restore is set")
			os.Exit(2)
		}
		runLogin(ctx, engine, *email, *password)
	}

	printSnapshot(engine.State())

	if !*keepSession {
		engine.Logout()
	}
}

func runLogin(ctx context.Context, engine *stayauth.Engine, email, password string) {
	result, err := engine.Login(ctx, stayauth.LoginRequest{Email: email, Password: password})
	if err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}

	if result.TwoFactorRequired {
		fmt.Printf("two-factor challenge for user %s\n", result.TwoFactorUserID)
		code := promptLine("enter code (empty to cancel): ")
		if code == "" {
			engine.CancelTwoFactor()
			fmt.Println("challenge cancelled")
			os.Exit(0)
		}
		if _, err := engine.SubmitTwoFactorCode(ctx, code); err != nil {
			fmt.Fprintf(os.Stderr, "two-factor confirmation failed: %v\n", err)
			os.Exit(1)
		}
	}
}

func runRestore(ctx context.Context, engine *stayauth.Engine) {
	if _, err := engine.RestoreSession(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "restore failed: %v\n", err)
		os.Exit(1)
	}
}

func printSnapshot(snap stayauth.Snapshot) {
	fmt.Printf("status=%s authenticated=%t\n", snap.Status, snap.IsAuthenticated)
	if snap.User != nil {
		out, _ := json.MarshalIndent(snap.User, "", "  ")
		fmt.Println(string(out))
	}
}

func promptLine(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func loadEnv(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}

func loadProbeConfig(path string) (probeConfig, error) {
	var cfg probeConfig
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func applyProbeConfig(cfg *stayauth.Config, fileCfg probeConfig) {
	if fileCfg.BaseURL != "" {
		cfg.HTTP.BaseURL = fileCfg.BaseURL
	}
	if fileCfg.Timeout != "" {
		if d, err := time.ParseDuration(fileCfg.Timeout); err == nil {
			cfg.HTTP.Timeout = d
		}
	}
	if fileCfg.UserAgent != "" {
		cfg.HTTP.UserAgent = fileCfg.UserAgent
	}
	if fileCfg.Endpoints.Login != "" {
		cfg.Endpoints.Login = fileCfg.Endpoints.Login
	}
	if fileCfg.Endpoints.Signup != "" {
		cfg.Endpoints.Signup = fileCfg.Endpoints.Signup
	}
	if fileCfg.Endpoints.Me != "" {
		cfg.Endpoints.Me = fileCfg.Endpoints.Me
	}
}
