package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rushikeshburle/autoq/internal/api"
	"github.com/rushikeshburle/autoq/internal/handler"
	appI18n "github.com/rushikeshburle/autoq/internal/i18n"
	"github.com/rushikeshburle/autoq/internal/session"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "autoq",
		Short: "Client for the AutoQ question paper service",
	}

	serve := serveCmd()
	root.AddCommand(
		serve,
		loginCmd(), logoutCmd(), registerCmd(), whoamiCmd(),
		documentsCmd(), questionsCmd(), papersCmd(), dashboardCmd(),
	)

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `autoq --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

// clientFlags registers the flags every command that talks to the remote
// service needs.
func clientFlags(f *pflag.FlagSet) {
	f.String("api-url", "http://localhost:8000", "AutoQ service base URL")
	f.String("session-db", "autoq.db", "Session database path")
	f.StringP("lang", "l", "en", "UI language (en, ru)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local web UI",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	clientFlags(f)
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("AUTOQ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("autoq")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/autoq")
	v.AddConfigPath("/etc/autoq")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// setup wires logging, localization, the session store, and the gateway
// for a command. The caller owns closing the returned store.
func setup(cmd *cobra.Command) (*viper.Viper, *session.Store, *api.Client, error) {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return nil, nil, nil, fmt.Errorf("init i18n: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(appI18n.WithLocalizer(ctx, appI18n.NewLocalizer(lang)))

	sess, err := session.Open(v.GetString("session-db"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open session store: %w", err)
	}

	client := api.New(api.DefaultConfig(v.GetString("api-url")), sess)
	client.OnUnauthorized(func() {
		loc := appI18n.NewLocalizer(lang)
		ctx := appI18n.WithLocalizer(context.Background(), loc)
		fmt.Fprintln(os.Stderr, appI18n.T(ctx, "SessionExpired"))
	})

	return v, sess, client, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	v, sess, client, err := setup(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	h, err := handler.New(sess, client)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(v.GetString("lang")))
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting web UI",
		"addr", addr,
		"api_url", v.GetString("api-url"),
		"lang", v.GetString("lang"),
	)
	return http.ListenAndServe(addr, r)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
