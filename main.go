// Package main provides the entry point for the gankspeak CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/ganklab/gankspeak/pkg/slang"
	"github.com/ganklab/gankspeak/pkg/slang/backend"
	"github.com/ganklab/gankspeak/pkg/slang/lang"
	"github.com/ganklab/gankspeak/pkg/slang/storage"
	"github.com/ganklab/gankspeak/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	sourceLang string
	targetLang string
	mouse      bool
	width      uint

	rootCmd = &cobra.Command{
		Use:   "gankspeak",
		Short: "Translate anything into gaming slang, with pizzazz!",
		Long: paragraph(fmt.Sprintf(
			"\nTurn plain speech into %s in a dozen languages, complete with voice lines.",
			keyword("proper gamer slang"),
		)),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return validateOptions()
		},
		RunE: execute,
	}
)

// envConfig holds environment-only settings.
type envConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Voice  string `env:"GANKSPEAK_VOICE"`
}

func validateOptions() error {
	sourceLang = viper.GetString("source")
	targetLang = viper.GetString("target")
	mouse = viper.GetBool("mouse")
	width = viper.GetUint("width")

	if !lang.Valid(sourceLang) {
		return fmt.Errorf("unknown source language %q", sourceLang)
	}
	if targetLang == lang.AutoDetect || !lang.Valid(targetLang) {
		return fmt.Errorf("unknown target language %q", targetLang)
	}

	// Detect terminal width when unset.
	if width == 0 {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = uint(w) //nolint:gosec
		}
		if width == 0 {
			width = 80
		}
	}
	if width > 120 {
		width = 120
	}
	return nil
}

func execute(*cobra.Command, []string) error {
	ec, err := env.ParseAs[envConfig]()
	if err != nil {
		return fmt.Errorf("error parsing environment: %w", err)
	}
	if ec.APIKey == "" {
		ec.APIKey = viper.GetString("api_key")
	}
	if ec.APIKey == "" {
		return fmt.Errorf("no API key: set GEMINI_API_KEY or api_key in the config file")
	}

	ctx := context.Background()
	be, err := backend.New(ctx, backend.Config{
		APIKey:            ec.APIKey,
		TextModel:         viper.GetString("model.text"),
		TTSModel:          viper.GetString("model.tts"),
		ImageModel:        viper.GetString("model.image"),
		Voice:             firstNonEmpty(ec.Voice, viper.GetString("voice")),
		RequestsPerMinute: viper.GetInt("requests_per_minute"),
	})
	if err != nil {
		return err
	}

	store, err := storage.New(viper.GetString("data_dir"))
	if err != nil {
		return err
	}

	history := slang.NewHistory()
	if records, err := store.Load(); err == nil {
		history.Replace(records)
	} else {
		log.Warn("could not load history", "err", err)
	}
	store.Attach(history)

	disp := slang.NewDispatcher()
	orc := slang.NewOrchestrator(be, nil, history, disp.Callbacks())

	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}
	cfg.SourceLang = sourceLang
	cfg.TargetLang = targetLang
	cfg.EnableMouse = mouse
	cfg.Width = width

	if _, err := ui.NewProgram(cfg, orc, disp).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&sourceLang, "source", "s", lang.AutoDetect, "source language code (auto to detect)")
	rootCmd.Flags().StringVarP(&targetLang, "target", "t", "en", "target language code")
	rootCmd.Flags().UintVarP(&width, "width", "w", 0, "word-wrap at width (set to 0 to autodetect)")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel")
	_ = rootCmd.Flags().MarkHidden("mouse")

	// Config bindings
	_ = viper.BindPFlag("source", rootCmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("target", rootCmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("width", rootCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))

	viper.SetDefault("source", lang.AutoDetect)
	viper.SetDefault("target", "en")
	viper.SetDefault("voice", backend.DefaultVoice)
	viper.SetDefault("requests_per_minute", backend.DefaultRequestsPerMinute)
	viper.SetDefault("model.text", backend.DefaultTextModel)
	viper.SetDefault("model.tts", backend.DefaultTTSModel)
	viper.SetDefault("model.image", backend.DefaultImageModel)

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "gankspeak")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "gankspeak")}, dirs...)
	}

	if c := os.Getenv("GANKSPEAK_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("gankspeak")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("gankspeak")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "gankspeak.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}

// Functions to make help and usage a bit prettier.
func paragraph(s string) string {
	return lipgloss.NewStyle().Width(78).Padding(0, 0, 0, 2).Render(s)
}

func keyword(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#ECFD65")).Render(s)
}
