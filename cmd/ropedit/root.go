package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/ropedit/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Query the terminal background before the program owns stdin so the
	// OSC 11 reply cannot land in the editor as input.
	_ = lipgloss.HasDarkBackground()
}

const localConfig = ".ropedit.yaml"

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:     "ropedit [file]",
	Short:   "A modal terminal text editor",
	Long:    `A modal terminal text editor built on a rope buffer, with syntax highlighting and a vim-like key layout.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runEditor,
}

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.ropedit.yaml or ~/.config/ropedit/config.yaml)")
	rootCmd.Flags().StringP("language", "l", "",
		"language used when the file name does not select one")
	rootCmd.Flags().StringP("theme", "t", "",
		`"ayu" or any chroma style name`)
	rootCmd.Flags().Int("tab-width", 0, "tab width in insert mode")
	rootCmd.Flags().Bool("debug", false, "write debug logs to the log file")
	rootCmd.Flags().String("log-file", "", "debug log file")

	// Bind flags to viper
	_ = viper.BindPFlag("language", rootCmd.Flags().Lookup("language"))
	_ = viper.BindPFlag("theme", rootCmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("tab_width", rootCmd.Flags().Lookup("tab-width"))
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
	_ = viper.BindPFlag("log_file", rootCmd.Flags().Lookup("log-file"))

	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	viper.SetEnvPrefix("ROPEDIT")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .ropedit.yaml (current directory)
		// 2. ~/.config/ropedit/config.yaml (user config)
		if _, err := os.Stat(localConfig); err == nil {
			viper.SetConfigFile(localConfig)
		} else {
			viper.AddConfigPath(filepath.Dir(config.DefaultPath()))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			cfgErr = fmt.Errorf("reading config: %w", err)
			return
		}
	}

	cfg, cfgErr = config.Load(viper.GetViper())
}

// setupLogging routes the standard logger to the log file when debug is on
// and discards it otherwise, since stderr belongs to the terminal UI.
func setupLogging(cfg config.Config) (func(), error) {
	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := tea.LogToFile(cfg.LogFile, "ropedit")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	model, err := newApp(cfg, path)
	if err != nil {
		return err
	}

	log.Printf("opening %q (language %s, theme %s)", path, model.language, cfg.Theme)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
