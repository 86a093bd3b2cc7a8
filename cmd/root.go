package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mp4tomp3/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	verbose    bool
	cfg        *config.Config
	cfgLoadErr error
)

var rootCmd = &cobra.Command{
	Use:   "mp4tomp3",
	Short: "Convert video files to MP3",
	Long: `mp4tomp3 converts video files to MP3 audio using ffmpeg.

Without --file it starts an interactive mode that lists the videos in the
movie directory and converts the ones you pick.

Supported inputs: .mp4 .avi .mov .mkv .wmv .flv .webm .m4v .3gp .ts .mts .m2ts

Example:
  mp4tomp3
  mp4tomp3 -f movie/video.mp4
  mp4tomp3 -f movie/video.mp4 -b 320k -o audio
  mp4tomp3 --list`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

// exitError carries an exit code for failures that were already reported to the user
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// exitWith returns an error that makes Execute exit with code without printing anything
func exitWith(code int) error {
	return &exitError{code: code}
}

// ExitCode maps an error returned by a command to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return 1
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context,
// which stops a running ffmpeg and ends the command with exit code 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var exitErr *exitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(ExitCode(err))
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log diagnostic details to stderr")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}

	// .env is optional and never overrides variables already set
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	cfg, cfgLoadErr = config.LoadOrDefault(cfgFile)
	if cfgLoadErr != nil {
		cfg = nil
		return
	}
	cfg.ApplyEnv(os.LookupEnv)
}

// GetConfig returns the loaded configuration
func GetConfig() (*config.Config, error) {
	if cfgLoadErr != nil {
		return nil, cfgLoadErr
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}
