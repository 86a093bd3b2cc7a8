package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"mp4tomp3/infrastructure/config"

	"github.com/spf13/cobra"
)

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// DefaultOutput is the default output writer for config commands
var DefaultOutput OutputWriter = os.Stdout

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration settings",
	Long: `Show or change the settings stored in the configuration file.

Examples:
  mp4tomp3 config list
  mp4tomp3 config set audio.bitrate 320k
  mp4tomp3 config set paths.output_directory /srv/audio`,
}

func init() {
	rootCmd.AddCommand(configCmd)

	// Add subcommands
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configSetCmd)
}

// --- LIST command ---

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration settings",
	Long: `List every setting with its effective value.

Values come from the config file, with MP4TOMP3_* environment variables applied.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func runConfigList(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return fmt.Errorf("configuration could not be loaded: %w", err)
	}

	return RunConfigListWithDependencies(cfg, cfgFile, DefaultOutput)
}

// RunConfigListWithDependencies runs the list command with injected dependencies
func RunConfigListWithDependencies(cfg *config.Config, configPath string, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "KEY\tVALUE")
	for _, s := range mgr.List() {
		fmt.Fprintf(w, "%s\t%s\n", s.Key, s.Value)
	}

	return w.Flush()
}

// --- SET command ---

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration setting",
	Long: `Change a setting and save the configuration file.

Keys:
  paths.movie_directory    directory listed in interactive mode
  paths.output_directory   directory MP3 files are written to
  audio.bitrate            128k, 192k, 256k or 320k
  tools.ffmpeg             ffmpeg executable
  tools.ffprobe            ffprobe executable

Examples:
  mp4tomp3 config set audio.bitrate 256k
  mp4tomp3 config set tools.ffmpeg /opt/ffmpeg/bin/ffmpeg`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	// Start from the file alone so environment overrides are not persisted
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration could not be loaded: %w", err)
	}

	return RunConfigSetWithDependencies(cfg, cfgFile, args[0], args[1], DefaultOutput)
}

// RunConfigSetWithDependencies runs the set command with injected dependencies
func RunConfigSetWithDependencies(cfg *config.Config, configPath, key, value string, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)

	if err := mgr.Set(key, value); err != nil {
		return err
	}

	saved, err := mgr.Get(key)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Set %s = %s in %s\n", key, saved, configPath)
	return nil
}
