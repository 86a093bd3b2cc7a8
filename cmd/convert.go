package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	appconversion "mp4tomp3/application/conversion"
	"mp4tomp3/domain/media"
	"mp4tomp3/infrastructure/console"
	"mp4tomp3/infrastructure/ffmpeg"
	"mp4tomp3/infrastructure/filesystem"
	"mp4tomp3/infrastructure/logging"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	convertFile      string
	convertBitrate   string
	convertOutputDir string
	convertMovieDir  string
	convertListOnly  bool
	convertShowInfo  bool
)

func init() {
	rootCmd.Flags().StringVarP(&convertFile, "file", "f", "", "Path to the video file to convert")
	rootCmd.Flags().StringVarP(&convertBitrate, "bitrate", "b", media.DefaultBitrate, "MP3 bitrate (128k, 192k, 256k, 320k)")
	rootCmd.Flags().StringVarP(&convertOutputDir, "output", "o", "mp3", "Output directory")
	rootCmd.Flags().StringVar(&convertMovieDir, "movie-dir", "movie", "Directory listed in interactive and list mode")
	rootCmd.Flags().BoolVarP(&convertListOnly, "list", "l", false, "Only list the video files in the movie directory")
	rootCmd.Flags().BoolVar(&convertShowInfo, "info", false, "Show file information before converting")
}

// VideoFileSystem is the filesystem surface the convert command needs
type VideoFileSystem interface {
	media.FileSystem
	ListVideoFiles(dir string) []string
}

// ConvertDependencies holds the collaborators of the convert command
type ConvertDependencies struct {
	Encoder  media.Encoder
	Prober   media.Prober
	Files    VideoFileSystem
	Prompter Prompter
	Output   *console.Printer
	Logger   *slog.Logger
}

// ConvertOptions holds the resolved command-line options
type ConvertOptions struct {
	File      string
	Bitrate   string
	OutputDir string
	MovieDir  string
	ListOnly  bool
	ShowInfo  bool
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return fmt.Errorf("configuration could not be loaded: %w", err)
	}

	// Flags win over environment and config file values
	opts := ConvertOptions{
		File:      convertFile,
		Bitrate:   cfg.Audio.Bitrate,
		OutputDir: cfg.Paths.OutputDirectory,
		MovieDir:  cfg.Paths.MovieDirectory,
		ListOnly:  convertListOnly,
		ShowInfo:  convertShowInfo,
	}
	if cmd.Flags().Changed("bitrate") {
		opts.Bitrate = convertBitrate
	}
	if cmd.Flags().Changed("output") {
		opts.OutputDir = convertOutputDir
	}
	if cmd.Flags().Changed("movie-dir") {
		opts.MovieDir = convertMovieDir
	}

	// Create dependencies using production implementations
	deps := ConvertDependencies{
		Encoder:  ffmpeg.NewEncoder(ffmpeg.WithFFmpegPath(cfg.Tools.FFmpeg)),
		Prober:   ffmpeg.NewProber(ffmpeg.WithFFprobePath(cfg.Tools.FFprobe)),
		Files:    filesystem.NewChecker(),
		Prompter: DefaultPrompter,
		Output:   console.NewPrinter(os.Stdout),
		Logger:   logging.New(os.Stderr, verbose),
	}

	return RunConvertWithDependencies(cmd.Context(), deps, opts)
}

// RunConvertWithDependencies runs the convert command with injected dependencies (for testing)
func RunConvertWithDependencies(ctx context.Context, deps ConvertDependencies, opts ConvertOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	out := deps.Output

	// Reject bad bitrates before anything touches ffmpeg
	if err := media.ValidateBitrate(opts.Bitrate); err != nil {
		out.Error("%v", err)
		return exitWith(1)
	}

	if opts.ListOnly {
		files := listVideoFilesTable(deps.Files, out, opts.MovieDir)
		if len(files) == 0 {
			out.Println()
			out.Error("no convertible video files in the %s directory.", opts.MovieDir)
			printSupportedFormats(out)
		}
		return nil
	}

	out.Info("initializing MP3 converter... (bitrate: %s)", opts.Bitrate)
	service, err := appconversion.NewService(ctx, deps.Encoder, deps.Prober, deps.Files, opts.OutputDir, opts.Bitrate,
		appconversion.WithLogger(deps.Logger))
	if err != nil {
		out.Error("%v", err)
		return exitWith(1)
	}
	out.Success("initialized")

	if opts.File == "" {
		out.Success("starting interactive mode")
		return runInteractive(ctx, service, deps, opts.MovieDir)
	}

	if !deps.Files.Exists(opts.File) {
		out.Error("file not found: %s", opts.File)
		return exitWith(1)
	}
	if !media.IsSupportedVideoFormat(opts.File) {
		out.Error("unsupported format: %s", media.Extension(opts.File))
		return exitWith(1)
	}

	out.Println()
	out.Heading("=== converting %s ===", filepath.Base(opts.File))
	if !convertSingleFile(ctx, service, out, opts.File, opts.ShowInfo) {
		interrupted(ctx, out)
		return exitWith(1)
	}
	return nil
}

// interrupted reports whether ctx was cancelled, telling the user when it was
func interrupted(ctx context.Context, out *console.Printer) bool {
	if ctx.Err() == nil {
		return false
	}
	out.Println()
	out.Warn("conversion interrupted.")
	return true
}

// convertSingleFile converts one file, printing progress and errors. It returns true on success.
func convertSingleFile(ctx context.Context, service *appconversion.Service, out *console.Printer, path string, showInfo bool) bool {
	if showInfo {
		printFileInfo(ctx, service, out, path)
	}

	outputPath, err := service.Convert(ctx, path, progressPrinter(out))
	if err != nil {
		out.Error("%v", err)
		return false
	}

	out.Success("converted: %s", outputPath)
	return true
}

func progressPrinter(out *console.Printer) appconversion.ProgressFunc {
	return func(stage appconversion.ProgressStage, name string) {
		switch stage {
		case appconversion.ProgressStart:
			out.Info("conversion started: %s", name)
		case appconversion.ProgressDone:
			out.Info("conversion finished: %s", name)
		}
	}
}

func printFileInfo(ctx context.Context, service *appconversion.Service, out *console.Printer, path string) {
	info := service.ProbeMetadata(ctx, path)
	if info.Failed() {
		out.Error("%s", info.Error)
		return
	}

	out.PrintTable("File info", []console.Column{
		{Header: "Item", Color: text.FgCyan},
		{Header: "Value", Color: text.FgGreen},
	}, [][]string{
		{"File name", info.Filename},
		{"Size", info.Size},
		{"Duration", service.FormatDuration(info.Duration)},
		{"Format", info.FormatName},
		{"Video codec", info.VideoCodec},
		{"Audio codec", info.AudioCodec},
	})
}

// listVideoFilesTable prints the videos in dir as a numbered table and returns them.
// Nothing is printed when there are no videos.
func listVideoFilesTable(files VideoFileSystem, out *console.Printer, dir string) []string {
	videos := files.ListVideoFiles(dir)
	if len(videos) == 0 {
		return videos
	}

	rows := make([][]string, 0, len(videos))
	for i, path := range videos {
		size := "unknown"
		if info, err := files.Stat(path); err == nil {
			size = fmt.Sprintf("%.1f MB", media.BytesToMB(info.Size()))
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), filepath.Base(path), size})
	}

	out.Println()
	out.PrintTable(fmt.Sprintf("Video files in %s (%d)", dir, len(videos)), []console.Column{
		{Header: "No.", Align: console.AlignRight, Color: text.FgCyan},
		{Header: "File name", Color: text.FgMagenta},
		{Header: "Size", Align: console.AlignRight, Color: text.FgGreen},
	}, rows)
	return videos
}

func printSupportedFormats(out *console.Printer) {
	out.Println()
	out.Println(out.Colorize("Supported video formats:", text.FgCyan))
	out.Println("  " + strings.Join(media.SupportedVideoFormats(), ", "))
}
