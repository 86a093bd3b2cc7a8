package cmd

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	appconversion "mp4tomp3/application/conversion"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/jedib0t/go-pretty/v6/text"
)

// runInteractive lists the movie directory and converts the files the user picks until they quit
func runInteractive(ctx context.Context, service *appconversion.Service, deps ConvertDependencies, movieDir string) error {
	out := deps.Output

	if !deps.Files.Exists(movieDir) {
		out.Error("movie directory not found: %s", movieDir)
		return exitWith(1)
	}

	for {
		videos := listVideoFilesTable(deps.Files, out, movieDir)
		if len(videos) == 0 {
			out.Println()
			out.Error("no convertible video files in the %s directory.", movieDir)
			printSupportedFormats(out)
			out.Println()
			out.Hint("Tip:", "put video files in the "+movieDir+" directory and run again.")
			return nil
		}

		out.Println()
		out.Println(out.Colorize("Enter the number of the file to convert (0 to exit, 'all' to convert every file):", text.FgCyan))

		answer, err := deps.Prompter.Input("Number:", "")
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				out.Println()
				out.Warn("conversion interrupted.")
				return exitWith(1)
			}
			if errors.Is(err, io.EOF) {
				out.Warn("exiting.")
				return nil
			}
			return err
		}

		choice := strings.ToLower(strings.TrimSpace(answer))
		switch choice {
		case "0", "exit", "quit":
			out.Warn("exiting.")
			return nil

		case "all":
			converted := 0
			for _, path := range videos {
				out.Println()
				out.Heading("=== converting %s ===", filepath.Base(path))
				if convertSingleFile(ctx, service, out, path, true) {
					converted++
				}
				if interrupted(ctx, out) {
					return exitWith(1)
				}
			}
			out.Success("converted %d of %d files.", converted, len(videos))

		default:
			number, err := strconv.Atoi(choice)
			if err != nil {
				out.Error("please enter a valid number.")
				continue
			}
			if number < 1 || number > len(videos) {
				out.Error("invalid number.")
				continue
			}

			selected := videos[number-1]
			out.Println()
			out.Heading("=== converting %s ===", filepath.Base(selected))
			convertSingleFile(ctx, service, out, selected, true)
			if interrupted(ctx, out) {
				return exitWith(1)
			}
		}
	}
}
