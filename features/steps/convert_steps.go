//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"mp4tomp3/cmd"
	"mp4tomp3/domain/media"
	"mp4tomp3/infrastructure/console"
	"mp4tomp3/infrastructure/ffmpeg"

	"github.com/cucumber/godog"
)

// convertContext holds test state for convert scenarios
type convertContext struct {
	encoder  *mockEncoder
	prober   *mockProber
	files    *mockFileSystem
	prompter *MockPrompter
	opts     cmd.ConvertOptions
	output   *bytes.Buffer
	err      error
}

// SharedConvertContext is reset before each scenario via Before hook
var SharedConvertContext *convertContext

func getConvertContext() *convertContext {
	return SharedConvertContext
}

func InitializeConvertScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedConvertContext = &convertContext{
			encoder: &mockEncoder{},
			prober: &mockProber{result: &media.ProbeResult{
				Format: media.ProbeFormat{FormatName: "mov,mp4", Duration: "90", Size: "2048"},
				Streams: []media.ProbeStream{
					{CodecType: "video", CodecName: "h264"},
					{CodecType: "audio", CodecName: "aac"},
				},
			}},
			files:    newMockFileSystem(),
			prompter: &MockPrompter{},
			opts: cmd.ConvertOptions{
				Bitrate:   media.DefaultBitrate,
				OutputDir: "mp3",
				MovieDir:  "movie",
			},
			output: &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedConvertContext = nil
		return c, nil
	})

	ctx.Step(`^ffmpeg is installed$`, ffmpegIsInstalled)
	ctx.Step(`^ffmpeg is not installed$`, ffmpegIsNotInstalled)
	ctx.Step(`^a video at "([^"]*)" of (\d+) MB$`, aVideoAtOfMB)
	ctx.Step(`^an empty movie directory "([^"]*)"$`, anEmptyMovieDirectory)
	ctx.Step(`^the output directory is "([^"]*)"$`, theOutputDirectoryIs)
	ctx.Step(`^the bitrate is "([^"]*)"$`, theBitrateIs)
	ctx.Step(`^ffmpeg fails with "([^"]*)"$`, ffmpegFailsWith)
	ctx.Step(`^the disk has no free space$`, theDiskHasNoFreeSpace)
	ctx.Step(`^I convert "([^"]*)"$`, iConvert)
	ctx.Step(`^I convert "([^"]*)" with file info$`, iConvertWithFileInfo)
	ctx.Step(`^I list the movie directory$`, iListTheMovieDirectory)
	ctx.Step(`^I start interactive mode and answer:$`, iStartInteractiveModeAndAnswer)
	ctx.Step(`^the command should succeed$`, theCommandShouldSucceed)
	ctx.Step(`^the command should exit with code (\d+)$`, theCommandShouldExitWithCode)
	ctx.Step(`^the output should contain "([^"]*)"$`, theOutputShouldContain)
	ctx.Step(`^the output should not contain "([^"]*)"$`, theOutputShouldNotContain)
	ctx.Step(`^ffmpeg should have converted "([^"]*)" to "([^"]*)"$`, ffmpegShouldHaveConvertedTo)
	ctx.Step(`^ffmpeg should have been called with bitrate "([^"]*)"$`, ffmpegShouldHaveBeenCalledWithBitrate)
	ctx.Step(`^ffmpeg should not have been called$`, ffmpegShouldNotHaveBeenCalled)
	ctx.Step(`^ffmpeg should have been called (\d+) times$`, ffmpegShouldHaveBeenCalledTimes)
}

func ffmpegIsInstalled() error {
	getConvertContext().encoder.notInstalled = false
	return nil
}

func ffmpegIsNotInstalled() error {
	getConvertContext().encoder.notInstalled = true
	return nil
}

func aVideoAtOfMB(path string, sizeMB int) error {
	c := getConvertContext()
	dir := filepath.Dir(path)
	c.files.dirs[dir] = true
	c.files.sizes[path] = int64(sizeMB) * 1024 * 1024
	if media.IsSupportedVideoFormat(path) {
		c.files.listings[dir] = append(c.files.listings[dir], path)
	}
	return nil
}

func anEmptyMovieDirectory(dir string) error {
	c := getConvertContext()
	c.files.dirs[dir] = true
	c.opts.MovieDir = dir
	return nil
}

func theOutputDirectoryIs(dir string) error {
	getConvertContext().opts.OutputDir = dir
	return nil
}

func theBitrateIs(bitrate string) error {
	getConvertContext().opts.Bitrate = bitrate
	return nil
}

func ffmpegFailsWith(stderr string) error {
	c := getConvertContext()
	c.encoder.failWith = ffmpeg.Classify(stderr, c.opts.File)
	return nil
}

func theDiskHasNoFreeSpace() error {
	getConvertContext().files.freeSpace = media.NewError(media.KindInsufficientSpace,
		"not enough free space. required: 10MB, available: 0.0MB", "")
	return nil
}

func (c *convertContext) run() {
	deps := cmd.ConvertDependencies{
		Encoder:  c.encoder,
		Prober:   c.prober,
		Files:    c.files,
		Prompter: c.prompter,
		Output:   console.NewPlainPrinter(c.output),
	}
	c.err = cmd.RunConvertWithDependencies(context.Background(), deps, c.opts)
}

func iConvert(path string) error {
	c := getConvertContext()
	c.opts.File = path
	c.run()
	return nil
}

func iConvertWithFileInfo(path string) error {
	c := getConvertContext()
	c.opts.File = path
	c.opts.ShowInfo = true
	c.run()
	return nil
}

func iListTheMovieDirectory() error {
	c := getConvertContext()
	c.opts.ListOnly = true
	c.run()
	return nil
}

func iStartInteractiveModeAndAnswer(table *godog.Table) error {
	c := getConvertContext()
	for _, row := range table.Rows {
		if len(row.Cells) > 0 {
			c.prompter.inputResponses = append(c.prompter.inputResponses, row.Cells[0].Value)
		}
	}
	c.run()
	return nil
}

func theCommandShouldSucceed() error {
	c := getConvertContext()
	if c.err != nil {
		return fmt.Errorf("expected success, got %v\noutput:\n%s", c.err, c.output.String())
	}
	return nil
}

func theCommandShouldExitWithCode(code int) error {
	c := getConvertContext()
	if got := cmd.ExitCode(c.err); got != code {
		return fmt.Errorf("expected exit code %d, got %d\noutput:\n%s", code, got, c.output.String())
	}
	return nil
}

func theOutputShouldContain(expected string) error {
	c := getConvertContext()
	if !strings.Contains(c.output.String(), expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, c.output.String())
	}
	return nil
}

func theOutputShouldNotContain(unexpected string) error {
	c := getConvertContext()
	if strings.Contains(c.output.String(), unexpected) {
		return fmt.Errorf("expected output not to contain %q, got:\n%s", unexpected, c.output.String())
	}
	return nil
}

func ffmpegShouldHaveConvertedTo(source, output string) error {
	c := getConvertContext()
	for _, req := range c.encoder.requests {
		if req.SourcePath == source {
			if got := req.OutputPath(); got != filepath.FromSlash(output) {
				return fmt.Errorf("expected output %q, got %q", output, got)
			}
			return nil
		}
	}
	return fmt.Errorf("ffmpeg was not called for %s", source)
}

func ffmpegShouldHaveBeenCalledWithBitrate(bitrate string) error {
	c := getConvertContext()
	if len(c.encoder.requests) == 0 {
		return fmt.Errorf("ffmpeg was not called")
	}
	if got := c.encoder.requests[0].Bitrate; got != bitrate {
		return fmt.Errorf("expected bitrate %q, got %q", bitrate, got)
	}
	return nil
}

func ffmpegShouldNotHaveBeenCalled() error {
	return ffmpegShouldHaveBeenCalledTimes(0)
}

func ffmpegShouldHaveBeenCalledTimes(count int) error {
	c := getConvertContext()
	if got := len(c.encoder.requests); got != count {
		return fmt.Errorf("expected %d ffmpeg calls, got %d", count, got)
	}
	return nil
}
