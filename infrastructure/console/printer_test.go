package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
)

func TestPrinter_LevelsWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Info("initializing (bitrate: %s)", "192k")
	p.Success("converted: %s", "mp3/a.mp3")
	p.Error("input file not found (file: %s)", "a.mp4")

	want := "[INFO] initializing (bitrate: 192k)\n" +
		"[SUCCESS] converted: mp3/a.mp3\n" +
		"[ERROR] input file not found (file: a.mp4)\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrinter_ColorizeOnlyWhenEnabled(t *testing.T) {
	plain := NewPlainPrinter(&bytes.Buffer{})
	if got := plain.Colorize("x", text.FgRed); got != "x" {
		t.Errorf("Colorize() on plain printer = %q, want %q", got, "x")
	}

	colored := &Printer{out: &bytes.Buffer{}, color: true}
	if got := colored.Colorize("x", text.FgRed); !strings.Contains(got, "\x1b[") {
		t.Errorf("Colorize() with color = %q, want ANSI escape", got)
	}
}

func TestColorEnabled_NonFileWriter(t *testing.T) {
	if ColorEnabled(&bytes.Buffer{}) {
		t.Error("ColorEnabled(bytes.Buffer) = true, want false")
	}
}

func TestPrinter_RenderTable(t *testing.T) {
	p := NewPlainPrinter(&bytes.Buffer{})

	out := p.RenderTable("Video files (2)", []Column{
		{Header: "No.", Align: AlignRight},
		{Header: "File name"},
		{Header: "Size", Align: AlignRight},
	}, [][]string{
		{"1", "a.mp4", "1.5 MB"},
		{"2", "動画.mkv"},
	})

	for _, want := range []string{"Video files (2)", "No.", "File name", "a.mp4", "1.5 MB", "動画.mkv"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTable() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("RenderTable() on plain printer should not contain color codes")
	}
	for _, unwanted := range []string{"NO.", "FILE NAME", "VIDEO FILES"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("RenderTable() should keep header case, found %q in:\n%s", unwanted, out)
		}
	}
}

func TestPrinter_RenderTableNoColumns(t *testing.T) {
	p := NewPlainPrinter(&bytes.Buffer{})
	if got := p.RenderTable("t", nil, nil); got != "" {
		t.Errorf("RenderTable() with no columns = %q, want empty", got)
	}
}
