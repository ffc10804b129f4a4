package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bitfield"
	"github.com/wippyai/bitfield/decl"
	"github.com/wippyai/bitfield/errors"
)

func main() {
	var (
		layoutFile  = flag.String("layout", "", "Path to layout declaration (YAML or JSON)")
		hexData     = flag.String("hex", "", "Initial buffer as hex bytes")
		sets        = flag.String("set", "", "Field assignments (name=value,name2=value2)")
		get         = flag.String("get", "", "Print a single field value and exit")
		dump        = flag.Bool("dump", false, "Print the normalized declaration and exit")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *layoutFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: bitfield -layout <file.yaml> [-hex 0a0b..] [-set a=1,b=7] [-get a]")
		fmt.Fprintln(os.Stderr, "       bitfield -layout <file.yaml> -dump")
		fmt.Fprintln(os.Stderr, "       bitfield -layout <file.yaml> -i  (interactive mode)")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	bitfield.SetLogger(logger)
	defer func() { _ = logger.Sync() }()

	cfg := config{
		layoutFile: *layoutFile,
		hex:        *hexData,
		sets:       *sets,
		get:        *get,
		dump:       *dump,
		styled:     term.IsTerminal(int(os.Stdout.Fd())),
	}

	if *interactive {
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	layoutFile string
	hex        string
	sets       string
	get        string
	dump       bool
	styled     bool
}

// load builds the layout and the initial record from the flags.
func load(cfg config) (*bitfield.Record, error) {
	l, err := decl.LoadLayout(cfg.layoutFile)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}

	r := l.New()
	if cfg.hex != "" {
		data, err := parseHex(cfg.hex)
		if err != nil {
			return nil, fmt.Errorf("parse hex: %w", err)
		}
		if err := r.SetBytes(data); err != nil {
			return nil, err
		}
	}

	assignments, err := parseAssignments(cfg.sets)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if err := assign(r, a.field, a.value); err != nil {
			return nil, fmt.Errorf("set %s: %w", a.field, err)
		}
	}
	return r, nil
}

func run(w io.Writer, cfg config) error {
	r, err := load(cfg)
	if err != nil {
		return err
	}
	l := r.Layout()

	if cfg.dump {
		out, err := decl.FromLayout(l).Marshal()
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}

	if cfg.get != "" {
		i, ok := l.Index(cfg.get)
		if !ok {
			return errors.FieldUnknown(errors.PhaseRuntime, []string{l.Name()}, cfg.get)
		}
		fmt.Fprintln(w, formatValue(r, i))
		return nil
	}

	st := newStyles(cfg.styled)
	fmt.Fprintln(w, st.title.Render(l.Name())+fmt.Sprintf(" %d bytes, %d bits", l.Size(), l.Bits()))
	fmt.Fprintln(w)
	fmt.Fprint(w, renderTable(r, st, -1))
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.label.Render("hex: ")+st.value.Render(formatHex(r.Bytes())))
	return nil
}

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	spec     lipgloss.Style
	selected lipgloss.Style
	err      lipgloss.Style
	help     lipgloss.Style
}

func newStyles(styled bool) styles {
	if !styled {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		header: lipgloss.NewStyle().Bold(true).Underline(true),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		spec:   lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")),
		err:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		help: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

// renderTable lists every field with its spec, span and current value.
// Row cursor is highlighted; pass -1 for none.
func renderTable(r *bitfield.Record, st styles, cursor int) string {
	l := r.Layout()
	rows := make([][]string, 0, l.NumFields())
	for i := 0; i < l.NumFields(); i++ {
		f := l.Field(i)
		name := f.Name
		if cursor >= 0 {
			name = "  " + name
			if i == cursor {
				name = "> " + f.Name
			}
		}
		rows = append(rows, []string{name, f.Spec.Name(), l.SpanAt(i).String(), formatValue(r, i)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.label).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers("field", "spec", "bits", "value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.header.PaddingRight(1)
			case row == cursor:
				return st.selected.PaddingRight(1)
			case col == 1:
				return st.spec.PaddingRight(1)
			}
			return lipgloss.NewStyle().PaddingRight(1)
		})
	return t.String() + "\n"
}
