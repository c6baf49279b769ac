package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	editor "github.com/ionut-t/goline/adapter-bubbletea"
	"github.com/spf13/cobra"
)

const messageDuration = 3 * time.Second

type Model struct {
	editor editor.Model
}

func (m Model) Init() tea.Cmd {
	return m.editor.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetWidth(msg.Width - 4)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+q":
			return m, tea.Quit
		}

	case editor.ChangeMsg:
		log.Printf("line changed: %q", msg.Content)

	case editor.SearchResultMsg:
		if msg.Found {
			return m, m.editor.DispatchMessage(fmt.Sprintf("%q found at %d", msg.Query, msg.Index), messageDuration)
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	return m, cmd
}

func (m Model) View() tea.View {
	content := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.editor.View())

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

type options struct {
	text      string
	language  string
	theme     string
	themeFile string
	debug     bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "goline-example",
		Short: "Edit a single line with highlighting and search",
		Long: `Edit a single line in the terminal.

Keys: arrows move, ctrl+s / ctrl+r search forward / backward, ctrl+n repeats
the search, ctrl+k cuts the rest of the line, ctrl+v pastes, ctrl+c quits.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.text, "text", "t", "let answer = 42; // edit me", "initial line content")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "chroma lexer used for highlighting")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "chroma style used for colors, e.g. catppuccin-mocha")
	cmd.Flags().StringVar(&opts.themeFile, "theme-file", "", "YAML theme file")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log to debug.log")

	return cmd
}

func run(opts options) error {
	if opts.debug {
		f, err := tea.LogToFile("debug.log", "goline")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	theme := editor.DefaultTheme
	if opts.theme != "" {
		theme = editor.ThemeFromChroma(opts.theme)
	}
	if opts.themeFile != "" {
		f, err := os.Open(opts.themeFile)
		if err != nil {
			return err
		}
		theme, err = editor.LoadTheme(f, theme)
		f.Close()
		if err != nil {
			return fmt.Errorf("load %s: %w", opts.themeFile, err)
		}
	}

	lineEditor := editor.New(opts.text, 76)
	lineEditor.WithTheme(theme)
	lineEditor.SetLanguage(opts.language)
	lineEditor.Focus()

	p := tea.NewProgram(Model{editor: lineEditor})
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
