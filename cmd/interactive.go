package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Beastly713/stegtext/pkg/imageio"
	"github.com/Beastly713/stegtext/pkg/pipeline"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Styles
var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	cursorStyle  = focusedStyle.Copy()
	dirStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	messageStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("42")).Padding(0, 1)
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
)

const browseHelp = "Navigate: ↑/↓ | Enter: Open Dir | 'h': Hide text | 'r': Reveal | 'q': Quit"

type fileItem struct {
	path  string
	name  string
	isDir bool
}

type mode int

const (
	modeBrowse mode = iota
	modeCompose
)

type model struct {
	path      string
	files     []fileItem
	cursor    int
	status    string
	revealed  string
	textInput textinput.Model
	mode      mode
	target    string // image the composed message goes into
	opts      pipeline.Options
	suffix    string
	quitting  bool
}

type statusMsg string

type revealMsg struct {
	name string
	text string
}

func initialModel(opts pipeline.Options, suffix string) model {
	cwd, _ := os.Getwd()

	ti := textinput.New()
	ti.Placeholder = "message to hide"
	ti.Width = 60

	m := model{
		path:      cwd,
		status:    browseHelp,
		textInput: ti,
		opts:      opts,
		suffix:    suffix,
	}
	m.loadFiles()
	return m
}

func (m *model) loadFiles() {
	entries, err := os.ReadDir(m.path)
	if err != nil {
		m.status = "Error reading directory"
		return
	}

	m.files = []fileItem{}
	// Parent directory
	m.files = append(m.files, fileItem{name: "..", isDir: true, path: filepath.Dir(m.path)})

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || imageio.IsImagePath(name) {
			m.files = append(m.files, fileItem{
				name:  name,
				isDir: e.IsDir(),
				path:  filepath.Join(m.path, name),
			})
		}
	}
	if m.cursor >= len(m.files) {
		m.cursor = 0
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeCompose {
			return m.updateCompose(msg)
		}
		return m.updateBrowse(msg)

	case statusMsg:
		m.status = string(msg)
		m.loadFiles()

	case revealMsg:
		m.revealed = msg.text
		if msg.text == "" {
			m.status = fmt.Sprintf("%s: %s", msg.name, NoMessageText)
		} else {
			m.status = fmt.Sprintf("Revealed %d bytes from %s", len(msg.text), msg.name)
		}
	}

	return m, nil
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}

	case "enter":
		selected := m.files[m.cursor]
		if selected.isDir {
			m.path = selected.path
			m.cursor = 0
			m.revealed = ""
			m.loadFiles()
		}

	case "h":
		selected := m.files[m.cursor]
		if selected.isDir {
			return m, nil
		}

		capacity, err := measureFile(selected.path, m.opts.Layout)
		if err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
			return m, nil
		}

		// A zero CharLimit means unlimited in textinput.
		if capacity.MaxMessageBytes == 0 {
			m.status = fmt.Sprintf("%s is too small to hold any text", selected.name)
			return m, nil
		}

		// Characters are at least one byte, so this is an upper bound.
		m.textInput.CharLimit = capacity.MaxMessageBytes
		m.textInput.Reset()
		m.target = selected.path
		m.mode = modeCompose
		m.status = fmt.Sprintf("Hiding in %s (up to %d bytes). Enter: Hide | Esc: Cancel", selected.name, capacity.MaxMessageBytes)
		return m, m.textInput.Focus()

	case "r":
		selected := m.files[m.cursor]
		if selected.isDir {
			return m, nil
		}
		m.status = "Revealing..."
		return m, revealFile(selected, m.opts)
	}

	return m, nil
}

func (m model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.mode = modeBrowse
		m.textInput.Blur()
		m.status = browseHelp
		return m, nil

	case "enter":
		text := m.textInput.Value()
		m.mode = modeBrowse
		m.textInput.Blur()
		m.status = "Hiding..."
		return m, hideFile(m.target, text, m.opts, m.suffix)
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// hideFile runs the hide pipeline off the render loop.
func hideFile(path, text string, opts pipeline.Options, suffix string) tea.Cmd {
	return func() tea.Msg {
		destination := outputPathFor(path, suffix, opts.Format)
		report, err := hideToFile(path, destination, text, opts)
		if err != nil {
			return statusMsg(fmt.Sprintf("Error: %v", err))
		}
		return statusMsg(fmt.Sprintf("Success! %d of %d bits used, saved %s", report.BitsUsed, report.Capacity, filepath.Base(destination)))
	}
}

func revealFile(item fileItem, opts pipeline.Options) tea.Cmd {
	return func() tea.Msg {
		file, err := os.Open(item.path)
		if err != nil {
			return statusMsg(fmt.Sprintf("Error: %v", err))
		}
		defer file.Close()

		text, err := pipeline.Reveal(file, opts)
		if err != nil {
			return statusMsg(fmt.Sprintf("Error: %v", err))
		}
		return revealMsg{name: item.name, text: text}
	}
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	s := fmt.Sprintf("Directory: %s\n\n", m.path)

	for i, file := range m.files {
		cursor := " " // no cursor
		if m.cursor == i {
			cursor = ">"
			s += cursorStyle.Render(cursor)
		} else {
			s += cursor
		}

		line := file.name
		if file.isDir {
			line = dirStyle.Render(fmt.Sprintf("[DIR] %s", file.name))
		}
		if file.path == m.target && m.mode == modeCompose {
			line = focusedStyle.Render(line)
		}

		s += " " + line + "\n"
	}

	if m.mode == modeCompose {
		s += "\n" + m.textInput.View() + "\n"
	}

	if m.revealed != "" {
		s += "\n" + messageStyle.Render(m.revealed) + "\n"
	}

	s += fmt.Sprintf("\n%s\n", m.status)
	return docStyle.Render(s)
}

// Cobra command setup
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive terminal UI for hiding and revealing messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		fd := os.Stdout.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return errors.New("interactive mode needs a terminal; use 'hide' or 'reveal' instead")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		p := tea.NewProgram(initialModel(pipelineOptions(cfg), cfg.Output.Suffix))
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
