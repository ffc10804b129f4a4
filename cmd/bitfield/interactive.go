package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/bitfield"
)

type modelState int

const (
	stateBrowse modelState = iota
	stateEdit
)

type interactiveModel struct {
	err      error
	record   *bitfield.Record
	cfg      config
	filename string
	styles   styles
	input    textinput.Model
	selected int
	state    modelState
}

func newInteractiveModel(cfg config) *interactiveModel {
	return &interactiveModel{
		cfg:      cfg,
		filename: cfg.layoutFile,
		styles:   newStyles(true),
		state:    stateBrowse,
	}
}

type loadedMsg struct {
	err    error
	record *bitfield.Record
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadLayout
}

func (m *interactiveModel) loadLayout() tea.Msg {
	r, err := load(m.cfg)
	return loadedMsg{record: r, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateEdit {
			return m.updateEdit(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.record != nil && m.selected < m.record.Layout().NumFields()-1 {
				m.selected++
			}

		case "enter", "e":
			if m.record != nil {
				m.startEdit()
				return m, textinput.Blink
			}

		case "r":
			if m.record != nil {
				m.record.Reset()
				m.err = nil
			}
		}

	case loadedMsg:
		m.record = msg.record
		m.err = msg.err
	}
	return m, nil
}

func (m *interactiveModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.state = stateBrowse
		return m, nil

	case "enter":
		name := m.record.Layout().Field(m.selected).Name
		m.err = assign(m.record, name, strings.TrimSpace(m.input.Value()))
		if m.err == nil {
			m.state = stateBrowse
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) startEdit() {
	f := m.record.Layout().Field(m.selected)
	ti := textinput.New()
	ti.Prompt = f.Name + ": "
	ti.Placeholder = placeholder(f.Spec)
	ti.Width = 40
	ti.Focus()
	m.input = ti
	m.err = nil
	m.state = stateEdit
}

func placeholder(spec bitfield.Specifier) string {
	if e, ok := spec.(*bitfield.Enum); ok {
		names := make([]string, e.Len())
		for i, t := range e.Tags() {
			names[i] = t.Name
		}
		return strings.Join(names, " | ")
	}
	if spec.Bits() == 1 {
		return "true | false"
	}
	return fmt.Sprintf("0 .. 2^%d-1", spec.Bits())
}

func (m *interactiveModel) View() string {
	st := m.styles
	if m.record == nil {
		if m.err != nil {
			return st.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
		}
		return "Loading layout..."
	}

	l := m.record.Layout()
	var b strings.Builder

	b.WriteString(st.title.Render("Bitfield Editor"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s: %d bytes, %d bits\n\n", l.Name(), l.Size(), l.Bits())

	b.WriteString(renderTable(m.record, st, m.selected))
	b.WriteString("\n")
	b.WriteString(st.label.Render("hex: "))
	b.WriteString(st.value.Render(formatHex(m.record.Bytes())))
	b.WriteString("\n\n")

	if m.state == stateEdit {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(st.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.state {
	case stateBrowse:
		b.WriteString(st.help.Render("↑/↓ select • enter edit • r reset • q quit"))
	case stateEdit:
		b.WriteString(st.help.Render("enter apply • esc cancel"))
	}
	return b.String()
}

func runInteractive(cfg config) error {
	p := tea.NewProgram(newInteractiveModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
