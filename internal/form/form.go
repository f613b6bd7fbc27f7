// Package form is the interactive terminal form: a length selector, four
// character-class toggles, a generate action, the generated password, a copy
// action and a strength meter.
package form

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/strength"
)

const (
	MinLength = 4
	MaxLength = 32

	copiedFor  = 1500 * time.Millisecond
	meterWidth = 40
)

// Meter colors by strength band, weak to very strong.
var bandColors = [...]string{"#ff0000", "#ffaa00", "#9acd32", "#00ff00"}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	sectionStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")).Bold(true)
	passwordStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(0, 1)
)

type clearStatusMsg struct{ id int }

// Model is the bubbletea model of the form.
type Model struct {
	length  int
	classes crypto.CharacterClasses

	password   string
	assessment strength.Assessment
	err        error

	status   string
	statusID int

	meter progress.Model
	copy  func(string) error
}

// New returns a form with length 16 and every class enabled. A first password
// is generated right away.
func New() Model {
	m := Model{
		length:  crypto.DefaultLength,
		classes: crypto.DefaultClasses(),
		meter: progress.New(
			progress.WithSolidFill(bandColors[0]),
			progress.WithWidth(meterWidth),
			progress.WithoutPercentage(),
		),
		copy: clipboard.WriteAll,
	}
	m.generate()
	return m
}

// Run shows the form until the user quits or ctx is cancelled.
func Run(ctx context.Context) error {
	_, err := tea.NewProgram(New(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Password() string { return m.password }
func (m Model) Length() int { return m.length }
func (m Model) Classes() crypto.CharacterClasses { return m.classes }
func (m Model) Assessment() strength.Assessment { return m.assessment }
func (m Model) Err() error { return m.err }
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "left", "-":
			m.setLength(m.length - 1)
		case "right", "+", "=":
			m.setLength(m.length + 1)
		case "u":
			m.classes.Uppercase = !m.classes.Uppercase
		case "l":
			m.classes.Lowercase = !m.classes.Lowercase
		case "d":
			m.classes.Digits = !m.classes.Digits
		case "s":
			m.classes.Symbols = !m.classes.Symbols
		case "enter", "g", " ":
			m.generate()
		case "c":
			return m.copyPassword()
		}

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}

	case tea.WindowSizeMsg:
		m.meter.Width = min(meterWidth, max(10, msg.Width-4))
	}

	return m, nil
}

func (m *Model) setLength(n int) {
	m.length = min(MaxLength, max(MinLength, n))
}

// generate reads the current selection and length and replaces the password.
func (m *Model) generate() {
	password, err := crypto.Generate(m.length, m.classes)
	if err != nil {
		m.password = ""
		m.assessment = strength.Assessment{}
		m.err = err
		return
	}

	m.password = password
	m.assessment = strength.Evaluate(password)
	m.err = nil
	m.meter.FullColor = bandColors[m.assessment.Level.Band()]
}

func (m Model) copyPassword() (tea.Model, tea.Cmd) {
	m.statusID++
	id := m.statusID

	if m.password == "" {
		m.status = "Nothing to copy, generate a password first"
	} else if err := m.copy(m.password); err != nil {
		m.status = fmt.Sprintf("Copy failed: %v", err)
	} else {
		m.status = "Copied!"
	}

	return m, tea.Tick(copiedFor, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Password Generator"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Length"))
	fmt.Fprintf(&b, "  ◀ %2d ▶  %s\n\n", m.length, mutedStyle.Render(fmt.Sprintf("(%d-%d characters)", MinLength, MaxLength)))

	b.WriteString(sectionStyle.Render("Character types"))
	b.WriteString("\n")
	b.WriteString(toggle("u", "Uppercase (A-Z)", m.classes.Uppercase))
	b.WriteString(toggle("l", "Lowercase (a-z)", m.classes.Lowercase))
	b.WriteString(toggle("d", "Digits (0-9)", m.classes.Digits))
	b.WriteString(toggle("s", "Symbols (!@#$%...)", m.classes.Symbols))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Generated password"))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(passwordStyle.Render(m.password))
		b.WriteString("\n")
		b.WriteString(m.meter.ViewAs(float64(m.assessment.Score) / 100))
		b.WriteString("\n")
		levelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(bandColors[m.assessment.Level.Band()]))
		b.WriteString(levelStyle.Render(fmt.Sprintf("Strength: %s (%d/100)", m.assessment.Level, m.assessment.Score)))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(m.assessment.Feedback))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")

	b.WriteString(mutedStyle.Render("enter generate • c copy • ←/→ length • u/l/d/s toggle • q quit"))
	b.WriteString("\n")

	return b.String()
}

func toggle(key, label string, on bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	return fmt.Sprintf("  %s %s %s\n", box, label, mutedStyle.Render("("+key+")"))
}
