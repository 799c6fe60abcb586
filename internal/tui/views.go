package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/engine"
	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/parser"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderFeedback(),
		m.list.View(),
		m.renderInput(),
	}
	if m.showHelp {
		if m.showFull {
			sections = append(sections, m.theme.Subtitle.Render(parser.HelpText()))
		}
		sections = append(sections, m.help.ShortHelpView(m.keymap.ShortHelp()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	book := m.session.Store()
	title := m.theme.Title.Render("hireflow")
	counts := m.theme.Subtitle.Render(fmt.Sprintf("  %d shown / %d applicants", len(book.View()), book.Len()))
	return title + counts
}

func (m Model) renderFeedback() string {
	var body string
	switch {
	case m.lastErr != nil:
		parts := []string{}
		if m.feedback != "" {
			parts = append(parts, m.feedback)
		}
		parts = append(parts, m.theme.StatusError.Render(common.UserMessage(m.lastErr)))
		body = strings.Join(parts, "\n")
	case m.session.State() == engine.AwaitingConfirmation:
		body = m.theme.StatusWarning.Render(m.feedback)
	default:
		body = m.theme.Normal.Render(m.feedback)
	}
	return m.theme.RoundedBox.Width(max(20, m.width-2)).Render(body)
}

func (m Model) renderInput() string {
	label := m.theme.Bold.Render("command")
	if m.session.State() == engine.AwaitingConfirmation {
		label = m.theme.StatusWarning.Render("confirm")
	}
	return label + " " + m.input.View()
}

// renderApplicants draws one card per applicant, numbered by view index.
func (m Model) renderApplicants(applicants []model.Applicant) string {
	if len(applicants) == 0 {
		return m.theme.StatusPending.Render("No applicants to show.")
	}

	cards := make([]string, len(applicants))
	for i, a := range applicants {
		head := fmt.Sprintf("%d. %s  %s  %s",
			i+1,
			m.theme.Bold.Render(a.Name),
			m.theme.Status(a.Status).Render(string(a.Status)),
			m.theme.Subtitle.Render("rating "+a.Rating.String()),
		)
		details := m.theme.Normal.Render(fmt.Sprintf("   %s · %s · %s", a.JobPosition, a.Phone, a.Email))
		card := head + "\n" + details
		if len(a.Tags) > 0 {
			card += "\n" + m.theme.Subtitle.Render("   #"+strings.Join(a.Tags, " #"))
		}
		cards[i] = card
	}
	return strings.Join(cards, "\n")
}
