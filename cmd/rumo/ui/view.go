package ui

import (
	"fmt"
	"strings"

	"rumo/internal/interview"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.wizard.Completed() {
		return m.completedView()
	}
	return m.questionView()
}

func (m Model) header(title string) string {
	return m.styles.Header.Render("RUMO") + " " + m.styles.Muted.Render(title)
}

func (m Model) questionView() string {
	q, ok := m.wizard.Current()
	if !ok {
		return ""
	}
	sec := m.wizard.CurrentSection()

	var b strings.Builder
	b.WriteString(m.header("Chief of Staff setup") + "\n\n")
	b.WriteString(renderProgress(m.styles, m.wizard) + "\n\n")
	b.WriteString(m.styles.Section.Render(strings.ToUpper(sec.Title)) + "\n")
	b.WriteString(m.styles.Title.Render(q.Title) + "\n")
	if q.Subtitle != "" {
		b.WriteString(m.styles.Subtitle.Render(q.Subtitle) + "\n")
	}
	b.WriteString("\n")

	switch q.Kind {
	case interview.KindSingleChoice:
		b.WriteString(m.choiceList(q, false))
	case interview.KindMultiChoice:
		b.WriteString(m.choiceList(q, true))
		n := len(m.wizard.Draft().Selection)
		b.WriteString("\n" + m.styles.Muted.Render(fmt.Sprintf("%d/%d selected", n, q.MaxSelect)) + "\n")
	case interview.KindFreeText:
		if q.Multiline {
			b.WriteString(m.area.View() + "\n")
		} else {
			b.WriteString(m.input.View() + "\n")
		}
		if q.Optional {
			b.WriteString(m.styles.Muted.Render("Optional. Press enter to skip.") + "\n")
		}
	}

	b.WriteString("\n" + m.statusLine())
	b.WriteString(m.styles.Footer.Render(strings.Join(m.questionHints(q), " · ")))
	return b.String()
}

func (m Model) choiceList(q interview.Question, multi bool) string {
	d := m.wizard.Draft()
	var b strings.Builder
	for i, o := range q.Options {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("❯ ")
		}

		var marker string
		chosen := false
		if multi {
			for _, s := range d.Selection {
				if s == o.Value {
					chosen = true
				}
			}
			marker = "[ ]"
			if chosen {
				marker = "[x]"
			}
		} else {
			chosen = d.Choice == o.Value
			marker = "○"
			if chosen {
				marker = "●"
			}
		}

		label := o.Label
		if label == "" {
			label = o.Value
		}
		style := m.styles.Option
		if chosen {
			style = m.styles.Selected
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, marker, style.Render(label)))
		if o.Description != "" && i == m.cursor {
			b.WriteString(m.styles.Description.Render(o.Description) + "\n")
		}
	}
	return b.String()
}

func (m Model) questionHints(q interview.Question) []string {
	k := m.keys
	switch q.Kind {
	case interview.KindSingleChoice:
		return hints(k.Up, k.Down, k.Enter, k.Back, k.Quit)
	case interview.KindMultiChoice:
		return hints(k.Up, k.Down, k.Toggle, k.Enter, k.Back, k.Quit)
	}
	if q.Multiline {
		return hints(k.Enter, k.Newline, k.Back, k.Quit)
	}
	return hints(k.Enter, k.Back, k.Quit)
}

func (m Model) completedView() string {
	k := m.keys
	var b strings.Builder
	b.WriteString(m.header("Your Chief of Staff is ready") + "\n\n")
	b.WriteString(renderProgress(m.styles, m.wizard) + "\n\n")
	b.WriteString(m.doc.View() + "\n\n")

	if m.copied {
		b.WriteString(m.styles.Badge.Render("COPIED!") + "\n")
	} else {
		b.WriteString(m.statusLine())
	}
	b.WriteString(m.styles.Footer.Render(strings.Join(
		append(hints(k.Copy, k.Continue, k.Reconfigure, k.Close), "↑/↓ scroll"), " · ")))
	return b.String()
}

func (m Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.Error.Render(m.status) + "\n"
	}
	return m.styles.Muted.Render(m.status) + "\n"
}
