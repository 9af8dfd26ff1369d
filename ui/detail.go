package ui

import (
	"fmt"
	"strings"
	"time"

	"studymeet/api"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	detailBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	detailTitleStyle = lipgloss.NewStyle().
				Foreground(infoColor).
				Bold(true)

	detailLabelStyle = lipgloss.NewStyle().Foreground(dimColor)

	tagChipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("109")).
			Padding(0, 1)

	joinedBannerStyle = lipgloss.NewStyle().Foreground(okColor).Bold(true)
)

// Detail renders the selected session: wrapped description, schedule, tags,
// and the participant roster.
type Detail struct {
	session       *api.Session
	joined        bool
	width, height int
}

func NewDetail() *Detail {
	return &Detail{}
}

func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetSession updates the rendered session. joined is the membership
// derivation for the current identity.
func (d *Detail) SetSession(session *api.Session, joined bool) {
	d.session = session
	d.joined = joined
}

// formatSchedule renders an optional timestamp, or "unscheduled".
func formatSchedule(ts *time.Time) string {
	if ts == nil {
		return "unscheduled"
	}
	return ts.Local().Format("Mon Jan 2, 15:04")
}

func (d *Detail) String() string {
	innerWidth := d.width - 4
	if innerWidth < 20 {
		innerWidth = 20
	}

	if d.session == nil {
		empty := emptyStyle.Render("Select a session to see details")
		return detailBorderStyle.Width(d.width - 2).Height(d.height - 2).Render(empty)
	}

	s := d.session
	var b strings.Builder

	b.WriteString(detailTitleStyle.Render(s.Title))
	b.WriteString("\n")
	if s.CreatorUsername != "" {
		b.WriteString(detailLabelStyle.Render("by " + s.CreatorUsername))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(wordwrap.String(s.Description, innerWidth))
	b.WriteString("\n\n")

	b.WriteString(detailLabelStyle.Render("When: "))
	b.WriteString(formatSchedule(s.DateTime))
	b.WriteString("\n")

	if len(s.Tags) > 0 {
		chips := make([]string, 0, len(s.Tags))
		for _, tag := range s.Tags {
			chips = append(chips, tagChipStyle.Render(tag))
		}
		b.WriteString(detailLabelStyle.Render("Tags: "))
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n")
	}

	b.WriteString(detailLabelStyle.Render(fmt.Sprintf("Participants (%d): ", len(s.ParticipantUsernames))))
	if len(s.ParticipantUsernames) == 0 {
		b.WriteString(emptyStyle.Render("nobody yet"))
	} else {
		b.WriteString(wordwrap.String(strings.Join(s.ParticipantUsernames, ", "), innerWidth))
	}
	b.WriteString("\n")

	if d.joined {
		b.WriteString("\n")
		b.WriteString(joinedBannerStyle.Render("✓ You have joined this session"))
	}

	return detailBorderStyle.Width(d.width - 2).Height(d.height - 2).Render(b.String())
}
