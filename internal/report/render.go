package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// Render formats a report for the terminal.
func Render(r Report) string {
	var sections []string

	sections = append(sections, titleStyle.Render("mdforge status"))
	sections = append(sections, faintStyle.Render(fmt.Sprintf("generated %s", r.GeneratedAt.Format("2006-01-02 15:04:05"))))

	if r.ServerIP != "" {
		sections = append(sections, panel("Share",
			fmt.Sprintf("\\\\%s\\%s\nmounted at %s", r.ServerIP, r.ShareName, r.MountPoint)))
	} else {
		sections = append(sections, panel("Share",
			fmt.Sprintf("%s\nmounted at %s", r.ShareName, r.MountPoint)))
	}

	sections = append(sections, panel("Array", strings.TrimSpace(r.ArrayStatus)))

	var disks []string
	for _, disk := range r.Disks {
		disks = append(disks, headerStyle.Render(disk.Device)+"\n"+disk.Summary)
	}
	sections = append(sections, panel("Disks", strings.Join(disks, "\n\n")))

	sections = append(sections, panel("Usage", strings.TrimSpace(r.Usage)))
	sections = append(sections, panel("Virus scan", strings.TrimSpace(r.ScanLog)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func panel(title, body string) string {
	return panelStyle.Render(headerStyle.Render(title) + "\n" + body)
}
