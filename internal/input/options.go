package input

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/saltpay/stencil/internal/model"
)

// WorkspaceValue is the option value standing for the workspace root.
const WorkspaceValue = "workspace"

// Option is one entry of the location dropdown. Value is WorkspaceValue or a
// collection id. Divider renders a separator directly above the option.
type Option struct {
	Value   string
	Icon    string
	Text    string
	Divider bool
}

// Label is the rendered icon and text.
func (o Option) Label() string {
	if o.Icon == "" {
		return o.Text
	}
	return o.Icon + " " + o.Text
}

// PolicySource answers ability checks for a subject id.
type PolicySource interface {
	Abilities(subjectID string) model.Abilities
}

// BuildOptions composes the location options: the workspace when the team
// policy allows creating documents, then every collection (in the given
// order) whose policy allows it. The first collection option carries the
// divider when a workspace option precedes it.
func BuildOptions(collections []model.Collection, policies PolicySource, team model.Team, workspaceLabel string) []Option {
	var options []Option

	hasWorkspace := policies.Abilities(team.ID).CreateDocument
	if hasWorkspace {
		options = append(options, Option{
			Value: WorkspaceValue,
			Icon:  teamLogo(team),
			Text:  workspaceLabel,
		})
	}

	first := true
	for _, c := range collections {
		if !policies.Abilities(c.ID).CreateDocument {
			continue
		}
		options = append(options, Option{
			Value:   c.ID,
			Icon:    collectionIcon(c),
			Text:    c.Name,
			Divider: hasWorkspace && first,
		})
		first = false
	}

	return options
}

// collectionIDFromValue maps an option value to a dialog collection id;
// the workspace becomes "".
func collectionIDFromValue(value string) string {
	if value == WorkspaceValue {
		return ""
	}
	return value
}

func valueFromCollectionID(collectionID string) string {
	if collectionID == "" {
		return WorkspaceValue
	}
	return collectionID
}

func teamLogo(team model.Team) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))
	if team.Color != "" {
		style = style.Background(lipgloss.Color(team.Color))
	}
	return style.Render(team.Initials())
}

func collectionIcon(c model.Collection) string {
	icon := c.Icon
	if icon == "" {
		icon = "▪"
	}
	style := lipgloss.NewStyle()
	if c.Color != "" {
		style = style.Foreground(lipgloss.Color(c.Color))
	}
	return style.Render(icon)
}
