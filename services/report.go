package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/Dosada05/tournament-results/models"
)

const progressBarWidth = 20

// SportBracket is one sport's bracket as shown in the report.
type SportBracket struct {
	Sport      string
	Complete   bool
	Placement  *models.Placement
	Semifinals []models.Match
	Final      *models.Match
	ThirdPlace *models.Match
}

type ReportData struct {
	GeneratedAt time.Time
	Mode        models.ScoringMode
	Standings   []models.Standing
	Brackets    []SportBracket
	// Matchups are listed newest first.
	Matchups []models.Match
}

// NewReportData assembles report input from stored state. Placements may be
// nil outside bracket mode.
func NewReportData(mode models.ScoringMode, standings []models.Standing, matches []models.Match, placements []models.Placement, now time.Time) ReportData {
	byPlacement := make(map[string]models.Placement, len(placements))
	for _, p := range placements {
		byPlacement[p.Sport] = p
	}

	data := ReportData{
		GeneratedAt: now,
		Mode:        mode,
		Standings:   standings,
	}

	groups := GroupBySport(matches)
	for _, sport := range sortedSports(groups) {
		b := SportBracket{Sport: sport}
		for _, m := range groups[sport] {
			switch m.Stage {
			case models.StageSemifinal:
				b.Semifinals = append(b.Semifinals, m)
			case models.StageFinal:
				if b.Final == nil {
					m := m
					b.Final = &m
				}
			case models.StageThirdPlace:
				if b.ThirdPlace == nil {
					m := m
					b.ThirdPlace = &m
				}
			}
		}
		if len(b.Semifinals) == 0 && b.Final == nil && b.ThirdPlace == nil {
			continue
		}
		if p, ok := byPlacement[sport]; ok {
			p := p
			b.Placement = &p
			b.Complete = true
		}
		data.Brackets = append(data.Brackets, b)
	}

	data.Matchups = make([]models.Match, len(matches))
	copy(data.Matchups, matches)
	sort.SliceStable(data.Matchups, func(i, j int) bool {
		return data.Matchups[i].ID > data.Matchups[j].ID
	})
	return data
}

var reportFuncs = template.FuncMap{
	"bar":   progressBar,
	"score": formatScore,
	"pct": func(s models.Standing) string {
		return fmt.Sprintf("%.0f%%", s.Progress())
	},
	"when": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04 UTC")
	},
}

var reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(`# Tournament standings

_Updated {{ when .GeneratedAt }} · scoring: {{ .Mode }}_

## Rankings

| # | Team | Points | Played | W | D | L | Progress |
|---|------|-------:|-------:|--:|--:|--:|----------|
{{- range .Standings }}
| {{ .Rank }} | <span style="color:{{ .Color }}">■</span> {{ .Team }} | {{ .Points }} | {{ .GamesPlayed }} | {{ .Wins }} | {{ .Draws }} | {{ .Losses }} | ` + "`{{ bar . }}`" + ` {{ pct . }} |
{{- else }}
| – | no teams registered | | | | | | |
{{- end }}
{{ if .Brackets }}
## Brackets
{{ range .Brackets }}
### {{ .Sport }}{{ if not .Complete }} (in progress){{ end }}

` + "```" + `
{{- range .Semifinals }}
SF  {{ score . }}
{{- end }}
{{- if .Final }}
F   {{ score .Final }}
{{- else }}
F   awaiting semifinals
{{- end }}
{{- if .ThirdPlace }}
3P  {{ score .ThirdPlace }}
{{- end }}
` + "```" + `
{{ with .Placement }}
1st **{{ .First }}** · 2nd {{ .Second }} · 3rd {{ .Third }} · 4th {{ .Fourth }}
{{ end }}
{{- end }}
{{- end }}
## Matchups

| Sport | Match | Score | Status |
|-------|-------|-------|--------|
{{- range .Matchups }}
| {{ .Sport }} | {{ .ParticipantA }} vs {{ .ParticipantB }} | {{ if .IsFinished }}{{ .ScoreA }}–{{ .ScoreB }}{{ else }}–{{ end }} | {{ .Status }} |
{{- end }}
`))

// RenderReport renders the markdown report.
func RenderReport(data ReportData) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

func progressBar(s models.Standing) string {
	filled := int(s.Progress() / 100 * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
}

func formatScore(m models.Match) string {
	if !m.IsFinished() {
		return fmt.Sprintf("%s vs %s (%s)", m.ParticipantA, m.ParticipantB, m.Status)
	}
	return fmt.Sprintf("%s %d - %d %s", m.ParticipantA, m.ScoreA, m.ScoreB, m.ParticipantB)
}
