// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/daniel/talent-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for the rank command.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequirement outputs a human-readable summary of the extracted
// requirement record.
func (p *Printer) PrintRequirement(req *types.RequirementRecord) {
	if req == nil {
		return
	}

	var sb strings.Builder

	if req.Role != nil {
		sb.WriteString(fmt.Sprintf("Role:       %s\n", *req.Role))
	}
	if req.Location != nil {
		sb.WriteString(fmt.Sprintf("Location:   %s\n", *req.Location))
	}
	if req.ExperienceYears != nil {
		sb.WriteString(fmt.Sprintf("Experience: %d+ years\n", *req.ExperienceYears))
	}
	if req.Education != nil {
		sb.WriteString(fmt.Sprintf("Education:  %s\n", *req.Education))
	}

	if len(req.Skills) > 0 {
		sb.WriteString("\nRequired Skills:\n")
		count := min(len(req.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", req.Skills[i]))
		}
		if len(req.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(req.Skills)-maxItemsToShow))
		}
	}

	if len(req.Keywords) > 0 {
		keywords := strings.Join(req.Keywords, ", ")
		sb.WriteString(fmt.Sprintf("\nKeywords: %s\n", keywords))
	}
	if len(req.ProjectKeywords) > 0 {
		keywords := strings.Join(req.ProjectKeywords, ", ")
		sb.WriteString(fmt.Sprintf("Project Keywords: %s\n", keywords))
	}

	p.printBox("EXTRACTED REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the ranked candidates with their score breakdowns.
func (p *Printer) PrintRanking(result *types.RankingResult) {
	if result == nil || len(result.Candidates) == 0 {
		p.printBox("RANKED CANDIDATES", "No candidates in the pool.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates ranked: %d\n\n", len(result.Candidates)))

	count := min(len(result.Candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		ranked := result.Candidates[i]
		b := ranked.Breakdown

		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, ranked.Candidate.Name))
		sb.WriteString(fmt.Sprintf("    Total: %.1f  (skill %.1f, exp %.1f, role %.1f,\n",
			b.TotalScore, b.SkillScore, b.ExperienceScore, b.RoleScore))
		sb.WriteString(fmt.Sprintf("    location %.1f, keyword %.1f)\n", b.LocationScore, b.KeywordScore))

		if len(b.MatchedSkills) > 0 {
			skills := strings.Join(b.MatchedSkills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if b.CandidateExperience != "" {
			sb.WriteString(fmt.Sprintf("    Experience: %s", b.CandidateExperience))
			if b.RequiredExperience != "" {
				sb.WriteString(fmt.Sprintf(" (required %s)", b.RequiredExperience))
			}
			sb.WriteString("\n")
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(result.Candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(result.Candidates)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", sb.String())
}

// PrintRerank outputs the advisory AI ordering next to the deterministic one.
// The entries are looked up in the deterministic result so each line can show
// a name rather than a bare ID.
func (p *Printer) PrintRerank(rerank *types.RerankResult, deterministic *types.RankingResult) {
	if rerank == nil || len(rerank.Order) == 0 {
		return
	}

	names := make(map[string]string)
	if deterministic != nil {
		for _, ranked := range deterministic.Candidates {
			names[ranked.Candidate.ID.String()] = ranked.Candidate.Name
		}
	}

	var sb strings.Builder
	for i, entry := range rerank.Order {
		name := names[entry.CandidateID.String()]
		if name == "" {
			name = entry.CandidateID.String()
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, name))
		if entry.Summary != "" {
			summary := entry.Summary
			if len(summary) > 48 {
				summary = summary[:45] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", summary))
		}
		if i < len(rerank.Order)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("AI RERANK (advisory)", strings.TrimSuffix(sb.String(), "\n"))
}
