package analysis

import (
	"fmt"
	"strings"

	"github.com/daniel/talent-ranker/internal/types"
)

// BuildProfileDocument renders a candidate as a plain-text document for the
// analysis prompt. When resume text is stored it is used as-is; otherwise
// the document is assembled from the structured candidate rows. Only fields
// that are actually present appear in the output.
func BuildProfileDocument(bundle *types.CandidateBundle) string {
	if strings.TrimSpace(bundle.ResumeText) != "" {
		return bundle.ResumeText
	}

	var sb strings.Builder
	snap := bundle.Snapshot

	sb.WriteString("Name: " + snap.Name + "\n")
	sb.WriteString("Email: " + snap.Email + "\n")
	if bundle.Phone != "" {
		sb.WriteString("Phone: " + bundle.Phone + "\n")
	}
	if snap.Location != "" {
		sb.WriteString("Location: " + snap.Location + "\n")
	}
	if snap.LinkedInURL != "" {
		sb.WriteString("LinkedIn: " + snap.LinkedInURL + "\n")
	}
	if bundle.GitHubURL != "" {
		sb.WriteString("GitHub: " + bundle.GitHubURL + "\n")
	}

	if len(snap.Skills) > 0 {
		sb.WriteString("\nSkills: " + strings.Join(snap.Skills, ", ") + "\n")
	}

	if len(snap.Experiences) > 0 {
		sb.WriteString("\nExperience:\n")
		for _, exp := range snap.Experiences {
			sb.WriteString("- " + exp.Role)
			if exp.Company != "" {
				sb.WriteString(" at " + exp.Company)
			}
			sb.WriteString(fmt.Sprintf(" (%s to %s)", formatDate(exp.StartDate), formatDate(exp.EndDate)))
			sb.WriteString("\n")
			if exp.Description != "" {
				sb.WriteString("  " + exp.Description + "\n")
			}
		}
	}

	if len(bundle.Projects) > 0 {
		sb.WriteString("\nProjects:\n")
		for _, p := range bundle.Projects {
			sb.WriteString("- " + p.Name)
			if p.Description != "" {
				sb.WriteString(": " + p.Description)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func formatDate(d types.Date) string {
	if d.IsAbsent() {
		return "present"
	}
	return d.Format("2006-01")
}
