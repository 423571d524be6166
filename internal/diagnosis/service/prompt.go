package service

import (
	"fmt"
	"strings"

	"kisan_backend/internal/directory/repository"
)

const noDoctorsPlaceholder = "No doctors available."

const promptTemplate = `This is an image of a crop. %s

Based on the visible symptoms and the user’s description, please:
1. Diagnose the disease affecting the crop.
2. Explain the causes and possible remedies.
3. Suggest the best matching doctor from the list below who can help, including name and mobile number.

Doctors available:
%s
`

// BuildPrompt composes the diagnosis prompt with one bullet per doctor in
// input order.
func BuildPrompt(description string, doctors []repository.Doctor) string {
	return fmt.Sprintf(promptTemplate, description, doctorBlock(doctors))
}

func doctorBlock(doctors []repository.Doctor) string {
	if len(doctors) == 0 {
		return noDoctorsPlaceholder
	}
	lines := make([]string, 0, len(doctors))
	for _, d := range doctors {
		lines = append(lines, fmt.Sprintf("- Dr. %s, Specialist in %s, Mobile: %s", d.Name, d.Specialty, d.Mobile))
	}
	return strings.Join(lines, "\n")
}
