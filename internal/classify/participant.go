package classify

import "strings"

// Participant eligibility labels. A record may carry several at once.
const (
	ParticipantUniversity = "Mahasiswa"
	ParticipantSenior     = "Siswa SMA / Sederajat"
	ParticipantJunior     = "Siswa SMP / Sederajat"
	ParticipantPrimary    = "Siswa SD / Sederajat"
	ParticipantPublic     = "Umum"
	ParticipantGapYear    = "Gapyear"
	ParticipantOther      = "Lainnya"
)

type keywordFamily struct {
	label    string
	keywords []string
}

// participantFamilies is evaluated in order; the order is also the order of
// labels returned by CategorizeParticipant.
var participantFamilies = []keywordFamily{
	{ParticipantUniversity, []string{"mahasiswa", "d3", "d4", "s1"}},
	{ParticipantSenior, []string{"sma", "smk"}},
	{ParticipantJunior, []string{"smp", "mts"}},
	{ParticipantPrimary, []string{"sd", "mi"}},
	{ParticipantPublic, []string{"umum"}},
	{ParticipantGapYear, []string{"gapyear", "gap year"}},
}

// CategorizeParticipant maps an eligibility description to its set of labels.
// Each label appears at most once however many of its keywords match; text
// matching no family yields only ParticipantOther.
func CategorizeParticipant(text string) []string {
	t := strings.ToLower(text)
	if strings.TrimSpace(t) == "" {
		return []string{ParticipantOther}
	}

	var labels []string
	for _, fam := range participantFamilies {
		for _, kw := range fam.keywords {
			if strings.Contains(t, kw) {
				labels = append(labels, fam.label)
				break
			}
		}
	}
	if len(labels) == 0 {
		return []string{ParticipantOther}
	}
	return labels
}

// HasParticipantCategory reports whether text classifies into category.
// Empty text or an empty category never matches.
func HasParticipantCategory(text, category string) bool {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(category) == "" {
		return false
	}
	for _, label := range CategorizeParticipant(text) {
		if strings.EqualFold(label, strings.TrimSpace(category)) {
			return true
		}
	}
	return false
}

// ParticipantLabels returns the union of labels over all texts, sorted.
// Blank texts contribute nothing.
func ParticipantLabels(texts []string) []string {
	var labels []string
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		labels = append(labels, CategorizeParticipant(t)...)
	}
	return SortedDistinct(labels)
}
