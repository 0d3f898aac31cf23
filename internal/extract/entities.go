package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// EntityType labels an extracted entity.
type EntityType string

const (
	EntityPerson       EntityType = "PERSON"
	EntityEmail        EntityType = "EMAIL"
	EntityPhone        EntityType = "PHONE"
	EntityURL          EntityType = "URL"
	EntityLinkedIn     EntityType = "LINKEDIN"
	EntityGitHub       EntityType = "GITHUB"
	EntityEducation    EntityType = "EDUCATION"
	EntityOrganization EntityType = "ORGANIZATION"
	EntityExperience   EntityType = "EXPERIENCE"
)

// Entity is a (text, type) pair extracted from raw resume text.
type Entity struct {
	Text string
	Type EntityType
}

var (
	reEmail = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)

	// Three phone shapes tried in sequence: international or parenthesized
	// US format, simple dashed format, unseparated ten digits.
	rePhones = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:\+\d{1,3}\s?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}\b`),
		regexp.MustCompile(`\b(?:\+\d{1,3}\s?)?\d{3}[\s.\-]?\d{3}[\s.\-]?\d{4}\b`),
		regexp.MustCompile(`\b(?:\+\d{1,3}\s?)?\d{10}\b`),
	}

	reURL      = regexp.MustCompile(`(?i)https?://\S+`)
	reLinkedIn = regexp.MustCompile(`(?i)linkedin\.com/in/\S+`)
	reGitHub   = regexp.MustCompile(`(?i)github\.com/[^\s/]+`)

	reEducation = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:Bachelor|Master|PhD|MBA|B\.S\.|M\.S\.|B\.A\.|M\.A\.|B\.Sc\.|M\.Sc\.)[^\n]*`),
		regexp.MustCompile(`(?i)\b(?:Certified|Certification)\s+[A-Za-z\s]+`),
		regexp.MustCompile(`(?i)\b(?:AWS|Azure|Google|Microsoft|Oracle|Cisco)\s+Certified[^\n]*`),
	}

	reExperience = regexp.MustCompile(`(?i)\b(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)\b`)

	reDigit = regexp.MustCompile(`\d`)
)

var headerKeywords = []string{"resume", "cv", "curriculum", "profile", "summary"}

var companySuffixes = []string{
	"inc", "corp", "ltd", "llc", "company", "corporation",
	"limited", "technologies", "systems", "solutions",
}

// Entities heuristically extracts contact, identity and experience entities
// from raw (non-normalized) text. Line breaks and casing are needed for the
// name and organization heuristics, so callers must not normalize first.
// The result is deduplicated by case-insensitive (text, type) key with the
// first occurrence kept; order follows the fixed extraction sequence.
func Entities(text string) []Entity {
	if text == "" {
		return nil
	}

	var entities []Entity

	if name, ok := personFromHeader(text); ok {
		entities = append(entities, Entity{Text: name, Type: EntityPerson})
	}

	for _, email := range reEmail.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: email, Type: EntityEmail})
	}

	for _, re := range rePhones {
		for _, phone := range re.FindAllString(text, -1) {
			entities = append(entities, Entity{Text: strings.TrimSpace(phone), Type: EntityPhone})
		}
	}

	for _, url := range reURL.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: url, Type: EntityURL})
	}
	for _, profile := range reLinkedIn.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: profile, Type: EntityLinkedIn})
	}
	for _, profile := range reGitHub.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: profile, Type: EntityGitHub})
	}

	for _, re := range reEducation {
		for _, degree := range re.FindAllString(text, -1) {
			entities = append(entities, Entity{Text: strings.TrimSpace(degree), Type: EntityEducation})
		}
	}

	entities = append(entities, organizations(text)...)

	for _, match := range reExperience.FindAllStringSubmatch(text, -1) {
		entities = append(entities, Entity{
			Text: fmt.Sprintf("%s years experience", match[1]),
			Type: EntityExperience,
		})
	}

	return dedupEntities(entities)
}

// personFromHeader scans at most the first three non-empty lines for a
// candidate name: up to four tokens, no digits, no header keyword. The
// first qualifying line wins.
func personFromHeader(text string) (string, bool) {
	scanned := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		scanned++
		if scanned > 3 {
			break
		}

		if len(strings.Fields(line)) > 4 || reDigit.MatchString(line) {
			continue
		}
		if containsAny(strings.ToLower(line), headerKeywords) {
			continue
		}
		return line, true
	}
	return "", false
}

// organizations returns lines that carry a company-suffix keyword and have a
// reasonable company name length.
func organizations(text string) []Entity {
	var entities []Entity
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(strings.Fields(line)) > 6 {
			continue
		}
		if containsAny(strings.ToLower(line), companySuffixes) {
			entities = append(entities, Entity{Text: line, Type: EntityOrganization})
		}
	}
	return entities
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func dedupEntities(entities []Entity) []Entity {
	type key struct {
		text string
		typ  EntityType
	}

	seen := make(map[key]struct{}, len(entities))
	out := make([]Entity, 0, len(entities))
	for _, entity := range entities {
		k := key{text: strings.ToLower(entity.Text), typ: entity.Type}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, entity)
	}
	return out
}

// PersonName returns the first PERSON entity text, or empty when none was
// extracted.
func PersonName(entities []Entity) string {
	for _, entity := range entities {
		if entity.Type == EntityPerson {
			return entity.Text
		}
	}
	return ""
}
