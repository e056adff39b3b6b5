package analysis

import (
	"fmt"

	"flood-report-bot/internal/domain/entity"
)

type fieldKind int

const (
	kindNumber fieldKind = iota
	kindBoolean
	kindString
	kindUrgency
)

type field struct {
	Name string
	Kind fieldKind
	Hint string
}

// responseFields обязательные ключи ответа в порядке схемы
var responseFields = []field{
	{Name: "peopleCount", Kind: kindNumber, Hint: "estimated number of people visible in the photo"},
	{Name: "animalCount", Kind: kindNumber, Hint: "estimated number of animals visible in the photo"},
	{Name: "hasVulnerable", Kind: kindBoolean, Hint: "true if bedridden, elderly, small children or disabled people who cannot help themselves are present"},
	{Name: "urgency", Kind: kindUrgency, Hint: "one of 'Low', 'Medium', 'High', 'Critical'"},
	{Name: "reasoning", Kind: kindString, Hint: "short justification of the urgency level"},
	{Name: "description", Kind: kindString, Hint: "surroundings, water level and other observations"},
}

var languageNames = map[entity.Language]string{
	entity.LangThai:    "Thai",
	entity.LangEnglish: "English",
}

func requiredFieldNames() []string {
	names := make([]string, 0, len(responseFields))
	for _, f := range responseFields {
		names = append(names, f.Name)
	}
	return names
}

func urgencyValues() []string {
	values := make([]string, 0, len(entity.Urgencies))
	for _, u := range entity.Urgencies {
		values = append(values, string(u))
	}
	return values
}

// Instruction формирует неизменный текст задания для модели
func Instruction(lang entity.Language) string {
	name, ok := languageNames[lang]
	if !ok {
		name = languageNames[entity.LangThai]
	}

	prompt := `You are an expert in rescue operations and disaster situation assessment.
Analyze this flood photo to estimate how much help is needed.
Reply in JSON format only, with exactly these keys:
`
	for _, f := range responseFields {
		prompt += fmt.Sprintf("- %s: (%s) %s\n", f.Name, kindLabel(f.Kind), f.Hint)
	}
	prompt += fmt.Sprintf("Write reasoning and description in %s, short and to the point.\n", name)
	return prompt
}

func kindLabel(k fieldKind) string {
	switch k {
	case kindNumber:
		return "number"
	case kindBoolean:
		return "boolean"
	default:
		return "string"
	}
}
