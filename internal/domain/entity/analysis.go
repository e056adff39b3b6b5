package entity

// Urgency уровень срочности ситуации на фото
type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyMedium   Urgency = "Medium"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

// Urgencies перечисляет допустимые значения в порядке возрастания
var Urgencies = []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}

// Valid сообщает, входит ли значение в перечисление
func (u Urgency) Valid() bool {
	for _, v := range Urgencies {
		if u == v {
			return true
		}
	}
	return false
}

// AnalysisResult оценка сервиса распознавания. После получения не изменяется.
type AnalysisResult struct {
	PeopleCount   int     // оценка числа людей
	AnimalCount   int     // оценка числа животных
	HasVulnerable bool    // есть ли пожилые, дети, лежачие или люди с инвалидностью
	Urgency       Urgency // срочность
	Reasoning     string  // краткое обоснование срочности
	Description   string  // описание обстановки
}
