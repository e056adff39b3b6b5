package entity

import "time"

// Submission данные подтверждённого отчёта, передаваемые получателю
type Submission struct {
	ReportID    string
	ChatID      int64
	Image       ImagePayload
	Location    *GeoLocation
	Analysis    AnalysisResult
	PeopleCount int // значение, исправленное пользователем
	AnimalCount int // значение, исправленное пользователем
	Note        string
	SubmittedAt time.Time
}
