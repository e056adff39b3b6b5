package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReportStatus состояние отчёта
type ReportStatus string

const (
	StatusDraft      ReportStatus = "draft"      // Черновик: фото нет или оно ещё не проанализировано
	StatusAnalyzing  ReportStatus = "analyzing"  // Запрос к сервису анализа в процессе
	StatusConfirming ReportStatus = "confirming" // Ожидание подтверждения пользователем
	StatusSubmitted  ReportStatus = "submitted"  // Отчёт отправлен
)

// Report сессия одного отчёта о наводнении. Не потокобезопасна,
// синхронизация на стороне сервиса.
type Report struct {
	ID     string
	ChatID int64
	Status ReportStatus

	Image    *ImagePayload
	Location *GeoLocation
	Analysis *AnalysisResult

	// Копии оценок сервиса, которые правит пользователь
	EditedPeopleCount int
	EditedAnimalCount int
	UserNote          string

	Error         ErrorCode // последняя ошибка отчёта
	LocationError ErrorCode // последняя ошибка геолокации

	UpdatedAt   time.Time
	SubmittedAt time.Time
}

// NewReport создаёт пустой черновик
func NewReport(chatID int64) *Report {
	return &Report{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Status:    StatusDraft,
		UpdatedAt: time.Now(),
	}
}

// SelectImage прикрепляет фото и сбрасывает прежний анализ
func (r *Report) SelectImage(payload ImagePayload) error {
	if r.Status != StatusDraft {
		return ErrInvalidTransition
	}
	if payload == "" {
		r.Error = CodeNoImageSelected
		return &InputError{Code: CodeNoImageSelected}
	}
	r.Image = &payload
	r.clearAnalysis()
	r.Error = ""
	r.touch()
	return nil
}

// RejectImage фиксирует отказ в приёме файла, прежнее фото остаётся
func (r *Report) RejectImage(code ErrorCode) error {
	if r.Status != StatusDraft {
		return ErrInvalidTransition
	}
	r.Error = code
	r.touch()
	return nil
}

// RemoveImage удаляет фото вместе с анализом
func (r *Report) RemoveImage() error {
	if r.Status != StatusDraft {
		return ErrInvalidTransition
	}
	r.Image = nil
	r.clearAnalysis()
	r.Error = ""
	r.touch()
	return nil
}

// SetLocation сохраняет полученные координаты
func (r *Report) SetLocation(loc GeoLocation) error {
	if !r.CanChangeLocation() {
		return ErrInvalidTransition
	}
	r.Location = &loc
	r.LocationError = ""
	r.touch()
	return nil
}

// FailLocation фиксирует ошибку геолокации. Старые координаты не сохраняются.
func (r *Report) FailLocation(code ErrorCode) error {
	if !r.CanChangeLocation() {
		return ErrInvalidTransition
	}
	r.Location = nil
	r.LocationError = code
	r.touch()
	return nil
}

// ClearLocation сбрасывает координаты
func (r *Report) ClearLocation() error {
	if !r.CanChangeLocation() {
		return ErrInvalidTransition
	}
	r.Location = nil
	r.LocationError = ""
	r.touch()
	return nil
}

// BeginAnalysis переводит черновик в состояние анализа.
// Без координат требуется явное согласие пользователя (allowMissingLocation).
func (r *Report) BeginAnalysis(allowMissingLocation bool) error {
	if r.Status != StatusDraft {
		return ErrInvalidTransition
	}
	if r.Image == nil {
		r.Error = CodeNoImageSelected
		return &InputError{Code: CodeNoImageSelected}
	}
	if r.Location == nil && !allowMissingLocation {
		return &InputError{Code: CodeLocationRequired}
	}
	r.Status = StatusAnalyzing
	r.Error = ""
	r.touch()
	return nil
}

// CompleteAnalysis сохраняет результат и один раз копирует оценки в редактируемые поля
func (r *Report) CompleteAnalysis(result AnalysisResult) error {
	if r.Status != StatusAnalyzing {
		return ErrInvalidTransition
	}
	r.Analysis = &result
	r.EditedPeopleCount = clampCount(result.PeopleCount)
	r.EditedAnimalCount = clampCount(result.AnimalCount)
	r.Status = StatusConfirming
	r.touch()
	return nil
}

// FailAnalysis возвращает отчёт в черновик, фото и координаты остаются
func (r *Report) FailAnalysis(code ErrorCode) error {
	if r.Status != StatusAnalyzing {
		return ErrInvalidTransition
	}
	r.Error = code
	r.Status = StatusDraft
	r.touch()
	return nil
}

// AdjustPeopleCount изменяет число людей на delta, не опускаясь ниже нуля
func (r *Report) AdjustPeopleCount(delta int) error {
	if r.Status != StatusConfirming {
		return ErrInvalidTransition
	}
	r.EditedPeopleCount = clampCount(r.EditedPeopleCount + delta)
	r.touch()
	return nil
}

// AdjustAnimalCount изменяет число животных на delta, не опускаясь ниже нуля
func (r *Report) AdjustAnimalCount(delta int) error {
	if r.Status != StatusConfirming {
		return ErrInvalidTransition
	}
	r.EditedAnimalCount = clampCount(r.EditedAnimalCount + delta)
	r.touch()
	return nil
}

// SetPeopleCount задаёт число людей из текста, некорректный ввод даёт 0
func (r *Report) SetPeopleCount(input string) error {
	if r.Status != StatusConfirming {
		return ErrInvalidTransition
	}
	r.EditedPeopleCount = ParseCount(input)
	r.touch()
	return nil
}

// SetAnimalCount задаёт число животных из текста, некорректный ввод даёт 0
func (r *Report) SetAnimalCount(input string) error {
	if r.Status != StatusConfirming {
		return ErrInvalidTransition
	}
	r.EditedAnimalCount = ParseCount(input)
	r.touch()
	return nil
}

// SetUserNote сохраняет комментарий пользователя
func (r *Report) SetUserNote(text string) error {
	if r.Status != StatusConfirming {
		return ErrInvalidTransition
	}
	r.UserNote = text
	r.touch()
	return nil
}

// Submission собирает данные для отправки. Доступно только при подтверждении.
func (r *Report) Submission(now time.Time) (Submission, error) {
	if r.Status != StatusConfirming || r.Analysis == nil || r.Image == nil {
		return Submission{}, ErrInvalidTransition
	}
	var loc *GeoLocation
	if r.Location != nil {
		l := *r.Location
		loc = &l
	}
	return Submission{
		ReportID:    r.ID,
		ChatID:      r.ChatID,
		Image:       *r.Image,
		Location:    loc,
		Analysis:    *r.Analysis,
		PeopleCount: r.EditedPeopleCount,
		AnimalCount: r.EditedAnimalCount,
		Note:        r.UserNote,
		SubmittedAt: now,
	}, nil
}

// MarkSubmitted завершает отчёт
func (r *Report) MarkSubmitted(at time.Time) error {
	if r.Status != StatusConfirming {
		return ErrInvalidTransition
	}
	r.Status = StatusSubmitted
	r.Error = ""
	r.SubmittedAt = at
	r.touch()
	return nil
}

// FailSubmit оставляет отчёт в подтверждении с сообщением об ошибке
func (r *Report) FailSubmit() error {
	if r.Status != StatusConfirming {
		return ErrInvalidTransition
	}
	r.Error = CodeSubmitFailed
	r.touch()
	return nil
}

// Reset очищает все поля и начинает новый черновик. Во время анализа недоступно.
func (r *Report) Reset() error {
	if r.Status == StatusAnalyzing {
		return ErrInvalidTransition
	}
	*r = *NewReport(r.ChatID)
	return nil
}

// HasImage сообщает, прикреплено ли фото
func (r *Report) HasImage() bool {
	return r.Image != nil
}

// CanChangeLocation сообщает, можно ли сейчас менять координаты
func (r *Report) CanChangeLocation() bool {
	return r.Status == StatusDraft || r.Status == StatusConfirming
}

func (r *Report) clearAnalysis() {
	r.Analysis = nil
	r.EditedPeopleCount = 0
	r.EditedAnimalCount = 0
}

func (r *Report) touch() {
	r.UpdatedAt = time.Now()
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ParseCount разбирает число из начала строки: "12abc" → 12.
// Пустой, нечисловой или отрицательный ввод даёт 0.
func ParseCount(input string) int {
	s := strings.TrimSpace(input)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return clampCount(n)
}
