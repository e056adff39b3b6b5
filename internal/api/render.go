package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"flood-report-bot/internal/domain/entity"
)

// Данные кнопок
const (
	cbAnalyze       = "analyze"
	cbAnalyzeAnyway = "analyze_anyway"
	cbRemoveImage   = "remove_image"
	cbClearLocation = "clear_location"
	cbSubmit        = "submit"
	cbNewReport     = "new_report"
	cbPeople        = "people"
	cbAnimals       = "animals"
)

// callback разобранные данные нажатой кнопки
type callback struct {
	Action string
	Delta  int
}

// parseCallback разбирает строку вида "action" или "action:delta"
func parseCallback(data string) (callback, bool) {
	action, rawDelta, hasDelta := strings.Cut(data, ":")
	switch action {
	case cbAnalyze, cbAnalyzeAnyway, cbRemoveImage, cbClearLocation, cbSubmit, cbNewReport:
		if hasDelta {
			return callback{}, false
		}
		return callback{Action: action}, true
	case cbPeople, cbAnimals:
		delta, err := strconv.Atoi(rawDelta)
		if !hasDelta || err != nil || delta == 0 {
			return callback{}, false
		}
		return callback{Action: action, Delta: delta}, true
	}
	return callback{}, false
}

func deltaData(action string, delta int) string {
	return fmt.Sprintf("%s:%+d", action, delta)
}

// renderReport собирает текст карточки отчёта
func renderReport(r entity.Report, lang entity.Language) string {
	t := textsFor(lang)
	var b strings.Builder

	b.WriteString(statusTitle(r.Status, t))
	b.WriteString("\n\n")

	if r.HasImage() {
		b.WriteString(t.Photo)
	} else {
		b.WriteString(t.PhotoMissing)
	}
	b.WriteString("\n")

	if r.Location != nil {
		fmt.Fprintf(&b, "%s: %.5f, %.5f", t.Location, r.Location.Latitude, r.Location.Longitude)
		if r.Location.Accuracy > 0 {
			fmt.Fprintf(&b, " (±%.0f m)", r.Location.Accuracy)
		}
	} else {
		b.WriteString(t.LocationMissing)
	}
	b.WriteString("\n")
	if r.LocationError != "" {
		fmt.Fprintf(&b, "⚠️ %s\n", r.LocationError.Message(lang))
	}

	if r.Analysis != nil {
		a := r.Analysis
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s: %s\n", t.Urgency, urgencyBadge(a.Urgency))
		fmt.Fprintf(&b, "%s: %s\n", t.Vulnerable, yesNo(a.HasVulnerable, t))
		fmt.Fprintf(&b, "%s: %d (%s %d)\n", t.People, r.EditedPeopleCount, t.Estimate, a.PeopleCount)
		fmt.Fprintf(&b, "%s: %d (%s %d)\n", t.Animals, r.EditedAnimalCount, t.Estimate, a.AnimalCount)
		if a.Description != "" {
			fmt.Fprintf(&b, "\n%s: %s\n", t.Description, a.Description)
		}
		if a.Reasoning != "" {
			fmt.Fprintf(&b, "%s: %s\n", t.Reasoning, a.Reasoning)
		}
		if r.UserNote != "" {
			fmt.Fprintf(&b, "%s: %s\n", t.Note, r.UserNote)
		}
	}

	if r.Error != "" {
		fmt.Fprintf(&b, "\n⚠️ %s", r.Error.Message(lang))
	}

	return strings.TrimRight(b.String(), "\n")
}

func statusTitle(status entity.ReportStatus, t texts) string {
	switch status {
	case entity.StatusAnalyzing:
		return t.StatusAnalyzing
	case entity.StatusConfirming:
		return t.StatusConfirming
	case entity.StatusSubmitted:
		return t.StatusSubmitted
	default:
		return t.StatusDraft
	}
}

func urgencyBadge(u entity.Urgency) string {
	switch u {
	case entity.UrgencyCritical:
		return "🔴 " + string(u)
	case entity.UrgencyHigh:
		return "🟠 " + string(u)
	case entity.UrgencyMedium:
		return "🟡 " + string(u)
	default:
		return "🟢 " + string(u)
	}
}

func yesNo(v bool, t texts) string {
	if v {
		return t.Yes
	}
	return t.No
}

// reportKeyboard возвращает кнопки для текущего состояния; во время анализа кнопок нет
func reportKeyboard(r entity.Report, lang entity.Language) *tgbotapi.InlineKeyboardMarkup {
	t := textsFor(lang)
	var rows [][]tgbotapi.InlineKeyboardButton

	switch r.Status {
	case entity.StatusDraft:
		if r.HasImage() {
			rows = append(rows,
				tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(t.BtnAnalyze, cbAnalyze)),
				tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(t.BtnRemoveImage, cbRemoveImage)),
			)
		}
		if r.Location != nil {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(t.BtnClearLocation, cbClearLocation)))
		}

	case entity.StatusAnalyzing:
		return nil

	case entity.StatusConfirming:
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(t.BtnPeople+" −1", deltaData(cbPeople, -1)),
				tgbotapi.NewInlineKeyboardButtonData(t.BtnPeople+" +1", deltaData(cbPeople, 1)),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(t.BtnAnimals+" −1", deltaData(cbAnimals, -1)),
				tgbotapi.NewInlineKeyboardButtonData(t.BtnAnimals+" +1", deltaData(cbAnimals, 1)),
			),
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(t.BtnSubmit, cbSubmit)),
		)
		if r.Location != nil {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(t.BtnClearLocation, cbClearLocation)))
		}
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(t.BtnNewReport, cbNewReport)))
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

// missingLocationKeyboard предлагает продолжить без координат
func missingLocationKeyboard(lang entity.Language) tgbotapi.InlineKeyboardMarkup {
	t := textsFor(lang)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(t.BtnAnalyzeAnyway, cbAnalyzeAnyway)),
	)
}

// locationRequestKeyboard обычная клавиатура с кнопкой отправки геопозиции
func locationRequestKeyboard(lang entity.Language) tgbotapi.ReplyKeyboardMarkup {
	t := textsFor(lang)
	kb := tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonLocation(t.BtnShareLocation)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// parseCommandArg возвращает аргумент команды без пробелов по краям
func parseCommandArg(msg *tgbotapi.Message) string {
	return strings.TrimSpace(msg.CommandArguments())
}
