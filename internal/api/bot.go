package telegram

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	app "flood-report-bot/internal/application"
	"flood-report-bot/internal/domain/entity"
	"flood-report-bot/internal/domain/port"
	"flood-report-bot/internal/infrastructure/location"
)

// botAPI часть tgbotapi.BotAPI, которой пользуется бот
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
}

// Options настройки бота
type Options struct {
	Language      entity.Language
	MaxImageBytes int
}

// Bot представляет Telegram-бота
type Bot struct {
	api      botAPI
	updates  *tgbotapi.BotAPI
	fileURL  func(tgbotapi.File) string
	http     *http.Client
	reports  *app.ReportService
	lang     entity.Language
	maxBytes int

	inflight sync.WaitGroup
}

// NewBot создаёт нового бота
func NewBot(token string, reports *app.ReportService, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "create telegram api")
	}

	log.WithField("account", api.Self.UserName).Info("authorized on telegram")

	b := newBot(api, func(f tgbotapi.File) string { return f.Link(api.Token) }, reports, opts)
	b.updates = api
	return b, nil
}

func newBot(api botAPI, fileURL func(tgbotapi.File) string, reports *app.ReportService, opts Options) *Bot {
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = app.DefaultMaxImageBytes
	}
	return &Bot{
		api:      api,
		fileURL:  fileURL,
		http:     http.DefaultClient,
		reports:  reports,
		lang:     entity.ParseLanguage(string(opts.Language)),
		maxBytes: opts.MaxImageBytes,
	}
}

// Run запускает основной цикл обработки обновлений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	if b.updates == nil {
		return errors.New("bot has no update source")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.updates.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.updates.StopReceivingUpdates()
			b.inflight.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				b.inflight.Wait()
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	switch {
	case len(msg.Photo) > 0:
		// Файл с максимальным разрешением
		photo := msg.Photo[len(msg.Photo)-1]
		b.handleImage(ctx, chatID, photo.FileID, false)

	case msg.Document != nil:
		b.handleImage(ctx, chatID, msg.Document.FileID, true)

	case msg.Location != nil:
		fix := entity.GeoLocation{
			Latitude:  msg.Location.Latitude,
			Longitude: msg.Location.Longitude,
			Accuracy:  msg.Location.HorizontalAccuracy,
		}
		b.sendWithMarkup(chatID, textsFor(b.lang).LocationReceived, tgbotapi.NewRemoveKeyboard(true))
		b.acquireLocation(ctx, chatID, location.Fixed{Fix: fix, Forwarded: msg.ForwardDate != 0})

	default:
		b.sendMessage(chatID, textsFor(b.lang).SendPhoto)
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	t := textsFor(b.lang)

	switch msg.Command() {
	case "start":
		b.sendMessage(chatID, t.Start)
		b.showReport(ctx, chatID)

	case "help":
		b.sendMessage(chatID, t.Help)

	case "new":
		report, err := b.reports.Reset(ctx, chatID)
		b.reply(chatID, report, err)

	case "locate":
		if !msg.Chat.IsPrivate() {
			b.sendMessage(chatID, t.LocationGroup)
			b.acquireLocation(ctx, chatID, location.Unsupported{})
			return
		}
		b.sendWithMarkup(chatID, t.ShareLocation, locationRequestKeyboard(b.lang))

	case "people", "animals":
		arg := parseCommandArg(msg)
		if arg == "" {
			b.sendMessage(chatID, t.CountUsage)
			return
		}
		var report entity.Report
		var err error
		if msg.Command() == "people" {
			report, err = b.reports.SetPeopleCount(ctx, chatID, arg)
		} else {
			report, err = b.reports.SetAnimalCount(ctx, chatID, arg)
		}
		b.reply(chatID, report, err)

	case "note":
		arg := parseCommandArg(msg)
		if arg == "" {
			b.sendMessage(chatID, t.NoteUsage)
			return
		}
		report, err := b.reports.SetUserNote(ctx, chatID, arg)
		b.reply(chatID, report, err)

	default:
		b.sendMessage(chatID, t.UnknownCommand)
	}
}

// handleCallback обрабатывает нажатия inline-кнопок
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		log.WithError(err).Warn("answer callback failed")
	}
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID

	cb, ok := parseCallback(cq.Data)
	if !ok {
		log.WithField("data", cq.Data).Warn("unknown callback data")
		return
	}

	var (
		report entity.Report
		err    error
	)
	switch cb.Action {
	case cbAnalyze:
		b.startAnalysis(ctx, chatID, false)
		return
	case cbAnalyzeAnyway:
		b.startAnalysis(ctx, chatID, true)
		return
	case cbRemoveImage:
		report, err = b.reports.RemoveImage(ctx, chatID)
	case cbClearLocation:
		report, err = b.reports.ClearLocation(ctx, chatID)
	case cbPeople:
		report, err = b.reports.AdjustPeopleCount(ctx, chatID, cb.Delta)
	case cbAnimals:
		report, err = b.reports.AdjustAnimalCount(ctx, chatID, cb.Delta)
	case cbSubmit:
		report, err = b.reports.Submit(ctx, chatID)
		if err == nil {
			b.sendMessage(chatID, textsFor(b.lang).Submitted)
		}
	case cbNewReport:
		report, err = b.reports.Reset(ctx, chatID)
	}
	b.reply(chatID, report, err)
}

// handleImage скачивает файл и прикрепляет его к черновику.
// Для документов без координат в отчёте пробует взять точку из EXIF.
func (b *Bot) handleImage(ctx context.Context, chatID int64, fileID string, document bool) {
	data, err := b.downloadFile(ctx, fileID)
	if err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("download image failed")
		b.sendMessage(chatID, textsFor(b.lang).InternalError)
		return
	}

	report, err := b.reports.SelectImage(ctx, chatID, data)
	if err == nil && document && report.Location == nil {
		if fix, exifErr := location.PhotoFix(data); exifErr == nil {
			log.WithField("chat_id", chatID).Info("using location from photo exif")
			b.acquireLocation(ctx, chatID, location.Fixed{Fix: fix})
			return
		}
	}
	b.reply(chatID, report, err)
}

func (b *Bot) acquireLocation(ctx context.Context, chatID int64, provider port.LocationProvider) {
	report, err := b.reports.AcquireLocation(ctx, chatID, provider)
	b.reply(chatID, report, err)
}

// startAnalysis запускает анализ и ждёт результата в отдельной горутине
func (b *Bot) startAnalysis(ctx context.Context, chatID int64, allowMissingLocation bool) {
	report, outcomes, err := b.reports.StartAnalysis(ctx, chatID, allowMissingLocation)
	if entity.CodeOf(err) == entity.CodeLocationRequired {
		b.sendWithMarkup(chatID, entity.CodeLocationRequired.Message(b.lang), missingLocationKeyboard(b.lang))
		return
	}
	if err != nil {
		b.reply(chatID, report, err)
		return
	}

	b.sendMessage(chatID, textsFor(b.lang).Analyzing)

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		outcome, ok := <-outcomes
		if !ok {
			return
		}
		if errors.Is(outcome.Err, app.ErrStaleAnalysis) {
			return
		}
		b.reply(chatID, outcome.Report, outcome.Err)
	}()
}

func (b *Bot) showReport(ctx context.Context, chatID int64) {
	report, err := b.reports.Snapshot(ctx, chatID)
	b.reply(chatID, report, err)
}

// reply показывает карточку отчёта. Коды ошибок уже отражены в карточке,
// прочие ошибки сообщаются отдельно.
func (b *Bot) reply(chatID int64, report entity.Report, err error) {
	t := textsFor(b.lang)
	logger := log.WithFields(log.Fields{
		"chat_id":   chatID,
		"report_id": report.ID,
		"status":    report.Status,
	})

	switch {
	case err == nil:
	case errors.Is(err, entity.ErrInvalidTransition):
		b.sendMessage(chatID, t.NotNow)
		return
	case entity.CodeOf(err) != "":
		logger.WithError(err).Info("report action rejected")
	default:
		logger.WithError(err).Error("report action failed")
		if report.ID == "" {
			b.sendMessage(chatID, t.InternalError)
			return
		}
	}

	text := renderReport(report, b.lang)
	if kb := reportKeyboard(report, b.lang); kb != nil {
		b.sendWithMarkup(chatID, text, *kb)
		return
	}
	b.sendMessage(chatID, text)
}

// downloadFile скачивает файл из Telegram, не больше maxBytes+1 байт
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, errors.Wrap(err, "get file")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.fileURL(file), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build download request")
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "download file")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("download file: status %d", resp.StatusCode)
	}

	// Лишний байт нужен, чтобы слишком большой файл дошёл до проверки размера
	data, err := io.ReadAll(io.LimitReader(resp.Body, int64(b.maxBytes)+1))
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	b.sendWithMarkup(chatID, text, nil)
}

func (b *Bot) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(text))
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("send message failed")
	}
}

// Wait ждёт завершения фоновых анализов
func (b *Bot) Wait() {
	b.inflight.Wait()
}
