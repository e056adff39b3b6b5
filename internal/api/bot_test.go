package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	app "flood-report-bot/internal/application"
	"flood-report-bot/internal/domain/entity"
	"flood-report-bot/internal/infrastructure/storage"
)

type fakeAPI struct {
	mu       sync.Mutex
	sent     []tgbotapi.MessageConfig
	answered []string
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		f.answered = append(f.answered, cb.CallbackQueryID)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error) {
	return tgbotapi.File{FileID: config.FileID, FilePath: "photos/" + config.FileID + ".jpg"}, nil
}

func (f *fakeAPI) last() tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type fakeAnalyzer struct {
	result *entity.AnalysisResult
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, image entity.ImagePayload) (*entity.AnalysisResult, error) {
	return f.result, nil
}

var jpegBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x01}

func newTestBot(t *testing.T) (*Bot, *fakeAPI) {
	t.Helper()
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(jpegBytes)
	}))
	t.Cleanup(files.Close)

	reports := app.NewReportService(
		storage.NewMemoryReportRepository(),
		&fakeAnalyzer{result: &entity.AnalysisResult{PeopleCount: 2, Urgency: entity.UrgencyHigh}},
		app.NewLocationService(time.Second),
		app.NewImageIntake(nil, 0),
		nil,
	)

	api := &fakeAPI{}
	bot := newBot(api, func(f tgbotapi.File) string { return files.URL + "/" + f.FilePath }, reports, Options{Language: entity.LangEnglish})
	return bot, api
}

func privateChat() *tgbotapi.Chat {
	return &tgbotapi.Chat{ID: 42, Type: "private"}
}

func command(text string) *tgbotapi.Message {
	name, _, _ := strings.Cut(text, " ")
	return &tgbotapi.Message{
		Chat:     privateChat(),
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}
}

func press(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-" + data,
		Data:    data,
		Message: &tgbotapi.Message{Chat: privateChat()},
	}}
}

func TestBot_ReportFlow(t *testing.T) {
	bot, api := newTestBot(t)
	ctx := context.Background()

	bot.handleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:  privateChat(),
		Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}},
	}})
	require.Contains(t, api.last().Text, "Photo: attached")

	bot.handleUpdate(ctx, press(cbAnalyze))
	require.Equal(t, entity.CodeLocationRequired.Message(entity.LangEnglish), api.last().Text)

	bot.handleUpdate(ctx, press(cbAnalyzeAnyway))
	bot.Wait()
	require.Contains(t, api.last().Text, "Review the analysis")
	require.Contains(t, api.last().Text, "People: 2 (estimated 2)")

	bot.handleUpdate(ctx, press("people:+1"))
	require.Contains(t, api.last().Text, "People: 3 (estimated 2)")

	bot.handleUpdate(ctx, tgbotapi.Update{Message: command("/note near the bridge")})
	require.Contains(t, api.last().Text, "near the bridge")

	bot.handleUpdate(ctx, press(cbSubmit))
	require.Contains(t, api.last().Text, "Submitted")

	report, err := bot.reports.Snapshot(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, entity.StatusSubmitted, report.Status)
	require.Contains(t, api.answered, "cb-"+cbSubmit)
}

func TestBot_LocationMessage(t *testing.T) {
	bot, api := newTestBot(t)
	ctx := context.Background()

	bot.handleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     privateChat(),
		Location: &tgbotapi.Location{Latitude: 13.75, Longitude: 100.5, HorizontalAccuracy: 20},
	}})
	require.Contains(t, api.last().Text, "13.75000, 100.50000")

	bot.handleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:        privateChat(),
		ForwardDate: 1700000000,
		Location:    &tgbotapi.Location{Latitude: 1, Longitude: 1},
	}})
	require.Contains(t, api.last().Text, entity.CodeLocationDeniedOrUnavailable.Message(entity.LangEnglish))

	report, err := bot.reports.Snapshot(ctx, 42)
	require.NoError(t, err)
	require.Nil(t, report.Location)
}

func TestBot_LocateInGroupIsUnsupported(t *testing.T) {
	bot, api := newTestBot(t)
	msg := command("/locate")
	msg.Chat = &tgbotapi.Chat{ID: 42, Type: "group"}

	bot.handleUpdate(context.Background(), tgbotapi.Update{Message: msg})
	require.Contains(t, api.last().Text, entity.CodeLocationUnsupported.Message(entity.LangEnglish))
}

func TestBot_LocateInPrivateAsksForLocation(t *testing.T) {
	bot, api := newTestBot(t)

	bot.handleUpdate(context.Background(), tgbotapi.Update{Message: command("/locate")})
	kb, ok := api.last().ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	require.True(t, kb.Keyboard[0][0].RequestLocation)
}

func TestBot_ActionsInWrongState(t *testing.T) {
	bot, api := newTestBot(t)

	bot.handleUpdate(context.Background(), press(cbSubmit))
	require.Equal(t, textsFor(entity.LangEnglish).NotNow, api.last().Text)

	bot.handleUpdate(context.Background(), tgbotapi.Update{Message: command("/people")})
	require.Equal(t, textsFor(entity.LangEnglish).CountUsage, api.last().Text)
}

func TestBot_DocumentWithoutExifKeepsLocationEmpty(t *testing.T) {
	bot, api := newTestBot(t)

	bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     privateChat(),
		Document: &tgbotapi.Document{FileID: "scan", MimeType: "image/jpeg"},
	}})
	require.Contains(t, api.last().Text, "Photo: attached")
	require.Contains(t, api.last().Text, "Location: not set")
	require.NotContains(t, api.last().Text, "⚠️")
}
