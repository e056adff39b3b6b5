package entity

import (
	"encoding/base64"
	"strings"
)

const dataURLPrefix = "data:"

// ImagePayload изображение в виде data URL: "data:<mime>;base64,<данные>"
type ImagePayload string

// NewImagePayload кодирует байты изображения в data URL
func NewImagePayload(mimeType string, data []byte) ImagePayload {
	return ImagePayload(dataURLPrefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// MimeType возвращает тип из заголовка data URL или пустую строку, если заголовка нет
func (p ImagePayload) MimeType() string {
	s := string(p)
	if !strings.HasPrefix(s, dataURLPrefix) {
		return ""
	}
	header, _, ok := strings.Cut(s, ",")
	if !ok {
		return ""
	}
	mime, _, _ := strings.Cut(strings.TrimPrefix(header, dataURLPrefix), ";")
	return mime
}

// Size приблизительный размер исходных байтов
func (p ImagePayload) Size() int {
	s := string(p)
	if i := strings.IndexByte(s, ','); i >= 0 && strings.HasPrefix(s, dataURLPrefix) {
		s = s[i+1:]
	}
	return base64.StdEncoding.DecodedLen(len(s))
}

// PreparedImage изображение, приведённое к формату для анализа
type PreparedImage struct {
	Data     []byte
	MimeType string
	Width    int
	Height   int
}
