package vision

import "github.com/pkg/errors"

// ErrUndecodable файл не удалось прочитать как изображение
var ErrUndecodable = errors.New("failed to decode image")
