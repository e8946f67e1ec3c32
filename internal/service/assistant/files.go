package assistant

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ladobot/lado/internal/core"
	"github.com/ladobot/lado/pkg/log"
)

// Attached text files are clipped to this many characters before they go
// into the prompt.
const maxFileChars = 10000

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".bmp": true, ".webp": true,
}

// FileReader reads attachment bytes. The default hits the filesystem.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type osFileReader struct{}

func (osFileReader) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// fileContext renders an attachment into a prompt fragment. Images get a
// note only, text files get their content, anything unreadable gets a
// localized shrug.
func (s *Service) fileContext(ctx context.Context, path, detected string) string {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	if imageExtensions[ext] {
		if detected == core.LangRussian {
			return fmt.Sprintf("\n\n[Пользователь прикрепил изображение: %s]\nПроанализируй изображение и ответь на вопрос пользователя об этом изображении.", name)
		}
		return fmt.Sprintf("\n\n[User attached an image: %s]\nAnalyze the image and answer the user's question about it.", name)
	}

	data, err := s.files.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		log.FromCtx(ctx).Warn().Err(err).Str("file", name).Msg("attachment unreadable as text")
		if detected == core.LangRussian {
			return fmt.Sprintf("\n\n[Пользователь прикрепил файл: %s]\nФайл не может быть прочитан как текст.", name)
		}
		return fmt.Sprintf("\n\n[User attached a file: %s]\nThe file cannot be read as text.", name)
	}

	content := string(data)
	if runes := []rune(content); len(runes) > maxFileChars {
		content = string(runes[:maxFileChars])
	}

	if detected == core.LangRussian {
		return fmt.Sprintf("\n\n[Пользователь прикрепил файл: %s]\n\nСОДЕРЖИМОЕ ФАЙЛА:\n%s\n\nПроанализируй содержимое файла и ответь на вопрос пользователя.", name, content)
	}
	return fmt.Sprintf("\n\n[User attached a file: %s]\n\nFILE CONTENT:\n%s\n\nAnalyze the file content and answer the user's question.", name, content)
}
