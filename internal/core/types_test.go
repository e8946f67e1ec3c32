package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveChatTitle(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"short message kept as is", "Какая погода в Москве?", "Какая погода в Москве?"},
		{"first line only", "Привет\nрасскажи про Go", "Привет"},
		{"whitespace trimmed", "  вопрос  ", "вопрос"},
		{"empty falls back to default", "   ", DefaultChatTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveChatTitle(tt.message))
		})
	}
}

func TestDeriveChatTitle_LongMessageTruncated(t *testing.T) {
	long := strings.Repeat("объясни ", 20)
	title := DeriveChatTitle(long)
	assert.LessOrEqual(t, len([]rune(title)), maxChatTitleLen)
	assert.True(t, strings.HasSuffix(title, "..."))
}
