package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladobot/lado/internal/core"
)

func TestVariant(t *testing.T) {
	assert.Equal(t, VariantShort, Variant(core.ModeFast, true))
	assert.Equal(t, VariantDeep, Variant(core.ModeThinking, false))
	assert.Equal(t, VariantPro, Variant(core.ModePro, false))
	assert.Equal(t, VariantDeep, Variant("", true))
	assert.Equal(t, VariantShort, Variant("", false))
}

func TestBase(t *testing.T) {
	for _, lang := range []string{"russian", "english"} {
		for _, v := range []string{VariantShort, VariantDeep, VariantPro} {
			assert.NotEmpty(t, Base(lang, v), "%s/%s", lang, v)
		}
	}
	assert.Equal(t, Base("russian", VariantShort), Base("klingon", VariantShort))
	assert.Contains(t, Base("russian", VariantShort), "на русском")
	assert.Contains(t, Base("english", VariantDeep), "in English")
}

func TestMath(t *testing.T) {
	for _, v := range []string{VariantShort, VariantDeep, VariantPro} {
		assert.Contains(t, Math("russian", v), "ОДЗ")
		assert.Contains(t, Math("english", v), "domain of validity")
	}
}

func TestMemoryBlock(t *testing.T) {
	entries := []core.ContextEntry{
		{Type: core.ContextUserMemory, Content: "меня зовут Андрей"},
		{Type: core.ContextSearchQuick, Content: "Вопрос: погода | Вывод: солнечно"},
		{Type: core.ContextUserMemory, Content: "я живу в Питере"},
	}
	block := MemoryBlock("russian", entries)
	assert.Contains(t, block, "- меня зовут Андрей")
	assert.Contains(t, block, "- я живу в Питере")
	assert.NotContains(t, block, "солнечно")

	assert.Empty(t, MemoryBlock("russian", nil))
	assert.Empty(t, MemoryBlock("russian", entries[1:2]))
}

func TestFilterEnglishWords(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Это however важный момент", "Это однако важный момент"},
		{"for example вот так", "например вот так"},
		{"iPhone работает", "iPhone работает"},
		{"пример без английского", "пример без английского"},
		{"HOWEVER", "однако"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FilterEnglishWords(tt.in))
	}
}

func TestFilterEnglishWords_NoSubstringHits(t *testing.T) {
	// "notebook" contains "note" but must survive whole.
	got := FilterEnglishWords("мой notebook сломался")
	assert.Equal(t, "мой notebook сломался", got)
}

func TestLoadExtraWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# комментарий\nawesome=отлично\nbroken line\n"), 0o644))
	require.NoError(t, LoadExtraWords(path))

	assert.Equal(t, "это отлично", FilterEnglishWords("это awesome"))
	assert.True(t, strings.Contains(FilterEnglishWords("however"), "однако"))

	require.NoError(t, LoadExtraWords(filepath.Join(t.TempDir(), "missing.txt")))
}
