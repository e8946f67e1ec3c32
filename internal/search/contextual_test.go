package search

import (
	"context"
	"strings"
	"testing"

	"github.com/ladobot/lado/internal/core"
)

func history(turns ...string) []core.Message {
	msgs := make([]core.Message, 0, len(turns))
	role := core.RoleUser
	for _, t := range turns {
		msgs = append(msgs, core.Message{Role: role, Content: t})
		if role == core.RoleUser {
			role = core.RoleAssistant
		} else {
			role = core.RoleUser
		}
	}
	return msgs
}

func TestBuildContextualQuery_LocationSwap(t *testing.T) {
	h := history("погода в Москве", "Солнечно, +20.")
	got := BuildContextualQuery(context.Background(), "а в Питере", h, core.LangRussian)
	if !strings.Contains(got, "Питере") {
		t.Fatalf("new location missing from %q", got)
	}
	if strings.Contains(got, "Москве") {
		t.Fatalf("old location survived in %q", got)
	}
}

func TestBuildContextualQuery_LocationSwapEnglish(t *testing.T) {
	h := history("weather in London", "Rainy.")
	got := BuildContextualQuery(context.Background(), "and in Paris", h, core.LangEnglish)
	if !strings.Contains(got, "Paris") || strings.Contains(got, "London") {
		t.Fatalf("location not swapped: %q", got)
	}
}

func TestBuildContextualQuery_LastWordFallback(t *testing.T) {
	// Prior question has no preposition phrase, so the last word is swapped.
	h := history("погода Москва", "Солнечно.")
	got := BuildContextualQuery(context.Background(), "а в Питере", h, core.LangRussian)
	if !strings.Contains(got, "Питере") {
		t.Fatalf("fallback did not insert new location: %q", got)
	}
}

func TestBuildContextualQuery_FollowUpConcatenation(t *testing.T) {
	h := history("расскажи про квантовые компьютеры", "Это машины на кубитах.")
	got := BuildContextualQuery(context.Background(), "а почему они быстрые", h, core.LangRussian)
	if !strings.HasPrefix(got, "расскажи про квантовые компьютеры") {
		t.Fatalf("prior question not prepended: %q", got)
	}
	if !strings.HasSuffix(got, "а почему они быстрые") {
		t.Fatalf("follow-up dropped: %q", got)
	}
}

func TestBuildContextualQuery_Standalone(t *testing.T) {
	h := history("погода в Москве", "Солнечно.")
	msg := "сравни производительность процессоров серии разных поколений подробно"
	if got := BuildContextualQuery(context.Background(), msg, h, core.LangRussian); got != msg {
		t.Fatalf("standalone question rewritten: %q", got)
	}
}

func TestBuildContextualQuery_ShortHistory(t *testing.T) {
	msg := "а в Питере"
	if got := BuildContextualQuery(context.Background(), msg, nil, core.LangRussian); got != msg {
		t.Fatalf("short history must not rewrite: %q", got)
	}
	h := []core.Message{{Role: core.RoleUser, Content: msg}}
	if got := BuildContextualQuery(context.Background(), msg, h, core.LangRussian); got != msg {
		t.Fatalf("single-turn history must not rewrite: %q", got)
	}
}

func TestBuildContextualQuery_TemporalOnly(t *testing.T) {
	h := history("какая погода в Москве", "Солнечно.")
	got := BuildContextualQuery(context.Background(), "завтра", h, core.LangRussian)
	if got != "какая погода в Москве завтра" {
		t.Fatalf("temporal follow-up = %q", got)
	}
}

func TestBuildContextualQuery_SkipsCurrentMessage(t *testing.T) {
	// The current message is already persisted; the rewriter must reach
	// past it to the genuinely previous question.
	h := []core.Message{
		{Role: core.RoleUser, Content: "погода в Москве"},
		{Role: core.RoleAssistant, Content: "Солнечно."},
		{Role: core.RoleUser, Content: "а в Питере"},
	}
	got := BuildContextualQuery(context.Background(), "а в Питере", h, core.LangRussian)
	if !strings.Contains(got, "погода") || !strings.Contains(got, "Питере") {
		t.Fatalf("rewriter picked wrong context: %q", got)
	}
}
