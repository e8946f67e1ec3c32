package lang

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"russian sentence", "привет, как дела?", "russian"},
		{"english sentence", "hello there", "english"},
		{"empty", "", "english"},
		{"whitespace only", "   \n\t", "english"},
		{"symbols only", "2+2=4 !!!", "english"},
		{"tie resolves to english", "да no", "english"},
		{"brand name outweighs cyrillic", "ок iPhone fifteen pro max", "english"},
		{"mixed mostly cyrillic", "посмотри на github пожалуйста", "russian"},
		{"uppercase cyrillic", "ПРИВЕТ", "russian"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetect_Idempotent(t *testing.T) {
	// Pure function: repeated calls agree.
	for _, text := range []string{"погода в Москве", "weather in Chicago", ""} {
		first := Detect(text)
		for i := 0; i < 3; i++ {
			if got := Detect(text); got != first {
				t.Fatalf("Detect(%q) unstable: %q then %q", text, first, got)
			}
		}
	}
}

func TestDetectSwitch(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"перейди на английский", "english"},
		{"давай switch to english", "english"},
		{"отвечай на русском пожалуйста", "russian"},
		{"speak russian", "russian"},
		{"просто вопрос", ""},
	}
	for _, tt := range tests {
		if got := DetectSwitch(tt.text); got != tt.want {
			t.Errorf("DetectSwitch(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDetectForget(t *testing.T) {
	if !DetectForget("забудь всё и начнём заново") {
		t.Error("expected forget trigger to match")
	}
	if !DetectForget("please clear memory") {
		t.Error("expected english forget trigger to match")
	}
	if DetectForget("расскажи про слонов") {
		t.Error("unexpected forget match")
	}
}
