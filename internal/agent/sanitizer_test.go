package agent

import "testing"

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Oh dear, it is loading slowly.", "Oh dear, it is loading slowly."},
		{"role marker", "Arthur: Oh dear, it is loading slowly.", "Oh dear, it is loading slowly."},
		{"assistant marker", "Assistant - I cannot find my glasses.", "I cannot find my glasses."},
		{"bracketed marker", "[Arthur]: Which bank is this?", "Which bank is this?"},
		{"instruction echo", "Here is my reply: The OTP has not come yet.", "The OTP has not come yet."},
		{"stacked markers", "Response: Arthur: One moment please.", "One moment please."},
		{"wrapped quotes", `"The screen says server busy."`, "The screen says server busy."},
		{"curly quotes", "“My grandson is calling.”", "My grandson is calling."},
		{"single quotes", "'Yes yes, I am doing it now.'", "Yes yes, I am doing it now."},
		{"quote inside stays", `He said "pay now" to me.`, `He said "pay now" to me.`},
		{"whitespace", "   hello there   ", "hello there"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
