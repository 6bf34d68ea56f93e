package extract

import "testing"

func TestNormalizeTimes_SynthesizesEnd(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		wantStart string
		wantEnd   string
	}{
		{"one hour later", "08:30", "08:30", "09:30"},
		{"single digit hour canonicalized", "8:30", "08:30", "09:30"},
		{"hour wraps at midnight", "23:30", "23:30", "00:30"},
		{"on the hour", "15:00", "15:00", "16:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := NormalizeTimes(tt.start, "", "toplantı planla")
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("NormalizeTimes(%q, \"\") = (%q, %q), want (%q, %q)",
					tt.start, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestNormalizeTimes_KeepsExplicitEnd(t *testing.T) {
	start, end := NormalizeTimes("15:00", "17:00", "yarın 15:00-17:00 arası toplantı planla")
	if start != "15:00" || end != "17:00" {
		t.Errorf("got (%q, %q), want (15:00, 17:00)", start, end)
	}
}

func TestNormalizeTimes_DayPartOverride(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		text      string
		wantStart string
		wantEnd   string
	}{
		{"morning window", "09:00", "", "sabah toplantı", "09:00", "10:00"},
		{"morning overrides extracted end", "09:00", "11:30", "sabah toplantı", "09:00", "10:00"},
		{"noon window", "12:00", "", "öğle yemeği", "12:00", "13:00"},
		{"evening window", "18:00", "", "akşam buluşma", "18:00", "19:00"},
		{"no day-part word, no override", "09:00", "11:30", "toplantı planla", "09:00", "11:30"},
		{"day-part word but non-canonical start", "09:30", "", "sabah toplantı", "09:30", "10:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := NormalizeTimes(tt.start, tt.end, tt.text)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("NormalizeTimes(%q, %q, %q) = (%q, %q), want (%q, %q)",
					tt.start, tt.end, tt.text, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestNormalizeTimes_NeverInventsStart(t *testing.T) {
	start, end := NormalizeTimes("", "17:00", "toplantı")
	if start != "" || end != "17:00" {
		t.Errorf("got (%q, %q), want (\"\", 17:00)", start, end)
	}
}

func TestNormalizeTimes_UnparseableStartPassesThrough(t *testing.T) {
	start, end := NormalizeTimes("öğleden sonra", "", "toplantı")
	if start != "öğleden sonra" || end != "" {
		t.Errorf("got (%q, %q), want passthrough", start, end)
	}
}
