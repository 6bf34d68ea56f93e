package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperr "github.com/BilalEnesS/calender-telegram-app/internal/errors"
	"github.com/BilalEnesS/calender-telegram-app/plugin/ai"
)

// mockLLM implements ai.ChatCompleter for testing.
type mockLLM struct {
	response string
	err      error
	prompts  []ai.Message
}

func (m *mockLLM) Chat(_ context.Context, messages []ai.Message) (string, error) {
	m.prompts = messages
	return m.response, m.err
}

func TestExtract_EndToEnd(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		name     string
		text     string
		response string
		expected EventRecord
	}{
		{
			name:     "tomorrow with explicit range",
			text:     "yarın 15:00-17:00 arası toplantı planla",
			response: `{"date": "2024-06-11", "start_time": "15:00", "end_time": "17:00", "title": "toplantı", "details": ""}`,
			expected: EventRecord{Date: "2024-06-11", Start: "15:00", End: "17:00", Title: "toplantı"},
		},
		{
			name: "sentinel date recomputed to next monday",
			text: "pazartesi 10:00 mülakat",
			// The model punted on the date; the resolver advances a full
			// week because the reference day is itself a Monday.
			response: `{"date": "YYYY-MM-DD", "start_time": "10:00", "end_time": "", "title": "mülakat", "details": ""}`,
			expected: EventRecord{Date: "2024-06-17", Start: "10:00", End: "11:00", Title: "mülakat"},
		},
		{
			name:     "empty date recomputed from text",
			text:     "yarın 14:00 doktor randevusu",
			response: `{"date": "", "start_time": "14:00", "end_time": "", "title": "doktor randevusu", "details": ""}`,
			expected: EventRecord{Date: "2024-06-11", Start: "14:00", End: "15:00", Title: "doktor randevusu"},
		},
		{
			name:     "code-fenced response accepted",
			text:     "yarın 15:00 toplantı",
			response: "```json\n{\"date\": \"2024-06-11\", \"start_time\": \"15:00\", \"end_time\": \"\", \"title\": \"toplantı\", \"details\": \"haftalık durum\"}\n```",
			expected: EventRecord{Date: "2024-06-11", Start: "15:00", End: "16:00", Title: "toplantı", Details: "haftalık durum"},
		},
		{
			name:     "day-part override corrects extracted end",
			text:     "yarın sabah toplantı",
			response: `{"date": "2024-06-11", "start_time": "09:00", "end_time": "12:00", "title": "toplantı", "details": ""}`,
			expected: EventRecord{Date: "2024-06-11", Start: "09:00", End: "10:00", Title: "toplantı"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(&mockLLM{response: tt.response})
			rec, err := e.Extract(context.Background(), SchedulingRequest{Text: tt.text, Now: now})
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if *rec != tt.expected {
				t.Errorf("Extract = %+v, want %+v", *rec, tt.expected)
			}
		})
	}
}

func TestExtract_PromptCarriesReferenceDate(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	mock := &mockLLM{response: `{"date": "2024-06-10", "start_time": "14:00", "end_time": "15:00", "title": "x", "details": ""}`}
	e := NewExtractor(mock)

	if _, err := e.Extract(context.Background(), SchedulingRequest{Text: "bugün 14:00 x", Now: now}); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(mock.prompts) != 2 {
		t.Fatalf("prompts = %d messages, want system+user", len(mock.prompts))
	}
	user := mock.prompts[1].Content
	if !strings.Contains(user, "2024-06-10") || !strings.Contains(user, "Monday") {
		t.Errorf("user prompt missing reference date context:\n%s", user)
	}
}

func TestExtract_Failures(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		text     string
		response string
		llmErr   error
		wantCode apperr.ErrorCode
	}{
		{
			name:     "malformed response",
			text:     "yarın toplantı",
			response: "Tabii, etkinliği ekledim!",
			wantCode: apperr.ErrCodeExtractionParse,
		},
		{
			name:     "llm call failed",
			text:     "yarın toplantı",
			llmErr:   errors.New("connection refused"),
			wantCode: apperr.ErrCodeExtractionParse,
		},
		{
			name:     "missing title",
			text:     "yarın 15:00",
			response: `{"date": "2024-06-11", "start_time": "15:00", "end_time": "", "title": "", "details": ""}`,
			wantCode: apperr.ErrCodeExtractionIncomplete,
		},
		{
			name:     "missing start time",
			text:     "yarın toplantı",
			response: `{"date": "2024-06-11", "start_time": "", "end_time": "", "title": "toplantı", "details": ""}`,
			wantCode: apperr.ErrCodeExtractionIncomplete,
		},
		{
			name:     "empty input",
			text:     "   ",
			wantCode: apperr.ErrCodeExtractionParse,
		},
		{
			name:     "input too long",
			text:     strings.Repeat("a", MaxInputLength+1),
			wantCode: apperr.ErrCodeExtractionParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(&mockLLM{response: tt.response, err: tt.llmErr})
			_, err := e.Extract(context.Background(), SchedulingRequest{Text: tt.text, Now: now})
			if err == nil {
				t.Fatal("Extract succeeded, want coded failure")
			}
			if !apperr.IsCode(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v (err: %v)", apperr.CodeOf(err), tt.wantCode, err)
			}
		})
	}
}

func TestExtract_ParseFailureKeepsRawResponse(t *testing.T) {
	raw := "I cannot produce JSON today."
	e := NewExtractor(&mockLLM{response: raw})
	_, err := e.Extract(context.Background(), SchedulingRequest{Text: "yarın toplantı", Now: time.Now()})
	if err == nil {
		t.Fatal("Extract succeeded, want parse failure")
	}
	if got := apperr.RawOf(err); got != raw {
		t.Errorf("RawOf = %q, want the model response", got)
	}
}
