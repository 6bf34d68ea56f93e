// Package extract turns free-text scheduling requests into submission-ready
// event records. The LLM extraction is treated as an untrusted hint;
// deterministic correction rules run on top of whatever it returns.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperr "github.com/BilalEnesS/calender-telegram-app/internal/errors"
	"github.com/BilalEnesS/calender-telegram-app/plugin/ai"
)

const (
	// MaxInputLength caps the accepted request text, in characters.
	MaxInputLength = 500

	// dateSentinel is the literal template value the model echoes back when
	// it did not resolve a real date.
	dateSentinel = "YYYY-MM-DD"
)

// SchedulingRequest is one inbound free-text request with the reference
// timestamp used for relative-date resolution.
type SchedulingRequest struct {
	Text string
	Now  time.Time
}

// extractedFields is the untrusted intermediate shape the model is asked to
// produce. Any field may be empty or garbage.
type extractedFields struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Title     string `json:"title"`
	Details   string `json:"details"`
}

// EventRecord is the post-normalization, submission-ready event.
type EventRecord struct {
	Date    string // 2006-01-02
	Start   string // 15:04, 24h
	End     string // 15:04, 24h
	Title   string // never empty
	Details string // may be empty
}

// Extractor combines the LLM extraction with the deterministic date and
// time correction rules.
type Extractor struct {
	llm ai.ChatCompleter
}

// NewExtractor creates an extractor over the given LLM capability.
func NewExtractor(llm ai.ChatCompleter) *Extractor {
	return &Extractor{llm: llm}
}

const systemPrompt = `Sen bir takvim asistanısın. Kullanıcının doğal dil komutundan etkinlik bilgilerini çıkarıp sadece JSON formatında cevap verirsin.`

// buildPrompt renders the extraction prompt with the reference date so the
// model has a concrete "today" to compute against.
func buildPrompt(req SchedulingRequest) string {
	return fmt.Sprintf(`Bugünün tarihi: %s (%s)

Aşağıdaki doğal dil komutunu al ve JSON formatında çıkar.
JSON şu formatta olmalı:
{
    "date": "YYYY-MM-DD",
    "start_time": "HH:MM",
    "end_time": "HH:MM",
    "title": "Etkinlik başlığı",
    "details": "Etkinlik detayları"
}

Önemli kurallar:
- Eğer tarih belirtilmemişse, bugünün tarihini (%s) kullan
- "yarın" = bugünden 1 gün sonra
- Gün isimleri (pazartesi, salı, çarşamba, perşembe, cuma, cumartesi, pazar) gelecek haftanın o gününü ifade eder
- Eğer sadece başlangıç saati belirtilmişse, 1 saatlik etkinlik varsay (örn: 8:30 -> 8:30-9:30)
- "sabah" = 09:00, "öğle" = 12:00, "akşam" = 18:00 olarak varsay
- Saat formatı 24 saat olmalı (HH:MM)

Komut: '''%s'''`,
		req.Now.Format(DateLayout),
		req.Now.Weekday().String(),
		req.Now.Format(DateLayout),
		req.Text)
}

// Extract runs the full pipeline: LLM extraction, JSON parsing, sentinel
// date replacement, time normalization, and the title-required check.
// It returns a coded error rather than a partially filled record.
func (e *Extractor) Extract(ctx context.Context, req SchedulingRequest) (*EventRecord, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperr.New(apperr.ErrCodeExtractionParse, "empty input")
	}
	if len(text) > MaxInputLength {
		return nil, apperr.New(apperr.ErrCodeExtractionParse,
			fmt.Sprintf("input too long: maximum %d characters, got %d", MaxInputLength, len(text)))
	}

	response, err := e.llm.Chat(ctx, []ai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildPrompt(req)},
	})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrCodeExtractionParse, "extraction call failed")
	}

	fields, err := parseResponse(response)
	if err != nil {
		return nil, err
	}

	// The model's date arithmetic for relative expressions is unreliable;
	// an absent or sentinel date is recomputed from the original text.
	date := fields.Date
	if date == "" || date == dateSentinel {
		date = ResolveRelativeDate(req.Text, req.Now)
	}

	start, end := NormalizeTimes(fields.StartTime, fields.EndTime, req.Text)
	if _, err := time.Parse(TimeLayout, start); err != nil {
		return nil, apperr.New(apperr.ErrCodeExtractionIncomplete,
			fmt.Sprintf("no usable start time extracted from %q", req.Text))
	}
	if _, err := time.Parse(TimeLayout, end); err != nil {
		return nil, apperr.New(apperr.ErrCodeExtractionIncomplete,
			fmt.Sprintf("no usable end time extracted from %q", req.Text))
	}

	title := strings.TrimSpace(fields.Title)
	if title == "" {
		return nil, apperr.New(apperr.ErrCodeExtractionIncomplete, "extraction produced no title")
	}

	return &EventRecord{
		Date:    date,
		Start:   start,
		End:     end,
		Title:   title,
		Details: fields.Details,
	}, nil
}

// parseResponse unmarshals the model output, tolerating markdown code
// fences around the JSON body.
func parseResponse(response string) (*extractedFields, error) {
	jsonStr := strings.TrimSpace(response)
	jsonStr = strings.TrimPrefix(jsonStr, "```json")
	jsonStr = strings.TrimPrefix(jsonStr, "```")
	jsonStr = strings.TrimSuffix(jsonStr, "```")
	jsonStr = strings.TrimSpace(jsonStr)

	var fields extractedFields
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		return nil, apperr.Wrap(err, apperr.ErrCodeExtractionParse, "model response not parseable").WithRaw(response)
	}
	return &fields, nil
}
