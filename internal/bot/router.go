// Package bot routes inbound Telegram messages through the extraction and
// submission pipeline and renders replies.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BilalEnesS/calender-telegram-app/internal/calendar"
	apperr "github.com/BilalEnesS/calender-telegram-app/internal/errors"
	"github.com/BilalEnesS/calender-telegram-app/internal/observability"
	"github.com/BilalEnesS/calender-telegram-app/plugin/ai/extract"
	"github.com/BilalEnesS/calender-telegram-app/plugin/ai/intent"
)

const welcomeMessage = "Merhaba! Takvimine etkinlik eklemek için doğal dilde komut yazabilirsin.\n" +
	"Örnek: 'Yarın 15:00-17:00 arası OpenCV temelleri dersi planla.'"

const helpMessage = "Takvimine etkinlik eklemek için şu şekilde yazabilirsin:\n" +
	"- 'Yarın 15:00-17:00 arası toplantı planla'\n" +
	"- 'Bugün 14:00'de doktor randevusu ekle'\n" +
	"- 'Pazartesi 10:00'da iş görüşmesi'"

const genericFailureMessage = "Bir hata oluştu.\n\nLütfen şu formatta yazmayı dene:\n'Yarın 15:00-17:00 arası toplantı planla'"

const parseFailureMessage = "❌ Komutunu anlayamadım. Lütfen şu formatta yazmayı dene:\n'Yarın 15:00-17:00 arası toplantı planla'"

const incompleteFailureMessage = "❌ Etkinlik bilgileri eksik kaldı (başlık veya saat bulunamadı). Saat ve başlık belirterek tekrar dener misin?"

// EventExtractor is the extraction pipeline consumed by the router.
type EventExtractor interface {
	Extract(ctx context.Context, req extract.SchedulingRequest) (*extract.EventRecord, error)
}

// EventSubmitter is the calendar boundary consumed by the router.
type EventSubmitter interface {
	Submit(ctx context.Context, rec *extract.EventRecord) calendar.Outcome
}

// Router dispatches one inbound text to the scheduling pipeline or the
// static usage help.
type Router struct {
	classifier *intent.Classifier
	extractor  EventExtractor
	submitter  EventSubmitter
	now        func() time.Time
}

// NewRouter creates a router. A nil classifier selects the default keyword set.
func NewRouter(classifier *intent.Classifier, extractor EventExtractor, submitter EventSubmitter) *Router {
	if classifier == nil {
		classifier = intent.NewClassifier(nil)
	}
	return &Router{
		classifier: classifier,
		extractor:  extractor,
		submitter:  submitter,
		now:        time.Now,
	}
}

// Route processes one inbound text and returns the reply. It is the
// outermost failure boundary for a single request: anything escaping the
// pipeline is recovered and rendered as the generic failure message.
func (r *Router) Route(ctx context.Context, reqCtx *observability.RequestContext, text string) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			reqCtx.Error("panic while handling message", fmt.Errorf("%v", rec),
				slog.String(observability.LogFieldErrorCode, string(apperr.ErrCodeRouterUnhandled)))
			reply = genericFailureMessage
		}
	}()

	if r.classifier.Classify(text) == intent.IntentUnknown {
		reqCtx.Debug("no scheduling intent, replying with usage help")
		return helpMessage
	}

	rec, err := r.extractor.Extract(ctx, extract.SchedulingRequest{Text: text, Now: r.now()})
	if err != nil {
		code := apperr.CodeOf(err)
		reqCtx.Warn("extraction failed",
			slog.String(observability.LogFieldErrorCode, string(code)),
			slog.String("error", err.Error()))
		return renderExtractionFailure(code)
	}

	outcome := r.submitter.Submit(ctx, rec)
	if outcome.Created {
		reqCtx.Info("event created",
			slog.String("link", outcome.Link),
			slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
	} else {
		reqCtx.Warn("submission failed",
			slog.String(observability.LogFieldErrorCode, string(outcome.Code)))
	}

	// Prefix the outcome with the resolved fields so users can see what
	// the pipeline understood.
	debug := fmt.Sprintf("📅 Hesaplanan tarih: %s\n⏰ Saat: %s-%s\n📝 Başlık: %s\n📄 Detay: %s\n\n",
		rec.Date, rec.Start, rec.End, rec.Title, rec.Details)
	return debug + outcome.Message
}

func renderExtractionFailure(code apperr.ErrorCode) string {
	switch code {
	case apperr.ErrCodeExtractionParse:
		return parseFailureMessage
	case apperr.ErrCodeExtractionIncomplete:
		return incompleteFailureMessage
	default:
		return genericFailureMessage
	}
}
