// Package calendar submits validated event records to Google Calendar and
// renders collaborator failures as user-facing messages.
package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	apperr "github.com/BilalEnesS/calender-telegram-app/internal/errors"
	"github.com/BilalEnesS/calender-telegram-app/plugin/ai/extract"
)

// eventDateTimeLayout is the offset-less RFC3339 form Google accepts when
// an explicit TimeZone accompanies it.
const eventDateTimeLayout = "2006-01-02T15:04:05"

// Outcome is the terminal result of one submission attempt. Callers always
// receive an Outcome; nothing propagates past the submitter.
type Outcome struct {
	Created bool
	// Message is the rendered, user-facing text for this outcome.
	Message string
	// Link is the collaborator's reference URL when Created.
	Link string
	// Code classifies the failure for logging; empty when Created.
	Code apperr.ErrorCode
}

// eventInserter is the narrow calendar-backend surface the submitter needs.
type eventInserter interface {
	Insert(ctx context.Context, event *gcal.Event) (*gcal.Event, error)
}

type googleInserter struct {
	svc *gcal.Service
}

func (g *googleInserter) Insert(ctx context.Context, event *gcal.Event) (*gcal.Event, error) {
	return g.svc.Events.Insert("primary", event).Context(ctx).Do()
}

// Submitter turns event records into calendar entries in a single
// configured time zone.
type Submitter struct {
	inserter     eventInserter
	accountEmail string
	location     *time.Location
}

// NewSubmitter creates a submitter over an authorized calendar service.
// accountEmail is named in remediation messages when Google rejects the
// OAuth scope.
func NewSubmitter(svc *gcal.Service, accountEmail string, loc *time.Location) *Submitter {
	return &Submitter{
		inserter:     &googleInserter{svc: svc},
		accountEmail: accountEmail,
		location:     loc,
	}
}

// Submit creates the event on the primary calendar. The record's date and
// time fields are passed through unmodified; only their combination into
// zone-qualified instants happens here.
func (s *Submitter) Submit(ctx context.Context, rec *extract.EventRecord) Outcome {
	start, err := time.ParseInLocation("2006-01-02 15:04", rec.Date+" "+rec.Start, s.location)
	if err != nil {
		return s.failure(rec, fmt.Errorf("invalid start instant %s %s: %w", rec.Date, rec.Start, err))
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", rec.Date+" "+rec.End, s.location)
	if err != nil {
		return s.failure(rec, fmt.Errorf("invalid end instant %s %s: %w", rec.Date, rec.End, err))
	}

	event := &gcal.Event{
		Summary:     rec.Title,
		Description: rec.Details,
		Start: &gcal.EventDateTime{
			DateTime: start.Format(eventDateTimeLayout),
			TimeZone: s.location.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(eventDateTimeLayout),
			TimeZone: s.location.String(),
		},
	}

	created, err := s.inserter.Insert(ctx, event)
	if err != nil {
		return s.failure(rec, err)
	}

	return Outcome{
		Created: true,
		Link:    created.HtmlLink,
		Message: fmt.Sprintf("✅ Etkinlik başarıyla oluşturuldu!\n📅 Tarih: %s\n⏰ Saat: %s-%s\n📝 Başlık: %s\n🔗 Link: %s",
			rec.Date, rec.Start, rec.End, rec.Title, created.HtmlLink),
	}
}

// failure classifies a collaborator error by message content. The
// access-denied class gets remediation steps naming the configured account;
// everything else gets a generic diagnostic with the raw error text.
func (s *Submitter) failure(rec *extract.EventRecord, err error) Outcome {
	if strings.Contains(strings.ToLower(err.Error()), "access_denied") {
		return Outcome{
			Code: apperr.ErrCodeSubmissionAccessDenied,
			Message: fmt.Sprintf("❌ Google Calendar erişim hatası!\n\n🔧 Çözüm için:\n1. Google Cloud Console'a gidin\n2. OAuth consent screen > Test users\n3. %s ekleyin\n\n📋 Etkinlik detayları:\n📅 Tarih: %s\n⏰ Saat: %s-%s\n📝 Başlık: %s\n📄 Detay: %s",
				s.accountEmail, rec.Date, rec.Start, rec.End, rec.Title, rec.Details),
		}
	}

	return Outcome{
		Code:    apperr.ErrCodeSubmissionFailed,
		Message: fmt.Sprintf("❌ Takvime eklerken hata oluştu: %v", err),
	}
}
