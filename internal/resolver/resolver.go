// Package resolver orchestrates the complaint pipeline: classification,
// locality resolution, deduplication, persistence, authority lookup and
// notification fan-out.
package resolver

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/civicsetu/resolver/internal/domain"
	"github.com/civicsetu/resolver/internal/gazetteer"
	"github.com/civicsetu/resolver/internal/geocode"
	"github.com/civicsetu/resolver/internal/logger"
	"github.com/civicsetu/resolver/internal/notify"
	"github.com/civicsetu/resolver/internal/telemetry"
)

const (
	complaintIDPrefix = "DLH"
	sourceTypeReddit  = "reddit"
	minTitleLen       = 10
)

// Classifier decides whether a post is a civic complaint and scores it.
type Classifier interface {
	Classify(title, body string) domain.ClassificationResult
}

// LocalityExtractor finds a locality mention in free text.
type LocalityExtractor interface {
	Extract(text string) (string, bool)
}

// Geocoder resolves a place name to coordinates. A nil result with a nil
// error is a miss, not a failure.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (*geocode.Result, error)
}

// AuthorityDirectory maps a locality and department to a contact.
type AuthorityDirectory interface {
	Lookup(localityName, department string) domain.AuthorityContact
}

// Repository is the persistence surface the pipeline needs.
type Repository interface {
	Insert(ctx context.Context, c *domain.Complaint) (bool, error)
	ExistsBySourceID(ctx context.Context, sourceID string) (bool, error)
	UpdateNotificationFlags(ctx context.Context, id string, authorityNotified, citizenNotified bool) error
}

// Resolver runs posts through the full pipeline.
type Resolver struct {
	classifier Classifier
	extractor  LocalityExtractor
	geocoder   Geocoder
	directory  AuthorityDirectory
	repo       Repository
	authority  notify.AuthorityNotifier
	citizen    notify.CitizenNotifier
	telemetry  *telemetry.Provider
	log        logger.Logger

	now   func() time.Time
	newID func() string
}

// New wires a resolver from its collaborators. telemetry may be nil.
func New(
	classifier Classifier,
	extractor LocalityExtractor,
	geocoder Geocoder,
	directory AuthorityDirectory,
	repo Repository,
	authority notify.AuthorityNotifier,
	citizen notify.CitizenNotifier,
	tel *telemetry.Provider,
	log logger.Logger,
) *Resolver {
	return &Resolver{
		classifier: classifier,
		extractor:  extractor,
		geocoder:   geocoder,
		directory:  directory,
		repo:       repo,
		authority:  authority,
		citizen:    citizen,
		telemetry:  tel,
		log:        log,
		now:        time.Now,
		newID:      newComplaintID,
	}
}

func newComplaintID() string {
	id := uuid.New().String()
	return fmt.Sprintf("%s-%s-%s", complaintIDPrefix, time.Now().UTC().Format("20060102"), id[:6])
}

// Process runs one post through the pipeline and reports the outcome.
// Rejections and duplicates are outcomes, not errors; an error return means
// the pipeline could not complete (storage down, context cancelled).
func (r *Resolver) Process(ctx context.Context, post domain.RawPost, contact domain.CitizenContact) (*domain.Outcome, error) {
	started := r.now()

	if strings.TrimSpace(post.Title) == "" || len(strings.TrimSpace(post.Title)) < minTitleLen {
		return nil, domain.NewValidationError("title must be at least 10 characters")
	}

	if r.telemetry != nil {
		var span trace.Span
		ctx, span = r.telemetry.StartSpan(ctx, "pipeline.process",
			attribute.String("source_id", post.SourceID),
		)
		defer span.End()
	}

	_, endClassify := r.startStage(ctx, "classify")
	result := r.classifier.Classify(post.Title, post.Body)
	endClassify()
	if !result.IsCivic {
		r.recordOutcome(ctx, telemetry.OutcomeRejected, started)
		r.log.Info("post rejected",
			logger.String("source_id", post.SourceID),
			logger.String("reason", result.RejectionReason),
		)
		return &domain.Outcome{
			Rejected:       true,
			Reason:         result.RejectionReason,
			Classification: result,
		}, nil
	}
	if r.telemetry != nil {
		r.telemetry.RecordClassification(ctx, result.Department, result.Urgency, result.KeywordScore)
	}

	locCtx, endLocate := r.startStage(ctx, "locate")
	location := r.resolveLocation(locCtx, post.Title+" "+post.Body)
	endLocate()

	persistCtx, endPersist := r.startStage(ctx, "persist")
	if post.SourceID != "" {
		exists, err := r.repo.ExistsBySourceID(persistCtx, post.SourceID)
		if err != nil {
			endPersist()
			return nil, err
		}
		if exists {
			endPersist()
			r.recordOutcome(ctx, telemetry.OutcomeDuplicate, started)
			return &domain.Outcome{
				Duplicate:      true,
				Reason:         "already registered",
				Classification: result,
				Location:       &location,
			}, nil
		}
	}

	complaint := r.buildComplaint(post, contact, result, location)
	inserted, err := r.repo.Insert(persistCtx, complaint)
	endPersist()
	if err != nil {
		r.recordOutcome(ctx, telemetry.OutcomeFailed, started)
		return nil, err
	}
	if !inserted {
		// Lost the race to a concurrent insert of the same source post.
		r.recordOutcome(ctx, telemetry.OutcomeDuplicate, started)
		return &domain.Outcome{
			Duplicate:      true,
			Reason:         "already registered",
			Classification: result,
			Location:       &location,
		}, nil
	}

	authority := r.directory.Lookup(location.LocalityName, result.Department)

	notifyCtx, endNotify := r.startStage(ctx, "notify")
	status := r.notifyAll(notifyCtx, complaint, authority)
	endNotify()

	citizenNotified := status.CitizenEmail || status.CitizenSMS
	if err := r.repo.UpdateNotificationFlags(ctx, complaint.ID, status.AuthorityEmail, citizenNotified); err != nil {
		r.log.Warn("notification flags not persisted",
			logger.String("complaint_id", complaint.ID),
			logger.Error(err),
		)
	}

	r.recordOutcome(ctx, telemetry.OutcomeRegistered, started)
	r.log.Info("complaint registered",
		logger.String("complaint_id", complaint.ID),
		logger.String("department", result.Department),
		logger.String("urgency", result.Urgency),
		logger.String("locality", location.LocalityName),
	)

	return &domain.Outcome{
		ComplaintID:    complaint.ID,
		Registered:     true,
		Classification: result,
		Location:       &location,
		AuthorityBody:  authority.AuthorityBody,
		AuthorityZone:  authority.Zone,
		Notifications:  status,
	}, nil
}

// resolveLocation extracts a locality and geocodes it. Geocode misses and
// failures degrade to the catalog centroid; no locality at all degrades to
// the city centre. The pipeline never stops for location problems.
func (r *Resolver) resolveLocation(ctx context.Context, text string) domain.LocationResolution {
	name, found := r.extractor.Extract(text)
	if !found {
		r.recordLocalitySource(ctx, "fallback")
		return domain.LocationResolution{
			LocalityName: gazetteer.CityCentre.Name,
			Latitude:     gazetteer.CityCentre.Latitude,
			Longitude:    gazetteer.CityCentre.Longitude,
			Geocoded:     false,
		}
	}
	r.recordLocalitySource(ctx, "gazetteer")

	geocoded, err := r.geocoder.Geocode(ctx, name)
	if err != nil {
		r.recordGeocode(ctx, "error")
		r.log.Warn("geocode failed, using catalog centroid",
			logger.String("locality", name),
			logger.Error(err),
		)
	} else if geocoded == nil {
		r.recordGeocode(ctx, "miss")
	} else {
		r.recordGeocode(ctx, "hit")
		return domain.LocationResolution{
			LocalityName: name,
			Latitude:     geocoded.Latitude,
			Longitude:    geocoded.Longitude,
			DisplayName:  geocoded.DisplayName,
			Geocoded:     true,
		}
	}

	centroid := gazetteer.Centroid(name)
	return domain.LocationResolution{
		LocalityName: name,
		Latitude:     centroid.Latitude,
		Longitude:    centroid.Longitude,
		Geocoded:     false,
	}
}

func (r *Resolver) buildComplaint(post domain.RawPost, contact domain.CitizenContact, result domain.ClassificationResult, location domain.LocationResolution) *domain.Complaint {
	now := r.now().UTC()
	return &domain.Complaint{
		ID:                 r.newID(),
		Title:              post.Title,
		Description:        post.Body,
		Department:         result.Department,
		DepartmentFullName: result.DepartmentFullName,
		Urgency:            result.Urgency,
		Confidence:         result.Confidence,
		Status:             domain.StatusOpen,
		Location:           location.LocalityName,
		Latitude:           location.Latitude,
		Longitude:          location.Longitude,
		Geocoded:           location.Geocoded,
		SourceType:         sourceTypeReddit,
		SourceHandle:       post.Author,
		SourceID:           post.SourceID,
		SourceLink:         post.Permalink,
		CitizenEmail:       contact.Email,
		CitizenPhone:       contact.Phone,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// notifyAll fans out to all three channels concurrently and waits for every
// channel to settle. A failed channel never blocks or cancels the others.
func (r *Resolver) notifyAll(ctx context.Context, c *domain.Complaint, authority domain.AuthorityContact) domain.NotificationStatus {
	var (
		wg     sync.WaitGroup
		status domain.NotificationStatus
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		res := r.authority.SendAuthorityNotice(ctx, c, authority, c.SourceLink)
		status.AuthorityEmail = res.Sent
		r.recordNotification(ctx, "authority_email", res.Sent)
		if !res.Sent {
			r.log.Warn("authority notice not sent",
				logger.String("complaint_id", c.ID),
				logger.String("reason", res.Reason),
			)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if c.CitizenEmail == "" {
			return
		}
		res := r.citizen.SendCitizenEmail(ctx, c.CitizenEmail, c)
		status.CitizenEmail = res.Sent
		r.recordNotification(ctx, "citizen_email", res.Sent)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if c.CitizenPhone == "" {
			return
		}
		res := r.citizen.SendCitizenSMS(ctx, c.CitizenPhone, c)
		status.CitizenSMS = res.Sent
		r.recordNotification(ctx, "citizen_sms", res.Sent)
	}()

	wg.Wait()
	return status
}

// startStage opens a trace span for one pipeline stage. The returned end
// function closes the span and records the stage duration.
func (r *Resolver) startStage(ctx context.Context, stage string) (context.Context, func()) {
	if r.telemetry == nil {
		return ctx, func() {}
	}
	started := r.now()
	spanCtx, span := r.telemetry.StartSpan(ctx, "pipeline."+stage)
	return spanCtx, func() {
		span.End()
		r.telemetry.RecordStage(spanCtx, stage, r.now().Sub(started))
	}
}

func (r *Resolver) recordOutcome(ctx context.Context, outcome string, started time.Time) {
	if r.telemetry != nil {
		r.telemetry.RecordOutcome(ctx, outcome, r.now().Sub(started))
	}
}

func (r *Resolver) recordGeocode(ctx context.Context, result string) {
	if r.telemetry != nil {
		r.telemetry.RecordGeocode(ctx, result)
	}
}

func (r *Resolver) recordLocalitySource(ctx context.Context, source string) {
	if r.telemetry != nil {
		r.telemetry.RecordLocalitySource(ctx, source)
	}
}

func (r *Resolver) recordNotification(ctx context.Context, channel string, sent bool) {
	if r.telemetry != nil {
		r.telemetry.RecordNotification(ctx, channel, sent)
	}
}
