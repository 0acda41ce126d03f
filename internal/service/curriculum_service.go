package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/training-scheduler-api/internal/dto"
	"github.com/noah-isme/training-scheduler-api/internal/models"
	"github.com/noah-isme/training-scheduler-api/internal/scheduler"
	appErrors "github.com/noah-isme/training-scheduler-api/pkg/errors"
)

type templateSessionReader interface {
	ListByTemplate(ctx context.Context, templateID string) ([]models.TemplateSession, error)
}

type instructorReader interface {
	ListActiveForSubject(ctx context.Context, subjectID string) ([]models.Instructor, error)
}

type classroomReader interface {
	ListAvailable(ctx context.Context, minCapacity int) ([]models.Classroom, error)
}

type bookingReader interface {
	ListBookings(ctx context.Context, kind scheduler.ResourceKind, resourceID string, from, to time.Time) ([]models.Booking, error)
	ListBookingsForResources(ctx context.Context, kind scheduler.ResourceKind, resourceIDs []string, from, to time.Time) ([]models.Booking, error)
}

type holidayReader interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Holiday, error)
}

type curriculumSessionStore interface {
	Upsert(ctx context.Context, session *models.CurriculumSession) error
	ListByRound(ctx context.Context, roundID string) ([]models.CurriculumSession, error)
}

// CurriculumConfig governs generator defaults and proposal retention.
type CurriculumConfig struct {
	ProposalTTL   time.Duration
	RoundCacheTTL time.Duration
	// Defaults apply to every request field left unset.
	Defaults scheduler.Options
	Holidays scheduler.HolidaySet
}

// CurriculumService generates curriculum previews, persists them and answers ad-hoc conflict queries.
type CurriculumService struct {
	templates   templateSessionReader
	instructors instructorReader
	classrooms  classroomReader
	bookings    bookingReader
	holidays    holidayReader
	sessions    curriculumSessionStore
	cache       *CacheService
	metrics     *MetricsService
	store       proposalStore
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         CurriculumConfig
	now         func() time.Time
}

// NewCurriculumService wires the scheduling pipeline. holidays may be nil, in which case only configured holidays apply.
func NewCurriculumService(
	templates templateSessionReader,
	instructors instructorReader,
	classrooms classroomReader,
	bookings bookingReader,
	holidays holidayReader,
	sessions curriculumSessionStore,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg CurriculumConfig,
) *CurriculumService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	if cfg.RoundCacheTTL <= 0 {
		cfg.RoundCacheTTL = 5 * time.Minute
	}
	return &CurriculumService{
		templates:   templates,
		instructors: instructors,
		classrooms:  classrooms,
		bookings:    bookings,
		holidays:    holidays,
		sessions:    sessions,
		cache:       cache,
		metrics:     metrics,
		store:       newProposalStore(cache, cfg.ProposalTTL),
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Generate loads the template and everything the walk needs, runs the generator and stores the result as a proposal.
// Template and date problems come back inside the result; only infrastructure failures are returned as errors.
func (s *CurriculumService) Generate(ctx context.Context, req dto.GenerateCurriculumRequest) (*dto.GenerateCurriculumResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid curriculum generation payload")
	}
	began := s.now()
	opts := s.options(req)

	rows, err := s.templates.ListByTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load curriculum template")
	}
	snap := scheduler.Snapshot{Template: toTemplateSessions(rows)}
	holidays := s.cfg.Holidays

	if start, dateErr := scheduler.ParseDate(req.StartDate); dateErr == nil && len(snap.Template) > 0 {
		if holidays, err = s.prefetch(ctx, req, start, &snap); err != nil {
			return nil, err
		}
	}

	result := scheduler.NewGenerator(holidays).Generate(ctx, opts, snap)
	elapsed := s.now().Sub(began)
	s.metrics.ObserveGeneration(result, elapsed)
	s.logger.Info("curriculum generated",
		zap.String("template_id", req.TemplateID),
		zap.String("round_id", req.RoundID),
		zap.Int("sessions", result.TotalSessions),
		zap.Int("failed_sessions", result.FailedSessions),
		zap.Int("conflicts", len(result.AllConflicts)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Bool("aborted", result.Aborted),
		zap.String("error", result.Error),
		zap.Duration("elapsed", elapsed),
	)

	resp := &dto.GenerateCurriculumResponse{Mode: "preview", Result: result}
	if result.Error != "" || result.Aborted {
		return resp, nil
	}

	proposal := curriculumProposal{
		ID:         uuid.NewString(),
		RoundID:    req.RoundID,
		TemplateID: req.TemplateID,
		Result:     result,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.Save(ctx, proposal); err != nil {
		s.logger.Warn("failed to store curriculum proposal", zap.String("round_id", req.RoundID), zap.Error(err))
		return resp, nil
	}
	expires := proposal.CreatedAt.Add(s.cfg.ProposalTTL)
	resp.ProposalID = proposal.ID
	resp.ExpiresAt = &expires
	return resp, nil
}

func (s *CurriculumService) options(req dto.GenerateCurriculumRequest) scheduler.Options {
	opts := s.cfg.Defaults
	opts.StartDate = req.StartDate
	opts.RoundID = req.RoundID
	if req.SkipWeekends != nil {
		opts.SkipWeekends = *req.SkipWeekends
	}
	if req.SkipHolidays != nil {
		opts.SkipHolidays = *req.SkipHolidays
	}
	if req.PreferredStartHour != nil {
		opts.PreferredStartHour = *req.PreferredStartHour
	}
	if req.PreferredEndHour != nil {
		opts.PreferredEndHour = *req.PreferredEndHour
	}
	if req.MaxSessionsPerDay != nil {
		opts.MaxSessionsPerDay = *req.MaxSessionsPerDay
	}
	if req.MinBreakMinutes != nil {
		opts.MinBreakMinutes = *req.MinBreakMinutes
	}
	if req.MaxContinuousHours != nil {
		opts.MaxContinuousHours = *req.MaxContinuousHours
	}
	return opts
}

// bookingHorizon bounds the booking window fetched for a run. Every template day may be pushed forward by
// weekends, holidays and overflowing sessions, so the window grows with both days and sessions.
func bookingHorizon(start time.Time, template []scheduler.TemplateSession) time.Time {
	days := make(map[int]struct{})
	for _, ts := range template {
		days[ts.DayNumber] = struct{}{}
	}
	return start.AddDate(0, 0, (len(days)+len(template))*2+30)
}

// prefetch fills snap with the directory and booking indexes and returns the holiday table for the run.
// Resource lists are fetched first; bookings follow once the resource ids are known.
func (s *CurriculumService) prefetch(ctx context.Context, req dto.GenerateCurriculumRequest, start time.Time, snap *scheduler.Snapshot) (scheduler.HolidaySet, error) {
	end := bookingHorizon(start, snap.Template)
	subjects := distinctSubjects(snap.Template)

	instructorLists := make([][]models.Instructor, len(subjects))
	var (
		rooms         []models.Classroom
		dbHolidays    []models.Holiday
		roundBookings []models.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, subjectID := range subjects {
		i, subjectID := i, subjectID
		g.Go(func() error {
			list, err := s.instructors.ListActiveForSubject(gctx, subjectID)
			instructorLists[i] = list
			return err
		})
	}
	g.Go(func() error {
		var err error
		rooms, err = s.classrooms.ListAvailable(gctx, req.MinClassroomCapacity)
		return err
	})
	if s.holidays != nil {
		g.Go(func() error {
			var err error
			dbHolidays, err = s.holidays.ListBetween(gctx, start, end)
			return err
		})
	}
	g.Go(func() error {
		var err error
		roundBookings, err = s.bookings.ListBookings(gctx, scheduler.ResourceTrainee, req.RoundID, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scheduling resources")
	}

	directory := make(map[string][]scheduler.Instructor, len(subjects))
	instructorIDs := make(idSet)
	for i, subjectID := range subjects {
		for _, ins := range instructorLists[i] {
			directory[subjectID] = append(directory[subjectID], scheduler.Instructor{ID: ins.ID, Name: ins.FullName})
			instructorIDs.add(ins.ID)
		}
	}
	for _, ts := range snap.Template {
		instructorIDs.add(ts.RequiredInstructorID)
	}
	classrooms, classroomIDs := toClassrooms(rooms)

	var instructorBookings, classroomBookings []models.Booking
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		instructorBookings, err = s.bookings.ListBookingsForResources(gctx, scheduler.ResourceInstructor, instructorIDs.sorted(), start, end)
		return err
	})
	g.Go(func() error {
		var err error
		classroomBookings, err = s.bookings.ListBookingsForResources(gctx, scheduler.ResourceClassroom, classroomIDs.sorted(), start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing bookings")
	}

	// Rows this round already holds for the template's slots are about to be rewritten, not competed with.
	own := make(slotSet, len(snap.Template))
	for _, ts := range snap.Template {
		own.add(ts.DayNumber, ts.SessionNumber)
	}
	snap.Instructors = directory
	snap.Classrooms = classrooms
	snap.InstructorBookings = scheduler.NewBookingIndex(s.toSlots(own.without(req.RoundID, instructorBookings)))
	snap.ClassroomBookings = scheduler.NewBookingIndex(s.toSlots(own.without(req.RoundID, classroomBookings)))
	snap.TraineeBookings = scheduler.NewBookingIndex(s.toSlots(own.without(req.RoundID, roundBookings)))

	extra := make(scheduler.HolidaySet, len(dbHolidays))
	for _, h := range dbHolidays {
		extra[scheduler.DateKey(h.Date)] = h.Name
	}
	return s.cfg.Holidays.Merge(extra), nil
}

// Persist stores a proposal, or inline sessions, one upsert per session. Individual failures are reported and
// skipped. Sessions with CRITICAL or HIGH conflicts are refused unless the request overrides them; inline
// sessions are checked again against current bookings rather than the conflicts they were posted with.
func (s *CurriculumService) Persist(ctx context.Context, req dto.PersistCurriculumRequest) (*dto.PersistCurriculumResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid curriculum persist payload")
	}

	roundID, sessions := req.RoundID, req.Sessions
	if req.ProposalID != "" {
		proposal, ok, err := s.store.Get(ctx, req.ProposalID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load curriculum proposal")
		}
		if !ok {
			return nil, appErrors.ErrProposalExpired
		}
		if roundID != "" && roundID != proposal.RoundID {
			return nil, appErrors.Clone(appErrors.ErrValidation, "roundId does not match the proposal")
		}
		roundID, sessions = proposal.RoundID, proposal.Result.Sessions
	}
	if len(sessions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no sessions to persist")
	}

	if !req.Override {
		blocked := 0
		if req.ProposalID != "" {
			for _, session := range sessions {
				if !session.Successful() {
					blocked++
				}
			}
		} else {
			var err error
			if blocked, err = s.countBlocking(ctx, roundID, sessions); err != nil {
				return nil, err
			}
		}
		if blocked > 0 {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%d sessions carry blocking conflicts; resubmit with override to persist them", blocked))
		}
	}

	resp := &dto.PersistCurriculumResponse{RoundID: roundID, Total: len(sessions), Errors: []string{}}
	for _, session := range sessions {
		if err := ctx.Err(); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", sessionLabel(session), err))
			continue
		}
		if session.DayNumber < 1 || session.SessionNumber < 1 || session.EndTime <= session.StartTime {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: invalid session %s", sessionLabel(session), session.Interval()))
			continue
		}
		if err := s.sessions.Upsert(ctx, toCurriculumSession(roundID, session)); err != nil {
			s.logger.Warn("failed to persist curriculum session",
				zap.String("round_id", roundID),
				zap.Int("day_number", session.DayNumber),
				zap.Int("session_number", session.SessionNumber),
				zap.Error(err))
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", sessionLabel(session), err))
			continue
		}
		resp.SavedCount++
	}
	s.metrics.ObservePersist(resp.SavedCount, len(resp.Errors))

	if resp.SavedCount > 0 {
		_ = s.cache.Invalidate(ctx, roundCachePattern(roundID))
	}
	if req.ProposalID != "" && len(resp.Errors) == 0 {
		_ = s.store.Delete(ctx, req.ProposalID)
	}
	s.logger.Info("curriculum persisted",
		zap.String("round_id", roundID),
		zap.Int("saved", resp.SavedCount),
		zap.Int("failed", len(resp.Errors)))
	return resp, nil
}

// countBlocking recomputes the booking conflicts of inline sessions and returns how many are blocking.
// Sessions of the same batch are checked against each other as well as against stored bookings.
func (s *CurriculumService) countBlocking(ctx context.Context, roundID string, sessions []scheduler.GeneratedSession) (int, error) {
	instructorIDs, classroomIDs := make(idSet), make(idSet)
	own := make(slotSet, len(sessions))
	var from, to time.Time
	for i, session := range sessions {
		date := scheduler.TruncateDate(session.SessionDate)
		if i == 0 || date.Before(from) {
			from = date
		}
		if i == 0 || date.After(to) {
			to = date
		}
		instructorIDs.add(session.AssignedInstructorID)
		classroomIDs.add(session.AssignedClassroomID)
		own.add(session.DayNumber, session.SessionNumber)
	}

	var instructorBookings, classroomBookings, roundBookings []models.Booking
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		instructorBookings, err = s.bookings.ListBookingsForResources(gctx, scheduler.ResourceInstructor, instructorIDs.sorted(), from, to)
		return err
	})
	g.Go(func() error {
		var err error
		classroomBookings, err = s.bookings.ListBookingsForResources(gctx, scheduler.ResourceClassroom, classroomIDs.sorted(), from, to)
		return err
	})
	g.Go(func() error {
		var err error
		roundBookings, err = s.bookings.ListBookings(gctx, scheduler.ResourceTrainee, roundID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing bookings")
	}

	index := func(rows []models.Booking, resource func(scheduler.GeneratedSession) string) *scheduler.BookingIndex {
		slots := s.toSlots(own.without(roundID, rows))
		for _, session := range sessions {
			if id := resource(session); id != "" {
				slots = append(slots, scheduler.BookedSlot{
					ID:         batchSlotID(session),
					ResourceID: id,
					Date:       session.SessionDate,
					Start:      session.StartTime,
					End:        session.EndTime,
					Label:      sessionLabel(session),
				})
			}
		}
		return scheduler.NewBookingIndex(slots)
	}
	instructorIdx := index(instructorBookings, func(gs scheduler.GeneratedSession) string { return gs.AssignedInstructorID })
	classroomIdx := index(classroomBookings, func(gs scheduler.GeneratedSession) string { return gs.AssignedClassroomID })
	roundIdx := index(roundBookings, func(scheduler.GeneratedSession) string { return roundID })

	blocked := 0
	for _, session := range sessions {
		id, interval := batchSlotID(session), session.Interval()
		var conflicts []scheduler.Conflict
		conflicts = append(conflicts, scheduler.FindConflicts(session.AssignedInstructorID, scheduler.ResourceInstructor, session.SessionDate, interval, instructorIdx, id)...)
		conflicts = append(conflicts, scheduler.FindConflicts(session.AssignedClassroomID, scheduler.ResourceClassroom, session.SessionDate, interval, classroomIdx, id)...)
		conflicts = append(conflicts, scheduler.FindConflicts(roundID, scheduler.ResourceTrainee, session.SessionDate, interval, roundIdx, id)...)
		if scheduler.HasBlocking(conflicts) {
			blocked++
		}
	}
	return blocked, nil
}

func batchSlotID(session scheduler.GeneratedSession) string {
	return fmt.Sprintf("batch:%d:%d", session.DayNumber, session.SessionNumber)
}

// CheckSession revalidates one session against the bookings of its date.
func (s *CurriculumService) CheckSession(ctx context.Context, req dto.CheckSessionRequest) (*dto.CheckSessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session check payload")
	}
	date, err := scheduler.ParseDate(req.SessionDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	candidate, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	var instructorBookings, classroomBookings, roundBookings []models.Booking
	g, gctx := errgroup.WithContext(ctx)
	fetch := func(kind scheduler.ResourceKind, resourceID string, dest *[]models.Booking) {
		if resourceID == "" {
			return
		}
		g.Go(func() error {
			list, err := s.bookings.ListBookings(gctx, kind, resourceID, date, date)
			*dest = list
			return err
		})
	}
	fetch(scheduler.ResourceInstructor, req.InstructorID, &instructorBookings)
	fetch(scheduler.ResourceClassroom, req.ClassroomID, &classroomBookings)
	fetch(scheduler.ResourceTrainee, req.RoundID, &roundBookings)
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}

	instructorIdx := scheduler.NewBookingIndex(s.toSlots(instructorBookings))
	conflicts := []scheduler.Conflict{}
	conflicts = append(conflicts, scheduler.FindConflicts(req.InstructorID, scheduler.ResourceInstructor, date, candidate, instructorIdx, req.SessionID)...)
	conflicts = append(conflicts, scheduler.FindConflicts(req.ClassroomID, scheduler.ResourceClassroom, date, candidate,
		scheduler.NewBookingIndex(s.toSlots(classroomBookings)), req.SessionID)...)
	conflicts = append(conflicts, scheduler.FindConflicts(req.RoundID, scheduler.ResourceTrainee, date, candidate,
		scheduler.NewBookingIndex(s.toSlots(roundBookings)), req.SessionID)...)

	if req.InstructorID != "" {
		tracker := scheduler.LoadTracker{
			MaxContinuousHours: s.cfg.Defaults.MaxContinuousHours,
			MinBreakMinutes:    s.cfg.Defaults.MinBreakMinutes,
		}
		var existing []scheduler.Interval
		for _, slot := range instructorIdx.OnDate(req.InstructorID, date) {
			if slot.ID != req.SessionID {
				existing = append(existing, slot.Interval())
			}
		}
		if c := tracker.Check(req.InstructorID, existing, candidate); c != nil {
			conflicts = append(conflicts, *c)
		}
	}

	return &dto.CheckSessionResponse{Conflicts: conflicts, Blocking: scheduler.HasBlocking(conflicts)}, nil
}

// Candidates ranks instructors and classrooms for a prospective slot.
func (s *CurriculumService) Candidates(ctx context.Context, req dto.CandidatesRequest) (*dto.CandidatesResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid candidates payload")
	}
	date, err := scheduler.ParseDate(req.SessionDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	start, err := scheduler.ParseClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	candidate := scheduler.NewInterval(start, req.DurationHours)

	var (
		instructors []models.Instructor
		rooms       []models.Classroom
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		instructors, err = s.instructors.ListActiveForSubject(gctx, req.SubjectID)
		return err
	})
	g.Go(func() error {
		var err error
		rooms, err = s.classrooms.ListAvailable(gctx, req.MinClassroomCapacity)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scheduling resources")
	}

	directory := map[string][]scheduler.Instructor{}
	instructorIDs := make(idSet)
	for _, ins := range instructors {
		directory[req.SubjectID] = append(directory[req.SubjectID], scheduler.Instructor{ID: ins.ID, Name: ins.FullName})
		instructorIDs.add(ins.ID)
	}
	classrooms, classroomIDs := toClassrooms(rooms)

	var instructorBookings, classroomBookings []models.Booking
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		instructorBookings, err = s.bookings.ListBookingsForResources(gctx, scheduler.ResourceInstructor, instructorIDs.sorted(), date, date)
		return err
	})
	g.Go(func() error {
		var err error
		classroomBookings, err = s.bookings.ListBookingsForResources(gctx, scheduler.ResourceClassroom, classroomIDs.sorted(), date, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing bookings")
	}

	return &dto.CandidatesResponse{
		Instructors: scheduler.RankInstructors(req.SubjectID, date, candidate, directory,
			scheduler.NewBookingIndex(s.toSlots(instructorBookings)), req.PreferredInstructorID),
		Classrooms: scheduler.RankClassrooms(date, classrooms,
			scheduler.NewBookingIndex(s.toSlots(classroomBookings)), req.PreferredClassroomID),
	}, nil
}

// RoundSessions lists the persisted sessions of a round, served from cache when possible.
func (s *CurriculumService) RoundSessions(ctx context.Context, roundID string) ([]models.CurriculumSession, error) {
	if roundID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "roundId is required")
	}
	key := roundSessionsKey(roundID)
	var cached []models.CurriculumSession
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	sessions, err := s.sessions.ListByRound(ctx, roundID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load round sessions")
	}
	if sessions == nil {
		sessions = []models.CurriculumSession{}
	}
	_ = s.cache.Set(ctx, key, sessions, s.cfg.RoundCacheTTL)
	return sessions, nil
}

func roundSessionsKey(roundID string) string {
	return fmt.Sprintf("curriculum:round:%s:sessions", roundID)
}

func roundCachePattern(roundID string) string {
	return fmt.Sprintf("curriculum:round:%s:*", roundID)
}

// toSlots converts booking rows into scheduler slots. Rows with unreadable times are skipped and logged.
func (s *CurriculumService) toSlots(rows []models.Booking) []scheduler.BookedSlot {
	slots := make([]scheduler.BookedSlot, 0, len(rows))
	for _, row := range rows {
		start, startErr := scheduler.ParseClock(row.StartTime)
		end, endErr := scheduler.ParseClock(row.EndTime)
		if startErr != nil || endErr != nil {
			s.logger.Warn("skipping booking with unreadable time range",
				zap.String("booking_id", row.ID),
				zap.String("start_time", row.StartTime),
				zap.String("end_time", row.EndTime))
			continue
		}
		slots = append(slots, scheduler.BookedSlot{
			ID:         row.ID,
			ResourceID: row.ResourceID,
			Date:       row.SessionDate,
			Start:      start,
			End:        end,
			Label:      row.Label,
		})
	}
	return slots
}

func parseInterval(startRaw, endRaw string) (scheduler.Interval, error) {
	start, err := scheduler.ParseClock(startRaw)
	if err != nil {
		return scheduler.Interval{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	end, err := scheduler.ParseClock(endRaw)
	if err != nil {
		return scheduler.Interval{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if end <= start {
		return scheduler.Interval{}, appErrors.Clone(appErrors.ErrValidation, "endTime must be after startTime")
	}
	return scheduler.Interval{Start: start, End: end}, nil
}

func toTemplateSessions(rows []models.TemplateSession) []scheduler.TemplateSession {
	out := make([]scheduler.TemplateSession, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduler.TemplateSession{
			ID:                   row.ID,
			DayNumber:            row.DayNumber,
			SessionNumber:        row.SessionNumber,
			SubjectID:            row.SubjectID,
			SubjectName:          row.SubjectName,
			DurationHours:        row.DurationHours,
			RequiredInstructorID: derefString(row.RequiredInstructorID),
			PreferredClassroomID: derefString(row.PreferredClassroomID),
		})
	}
	return out
}

func toClassrooms(rows []models.Classroom) ([]scheduler.Classroom, idSet) {
	classrooms := make([]scheduler.Classroom, 0, len(rows))
	ids := make(idSet, len(rows))
	for _, room := range rows {
		classrooms = append(classrooms, scheduler.Classroom{ID: room.ID, Name: room.Name, Capacity: room.Capacity})
		ids.add(room.ID)
	}
	return classrooms, ids
}

func toCurriculumSession(roundID string, session scheduler.GeneratedSession) *models.CurriculumSession {
	return &models.CurriculumSession{
		RoundID:           roundID,
		TemplateSessionID: optionalString(session.TemplateSessionID),
		SessionDate:       scheduler.TruncateDate(session.SessionDate),
		StartTime:         session.StartTime.String(),
		EndTime:           session.EndTime.String(),
		SubjectID:         session.SubjectID,
		DayNumber:         session.DayNumber,
		SessionNumber:     session.SessionNumber,
		InstructorID:      optionalString(session.AssignedInstructorID),
		ClassroomID:       optionalString(session.AssignedClassroomID),
		QualityScore:      session.QualityScore,
	}
}

func sessionLabel(session scheduler.GeneratedSession) string {
	return fmt.Sprintf("day %d session %d", session.DayNumber, session.SessionNumber)
}

func distinctSubjects(template []scheduler.TemplateSession) []string {
	set := make(idSet)
	for _, ts := range template {
		set.add(ts.SubjectID)
	}
	return set.sorted()
}

// slotSet holds the (day, session) slots of a round that a run or persist is about to rewrite.
type slotSet map[[2]int]struct{}

func (s slotSet) add(day, session int) {
	s[[2]int{day, session}] = struct{}{}
}

// without drops the bookings that are roundID's own rows for slots in the set.
func (s slotSet) without(roundID string, rows []models.Booking) []models.Booking {
	out := make([]models.Booking, 0, len(rows))
	for _, row := range rows {
		if _, ok := s[[2]int{row.DayNumber, row.SessionNumber}]; ok && roundID != "" && row.RoundID == roundID {
			continue
		}
		out = append(out, row)
	}
	return out
}

type idSet map[string]struct{}

func (s idSet) add(id string) {
	if id != "" {
		s[id] = struct{}{}
	}
}

func (s idSet) sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
