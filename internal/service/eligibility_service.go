package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/eq3-dev/internship-api/internal/models"
	"github.com/eq3-dev/internship-api/internal/session"
	appErrors "github.com/eq3-dev/internship-api/pkg/errors"
)

type eligibilityStudentRepository interface {
	ListActive(ctx context.Context) ([]models.Student, error)
	ListActiveInSession(ctx context.Context, sessionLabel string) ([]models.Student, error)
	ListWithoutSupervisor(ctx context.Context, department, sessionLabel string) ([]models.Student, error)
	ListBySupervisor(ctx context.Context, supervisorID, sessionLabel string) ([]models.Student, error)
	ListWithoutCV(ctx context.Context, sessionLabel string) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]models.Student, error)
	Save(ctx context.Context, student *models.Student) error
	DistinctSessions(ctx context.Context) ([]string, error)
}

type eligibilityStaffRepository interface {
	ListSupervisorsInSession(ctx context.Context, sessionLabel string) ([]models.Staff, error)
	FindByID(ctx context.Context, id string) (*models.Staff, error)
	FindActiveByRoleAndUsername(ctx context.Context, role models.Role, username string) (*models.Staff, error)
}

type eligibilityOfferRepository interface {
	ListActiveByValidity(ctx context.Context, valid bool) ([]models.InternshipOffer, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]models.InternshipOffer, error)
	DistinctSessionsByMonitor(ctx context.Context, monitorID string) ([]string, error)
}

type eligibilityApplicationRepository interface {
	ListActive(ctx context.Context) ([]models.InternshipApplication, error)
	ListWithInterviewDate(ctx context.Context) ([]models.InternshipApplication, error)
	ListWaitingWithInterviewAfter(ctx context.Context, after time.Time) ([]models.InternshipApplication, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]models.InternshipApplication, error)
}

type eligibilityInternshipRepository interface {
	ListMissingEvaluation(ctx context.Context, kind models.EvaluationKind) ([]models.Internship, error)
}

// EligibilityService derives session-scoped views over students, supervisors,
// offers, applications and internships. Every query joins and filters in
// application code, returns deduplicated results, and reports an empty view
// as a typed not-found error so transport can answer uniformly. Store
// failures propagate untouched as internal errors.
type EligibilityService struct {
	students     eligibilityStudentRepository
	staff        eligibilityStaffRepository
	offers       eligibilityOfferRepository
	applications eligibilityApplicationRepository
	internships  eligibilityInternshipRepository
	cache        *CacheService
	metrics      *MetricsService
	logger       *zap.Logger
	now          func() time.Time
}

// NewEligibilityService constructs the eligibility engine.
func NewEligibilityService(
	students eligibilityStudentRepository,
	staff eligibilityStaffRepository,
	offers eligibilityOfferRepository,
	applications eligibilityApplicationRepository,
	internships eligibilityInternshipRepository,
	cache *CacheService,
	logger *zap.Logger,
) *EligibilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EligibilityService{
		students:     students,
		staff:        staff,
		offers:       offers,
		applications: applications,
		internships:  internships,
		cache:        cache,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source, used by tests and session arithmetic.
func (s *EligibilityService) WithClock(now func() time.Time) *EligibilityService {
	s.now = now
	return s
}

// WithMetrics records derivation query timings on the given service.
func (s *EligibilityService) WithMetrics(metrics *MetricsService) *EligibilityService {
	s.metrics = metrics
	return s
}

func (s *EligibilityService) observeQuery(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

// ListStudents returns every active student, CV-normalized.
func (s *EligibilityService) ListStudents(ctx context.Context) ([]models.Student, error) {
	defer s.observeQuery("students_list", time.Now())
	students, err := s.students.ListActive(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list students")
	}
	return finishStudents(students)
}

// ListStudentsInSession returns active students enrolled in the session.
func (s *EligibilityService) ListStudentsInSession(ctx context.Context, sessionLabel string) ([]models.Student, error) {
	students, err := s.students.ListActiveInSession(ctx, sessionLabel)
	if err != nil {
		return nil, storeFailure(err, "failed to list students in session")
	}
	return finishStudents(students)
}

// ListStudentSessions returns the union of every active student's session
// set, in descending session order.
func (s *EligibilityService) ListStudentSessions(ctx context.Context) ([]string, error) {
	const cacheKey = "sessions:students"
	var cached []string
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}
	sessions, err := s.students.DistinctSessions(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list student sessions")
	}
	if len(sessions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no student sessions found")
	}
	session.SortDescending(sessions)
	_ = s.cache.Set(ctx, cacheKey, sessions, 0)
	return sessions, nil
}

// ListStudentsWithoutSupervisor returns students of the department and
// session with an empty supervisor map.
func (s *EligibilityService) ListStudentsWithoutSupervisor(ctx context.Context, department, sessionLabel string) ([]models.Student, error) {
	students, err := s.students.ListWithoutSupervisor(ctx, department, sessionLabel)
	if err != nil {
		return nil, storeFailure(err, "failed to list students without supervisor")
	}
	return finishStudents(students)
}

// ListStudentsBySupervisor returns students assigned to the supervisor for
// the session.
func (s *EligibilityService) ListStudentsBySupervisor(ctx context.Context, supervisorID, sessionLabel string) ([]models.Student, error) {
	students, err := s.students.ListBySupervisor(ctx, supervisorID, sessionLabel)
	if err != nil {
		return nil, storeFailure(err, "failed to list students by supervisor")
	}
	return finishStudents(students)
}

// ListStudentsWithoutCV returns students in the session with no CV on file.
func (s *EligibilityService) ListStudentsWithoutCV(ctx context.Context, sessionLabel string) ([]models.Student, error) {
	students, err := s.students.ListWithoutCV(ctx, sessionLabel)
	if err != nil {
		return nil, storeFailure(err, "failed to list students without cv")
	}
	return finishStudents(students)
}

// ListStudentsWaitingPastInterview returns students holding a WAITING
// application whose interview date has already passed, scoped to the session.
func (s *EligibilityService) ListStudentsWaitingPastInterview(ctx context.Context, sessionLabel string) ([]models.Student, error) {
	applications, err := s.applications.ListWithInterviewDate(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list dated applications")
	}
	now := s.now()
	kept := make([]models.InternshipApplication, 0, len(applications))
	for _, app := range applications {
		if app.Status == models.StatusWaiting && app.InterviewDate != nil && app.InterviewDate.Before(now) {
			kept = append(kept, app)
		}
	}
	students, err := s.studentsFromApplications(ctx, kept, sessionLabel, true)
	if err != nil {
		return nil, err
	}
	return finishStudents(students)
}

// ListStudentsWithoutInterviewDate returns students enrolled in the session
// minus every student holding a dated application whose offer is in that
// session. The subtraction runs over an id index built from the dated
// applications.
func (s *EligibilityService) ListStudentsWithoutInterviewDate(ctx context.Context, sessionLabel string) ([]models.Student, error) {
	defer s.observeQuery("students_without_interview_date", time.Now())
	enrolled, err := s.students.ListActiveInSession(ctx, sessionLabel)
	if err != nil {
		return nil, storeFailure(err, "failed to list students in session")
	}
	dated, err := s.applications.ListWithInterviewDate(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list dated applications")
	}
	offers, err := s.offersForApplications(ctx, dated)
	if err != nil {
		return nil, err
	}

	interviewed := make(map[string]struct{}, len(dated))
	for _, app := range dated {
		if offer, ok := offers[app.OfferID]; ok && offer.Session == sessionLabel {
			interviewed[app.StudentID] = struct{}{}
		}
	}

	remaining := make([]models.Student, 0, len(enrolled))
	for _, student := range enrolled {
		if _, hit := interviewed[student.ID]; !hit {
			remaining = append(remaining, student)
		}
	}
	return finishStudents(remaining)
}

// ListStudentsWithInternship returns the distinct students whose application
// in the session reached completion, in first-seen order.
func (s *EligibilityService) ListStudentsWithInternship(ctx context.Context, sessionLabel string) ([]models.Student, error) {
	defer s.observeQuery("students_with_internship", time.Now())
	applications, err := s.applications.ListActive(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list applications")
	}
	completed := make([]models.InternshipApplication, 0, len(applications))
	for _, app := range applications {
		if app.Status.Completed() {
			completed = append(completed, app)
		}
	}
	students, err := s.studentsFromApplications(ctx, completed, sessionLabel, false)
	if err != nil {
		return nil, err
	}
	return finishStudents(students)
}

// ListStudentsAwaitingInterview returns students with a WAITING application
// whose interview is still ahead, scoped to the session.
func (s *EligibilityService) ListStudentsAwaitingInterview(ctx context.Context, sessionLabel string) ([]models.Student, error) {
	applications, err := s.applications.ListWaitingWithInterviewAfter(ctx, s.now())
	if err != nil {
		return nil, storeFailure(err, "failed to list waiting applications")
	}
	students, err := s.studentsFromApplications(ctx, applications, sessionLabel, true)
	if err != nil {
		return nil, err
	}
	return finishStudents(students)
}

// ListStudentsMissingEvaluation returns students whose completed internship
// in the session still lacks the given evaluation.
func (s *EligibilityService) ListStudentsMissingEvaluation(ctx context.Context, kind models.EvaluationKind, sessionLabel string) ([]models.Student, error) {
	defer s.observeQuery("students_missing_evaluation", time.Now())
	internships, err := s.internships.ListMissingEvaluation(ctx, kind)
	if err != nil {
		return nil, storeFailure(err, "failed to list internships")
	}
	appIDs := make([]string, 0, len(internships))
	for _, internship := range internships {
		appIDs = append(appIDs, internship.ApplicationID)
	}
	applications, err := s.applications.FindByIDs(ctx, appIDs)
	if err != nil {
		return nil, storeFailure(err, "failed to load applications")
	}
	completed := make([]models.InternshipApplication, 0, len(applications))
	for _, internship := range internships {
		app, ok := applications[internship.ApplicationID]
		if ok && app.Status.Completed() {
			completed = append(completed, app)
		}
	}
	students, err := s.studentsFromApplications(ctx, completed, sessionLabel, false)
	if err != nil {
		return nil, err
	}
	return finishStudents(students)
}

// ListSupervisorsInSession returns active supervisors for the session.
func (s *EligibilityService) ListSupervisorsInSession(ctx context.Context, sessionLabel string) ([]models.Staff, error) {
	supervisors, err := s.staff.ListSupervisorsInSession(ctx, sessionLabel)
	if err != nil {
		return nil, storeFailure(err, "failed to list supervisors")
	}
	if len(supervisors) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no supervisors found")
	}
	return supervisors, nil
}

// ListMonitorSessions returns the distinct sessions of the monitor's offers,
// newest first.
func (s *EligibilityService) ListMonitorSessions(ctx context.Context, monitorID string) ([]string, error) {
	cacheKey := "sessions:monitor:" + monitorID
	var cached []string
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}
	sessions, err := s.offers.DistinctSessionsByMonitor(ctx, monitorID)
	if err != nil {
		return nil, storeFailure(err, "failed to list monitor sessions")
	}
	if len(sessions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no offer sessions found")
	}
	session.SortDescending(sessions)
	_ = s.cache.Set(ctx, cacheKey, sessions, 0)
	return sessions, nil
}

// ListUpcomingOfferSessions returns the session labels of offers with the
// requested validity flag that have not passed yet relative to now: any
// strictly later year qualifies, and same-year labels qualify only while the
// current session is Winter (the first session of its year) and the label
// differs from the current one. Ascending order.
func (s *EligibilityService) ListUpcomingOfferSessions(ctx context.Context, valid bool) ([]string, error) {
	offers, err := s.offers.ListActiveByValidity(ctx, valid)
	if err != nil {
		return nil, storeFailure(err, "failed to list offers")
	}

	currentLabel := session.ForDate(s.now())
	currentTag, currentYear, _ := session.Parse(currentLabel)

	seen := make(map[string]struct{}, len(offers))
	sessions := make([]string, 0, len(offers))
	for _, offer := range offers {
		year := session.Year(offer.Session)
		upcoming := year > currentYear ||
			(currentTag == session.TagWinter && year == currentYear && offer.Session != currentLabel)
		if !upcoming {
			continue
		}
		if _, dup := seen[offer.Session]; dup {
			continue
		}
		seen[offer.Session] = struct{}{}
		sessions = append(sessions, offer.Session)
	}
	if len(sessions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no upcoming offer sessions")
	}
	session.SortAscending(sessions)
	return sessions, nil
}

// ListOfferSessions returns every session carrying an offer with the
// requested validity flag, newest first.
func (s *EligibilityService) ListOfferSessions(ctx context.Context, valid bool) ([]string, error) {
	cacheKey := "sessions:offers:invalid"
	if valid {
		cacheKey = "sessions:offers:valid"
	}
	var cached []string
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}
	offers, err := s.offers.ListActiveByValidity(ctx, valid)
	if err != nil {
		return nil, storeFailure(err, "failed to list offers")
	}
	seen := make(map[string]struct{}, len(offers))
	sessions := make([]string, 0, len(offers))
	for _, offer := range offers {
		if _, dup := seen[offer.Session]; dup {
			continue
		}
		seen[offer.Session] = struct{}{}
		sessions = append(sessions, offer.Session)
	}
	if len(sessions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no offer sessions found")
	}
	session.SortDescending(sessions)
	_ = s.cache.Set(ctx, cacheKey, sessions, 0)
	return sessions, nil
}

// GetMonitorByUsername looks up an active monitor account.
func (s *EligibilityService) GetMonitorByUsername(ctx context.Context, username string) (*models.Staff, error) {
	monitor, err := s.staff.FindActiveByRoleAndUsername(ctx, models.RoleMonitor, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "monitor not found")
		}
		return nil, storeFailure(err, "failed to load monitor")
	}
	return monitor, nil
}

// AssignSupervisor records the supervisor for the student's next session.
// Both entities must exist; otherwise nothing is persisted. A repeat call
// for the same pair overwrites the single next-session entry.
func (s *EligibilityService) AssignSupervisor(ctx context.Context, studentID, supervisorID string) (*models.Student, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, storeFailure(err, "failed to load student")
	}
	supervisor, err := s.staff.FindByID(ctx, supervisorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "supervisor not found")
		}
		return nil, storeFailure(err, "failed to load supervisor")
	}
	if supervisor.Role != models.RoleSupervisor {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "supervisor not found")
	}

	if student.Supervisors == nil {
		student.Supervisors = models.SupervisorMap{}
	}
	student.Supervisors[session.NextForDate(s.now())] = supervisor.ID
	if err := s.students.Save(ctx, student); err != nil {
		return nil, storeFailure(err, "failed to save student")
	}
	_ = s.cache.Invalidate(ctx, "sessions:*")
	s.logger.Info("supervisor assigned",
		zap.String("student_id", student.ID),
		zap.String("supervisor_id", supervisor.ID))

	student.NormalizeCVs()
	return student, nil
}

// studentsFromApplications resolves each application's student and offer and
// keeps the distinct students matching the session, in first-seen order.
// When requireEnrollment is set the student must also be enrolled in the
// session, not just applying to an offer within it.
func (s *EligibilityService) studentsFromApplications(ctx context.Context, applications []models.InternshipApplication, sessionLabel string, requireEnrollment bool) ([]models.Student, error) {
	if len(applications) == 0 {
		return nil, nil
	}
	offers, err := s.offersForApplications(ctx, applications)
	if err != nil {
		return nil, err
	}
	studentIDs := make([]string, 0, len(applications))
	for _, app := range applications {
		studentIDs = append(studentIDs, app.StudentID)
	}
	students, err := s.students.FindByIDs(ctx, studentIDs)
	if err != nil {
		return nil, storeFailure(err, "failed to load students")
	}

	seen := make(map[string]struct{}, len(applications))
	result := make([]models.Student, 0, len(applications))
	for _, app := range applications {
		offer, ok := offers[app.OfferID]
		if !ok || offer.Session != sessionLabel {
			continue
		}
		student, ok := students[app.StudentID]
		if !ok || student.Disabled {
			continue
		}
		if requireEnrollment && !student.EnrolledIn(sessionLabel) {
			continue
		}
		if _, dup := seen[student.ID]; dup {
			continue
		}
		seen[student.ID] = struct{}{}
		result = append(result, student)
	}
	return result, nil
}

func (s *EligibilityService) offersForApplications(ctx context.Context, applications []models.InternshipApplication) (map[string]models.InternshipOffer, error) {
	offerIDs := make([]string, 0, len(applications))
	for _, app := range applications {
		offerIDs = append(offerIDs, app.OfferID)
	}
	offers, err := s.offers.FindByIDs(ctx, offerIDs)
	if err != nil {
		return nil, storeFailure(err, "failed to load offers")
	}
	return offers, nil
}

// finishStudents normalizes CV lists and maps an empty view to not-found.
func finishStudents(students []models.Student) ([]models.Student, error) {
	if len(students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no students matched")
	}
	for i := range students {
		students[i].NormalizeCVs()
	}
	return students, nil
}

func storeFailure(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
