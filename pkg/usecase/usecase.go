package usecase

import (
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/utils/querycache"
)

// Cache namespaces. Every write to the backing table invalidates its
// namespace.
const (
	usersNamespace    = "users"
	projectsNamespace = "projects"
)

type UseCases struct {
	repo          interfaces.Repository
	ref           *model.Reference
	cache         *querycache.Cache
	adminPassword string
	sessionTTL    time.Duration
	sink          interfaces.ExportSink
	now           func() time.Time

	User      *UserUseCase
	Project   *ProjectUseCase
	Incident  *IncidentUseCase
	TimeLog   *TimeLogUseCase
	Report    *ReportUseCase
	Transfer  *TransferUseCase
	Session   *SessionUseCase
	Bootstrap *BootstrapUseCase
}

type Option func(*UseCases)

// WithReference replaces the built-in teams, project types and seed roster.
func WithReference(ref *model.Reference) Option {
	return func(uc *UseCases) {
		uc.ref = ref
	}
}

// WithCache enables the read-through cache for users and projects.
func WithCache(c *querycache.Cache) Option {
	return func(uc *UseCases) {
		uc.cache = c
	}
}

// WithAdminPassword sets the shared secret of the admin area. An empty
// password keeps the admin area closed.
func WithAdminPassword(password string) Option {
	return func(uc *UseCases) {
		uc.adminPassword = password
	}
}

// WithSessionTTL sets how long an idle session survives.
func WithSessionTTL(ttl time.Duration) Option {
	return func(uc *UseCases) {
		uc.sessionTTL = ttl
	}
}

// WithExportSink sets where ExportAll writes files.
func WithExportSink(sink interfaces.ExportSink) Option {
	return func(uc *UseCases) {
		uc.sink = sink
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:       repo,
		ref:        model.DefaultReference(),
		sessionTTL: DefaultSessionTTL,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.User = NewUserUseCase(repo, uc.cache)
	uc.Project = NewProjectUseCase(repo, uc.ref, uc.cache, uc.now)
	uc.Incident = NewIncidentUseCase(repo)
	uc.TimeLog = NewTimeLogUseCase(repo, uc.User)
	uc.Report = NewReportUseCase(repo, uc.ref, uc.Project)
	uc.Transfer = NewTransferUseCase(repo, uc.Project, uc.Incident, uc.User, uc.sink, uc.now)
	uc.Session = NewSessionUseCase(uc.User, uc.adminPassword, uc.sessionTTL, uc.now)
	uc.Bootstrap = NewBootstrapUseCase(repo, uc.ref, uc.User, uc.Project, uc.now)

	return uc
}

// Reference returns the lookup tables in use.
func (uc *UseCases) Reference() *model.Reference {
	return uc.ref
}
