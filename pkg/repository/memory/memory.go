package memory

import (
	"context"
	"sync"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps every table in process memory. Writes are serialised by a
// single lock; RunInTx holds that lock for the whole callback and restores a
// snapshot on failure.
type Memory struct {
	mu *sync.RWMutex // nil inside a transaction, the lock is already held
	st *state
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		mu: &sync.RWMutex{},
		st: newState(),
	}
}

func (m *Memory) read() func() {
	if m.mu == nil {
		return func() {}
	}
	m.mu.RLock()
	return m.mu.RUnlock
}

func (m *Memory) write() func() {
	if m.mu == nil {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *Memory) User() interfaces.UserRepository           { return &userRepository{m: m} }
func (m *Memory) Project() interfaces.ProjectRepository     { return &projectRepository{m: m} }
func (m *Memory) Incident() interfaces.IncidentRepository   { return &incidentRepository{m: m} }
func (m *Memory) Milestone() interfaces.MilestoneRepository { return &milestoneRepository{m: m} }
func (m *Memory) StatusReport() interfaces.StatusReportRepository {
	return &statusReportRepository{m: m}
}
func (m *Memory) TimeLog() interfaces.TimeLogRepository { return &timeLogRepository{m: m} }
func (m *Memory) ProjectUpdate() interfaces.ProjectUpdateRepository {
	return &projectUpdateRepository{m: m}
}
func (m *Memory) Report() interfaces.ReportRepository { return &reportRepository{m: m} }

// RunInTx runs fn against a lock-free view of the store. Nested calls take a
// fresh snapshot so an inner failure only undoes the inner work.
func (m *Memory) RunInTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.Repository) error) error {
	unlock := m.write()
	defer unlock()

	snapshot := m.st.clone()
	tx := &Memory{st: m.st}
	if err := fn(ctx, tx); err != nil {
		*m.st = *snapshot
		return err
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}

type state struct {
	users      map[int64]*model.User
	projects   map[int64]*model.Project
	incidents  map[int64]*model.Incident
	milestones map[int64]*model.Milestone
	reports    map[int64]*model.StatusReport
	timeLogs   map[int64]*model.TimeLog
	updates    map[int64]*model.ProjectUpdate
	lastID     map[string]int64
	lastTime   time.Time
}

func newState() *state {
	return &state{
		users:      make(map[int64]*model.User),
		projects:   make(map[int64]*model.Project),
		incidents:  make(map[int64]*model.Incident),
		milestones: make(map[int64]*model.Milestone),
		reports:    make(map[int64]*model.StatusReport),
		timeLogs:   make(map[int64]*model.TimeLog),
		updates:    make(map[int64]*model.ProjectUpdate),
		lastID:     make(map[string]int64),
	}
}

// nextID hands out IDs the way AUTOINCREMENT does: never reused.
func (s *state) nextID(table string) int64 {
	s.lastID[table]++
	return s.lastID[table]
}

// now returns a strictly increasing UTC timestamp so creation order is
// preserved by timestamp sorts.
func (s *state) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.lastTime) {
		t = s.lastTime.Add(time.Microsecond)
	}
	s.lastTime = t
	return t
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = copyUser(v)
	}
	for k, v := range s.projects {
		c.projects[k] = copyProject(v)
	}
	for k, v := range s.incidents {
		c.incidents[k] = copyIncident(v)
	}
	for k, v := range s.milestones {
		c.milestones[k] = copyMilestone(v)
	}
	for k, v := range s.reports {
		c.reports[k] = copyStatusReport(v)
	}
	for k, v := range s.timeLogs {
		c.timeLogs[k] = copyTimeLog(v)
	}
	for k, v := range s.updates {
		c.updates[k] = copyProjectUpdate(v)
	}
	for k, v := range s.lastID {
		c.lastID[k] = v
	}
	c.lastTime = s.lastTime
	return c
}
