package taskboardsdk

import (
	"sort"
	"sync"

	"github.com/taskboard-api/events"
	"github.com/taskboard-api/models"
)

// Store holds a client's local copies of the server collections and keeps
// them consistent by merging mutation responses, subscription events and
// optimistic updates. Local copies are never authoritative: they converge
// to server state through events or a fresh seed.
//
// Merging is id-based and idempotent: applying the same create, update or
// delete event twice never duplicates an entry or fails. Events produced by
// this client's own mutations are suppressed by correlation id so the
// subscription echo of a local change is not applied a second time.
type Store struct {
	mu       sync.Mutex
	projects map[string]models.Project
	tasks    map[string]models.Task
	users    map[string]models.User
	echoes   map[string]bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		projects: make(map[string]models.Project),
		tasks:    make(map[string]models.Task),
		users:    make(map[string]models.User),
		echoes:   make(map[string]bool),
	}
}

// SeedProjects replaces the project collection with a full fetch result
func (s *Store) SeedProjects(projects []models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = make(map[string]models.Project, len(projects))
	for _, p := range projects {
		s.projects[p.ID] = p
	}
	s.dropPendingEchoes()
}

// SeedTasks replaces the task collection with a full fetch result
func (s *Store) SeedTasks(tasks []models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		s.tasks[t.ID] = t
	}
	s.dropPendingEchoes()
}

// SeedUsers replaces the user collection with a full fetch result
func (s *Store) SeedUsers(users []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]models.User, len(users))
	for _, u := range users {
		s.users[u.ID] = u
	}
	s.dropPendingEchoes()
}

// dropPendingEchoes forgets all registered correlation ids. A seed replaces
// the collection with server truth, so any echo still in flight is stale;
// ids whose event never arrived (topic not subscribed, or dropped by the
// bus) would otherwise sit in the map forever. Callers hold s.mu.
func (s *Store) dropPendingEchoes() {
	if len(s.echoes) > 0 {
		s.echoes = make(map[string]bool)
	}
}

// UpsertProject inserts or replaces a project by id. Used for the local
// echo of a mutation this client issued.
func (s *Store) UpsertProject(p models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p
}

// UpsertTask inserts or replaces a task by id
func (s *Store) UpsertTask(t models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
}

// UpsertUser inserts or replaces a user by id
func (s *Store) UpsertUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// RemoveProject drops a project and its tasks
func (s *Store) RemoveProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeProjectLocked(id)
}

// RemoveTask drops a task
func (s *Store) RemoveTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
}

// ExpectEcho registers the correlation id of a mutation this client just
// issued. The next subscription event carrying that id is dropped instead
// of merged, because the mutation response already updated the store.
func (s *Store) ExpectEcho(correlationID string) {
	if correlationID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.echoes[correlationID] = true
}

// CancelEcho forgets a registered correlation id. Called when the mutation
// fails, since no event will ever arrive for it.
func (s *Store) CancelEcho(correlationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.echoes, correlationID)
}

// Apply merges one subscription event into the local collections
func (s *Store) Apply(evt events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if evt.CorrelationID != "" && s.echoes[evt.CorrelationID] {
		delete(s.echoes, evt.CorrelationID)
		return
	}

	switch evt.Topic {
	case events.TopicProjectCreated:
		if p, ok := evt.Payload.(models.Project); ok {
			if _, exists := s.projects[p.ID]; !exists {
				s.projects[p.ID] = p
			}
		}
	case events.TopicProjectUpdated:
		if p, ok := evt.Payload.(models.Project); ok {
			if _, exists := s.projects[p.ID]; exists {
				s.projects[p.ID] = p
			}
		}
	case events.TopicProjectDeleted:
		if p, ok := evt.Payload.(models.Project); ok {
			// projectDeleted implies the cascade: drop the children too.
			s.removeProjectLocked(p.ID)
		}
	case events.TopicTaskCreated:
		if t, ok := evt.Payload.(models.Task); ok {
			if _, exists := s.tasks[t.ID]; !exists {
				s.tasks[t.ID] = t
			}
		}
	case events.TopicTaskUpdated, events.TopicTaskAssigned:
		if t, ok := evt.Payload.(models.Task); ok {
			if _, exists := s.tasks[t.ID]; exists {
				s.tasks[t.ID] = t
			}
		}
	case events.TopicTaskDeleted:
		if t, ok := evt.Payload.(models.Task); ok {
			delete(s.tasks, t.ID)
		}
	case events.TopicUserCreated:
		if u, ok := evt.Payload.(models.User); ok {
			if _, exists := s.users[u.ID]; !exists {
				s.users[u.ID] = u
			}
		}
	case events.TopicUserUpdated:
		if u, ok := evt.Payload.(models.User); ok {
			if _, exists := s.users[u.ID]; exists {
				s.users[u.ID] = u
			}
		}
	case events.TopicUserDeleted:
		if u, ok := evt.Payload.(models.User); ok {
			delete(s.users, u.ID)
		}
	}
}

// MoveTask optimistically moves a task to a new status column before the
// server confirms. The returned revert restores the pre-move status and is
// called when the update mutation fails.
func (s *Store) MoveTask(id string, to models.TaskStatus) (revert func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	prev := task.Status
	task.Status = to
	s.tasks[id] = task

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if current, exists := s.tasks[id]; exists {
			current.Status = prev
			s.tasks[id] = current
		}
	}, true
}

// Projects returns the local projects ordered by creation time
func (s *Store) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// Tasks returns the local tasks ordered by creation time
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		list = append(list, t)
	}
	sortTasks(list)
	return list
}

// TasksByProject returns the local tasks of one project ordered by creation time
func (s *Store) TasksByProject(projectID string) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []models.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			list = append(list, t)
		}
	}
	sortTasks(list)
	return list
}

// Users returns the local users ordered by creation time
func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// Project looks up one project by id
func (s *Store) Project(id string) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	return p, ok
}

// Task looks up one task by id
func (s *Store) Task(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	return t, ok
}

// User looks up one user by id
func (s *Store) User(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) removeProjectLocked(id string) {
	delete(s.projects, id)
	for taskID, t := range s.tasks {
		if t.ProjectID == id {
			delete(s.tasks, taskID)
		}
	}
}

func sortTasks(list []models.Task) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
