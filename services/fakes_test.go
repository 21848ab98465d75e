package services

import (
	"sync"

	"github.com/google/uuid"
	"github.com/taskboard-api/events"
	"github.com/taskboard-api/models"
	"gorm.io/gorm"
)

// In-memory fakes standing in for the gorm repositories.

type fakeProjectStore struct {
	projects  map[string]models.Project
	createErr error
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: map[string]models.Project{}}
}

func (f *fakeProjectStore) FindAll() ([]models.Project, error) {
	list := make([]models.Project, 0, len(f.projects))
	for _, p := range f.projects {
		list = append(list, p)
	}
	return list, nil
}

func (f *fakeProjectStore) FindByID(id string) (models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return models.Project{}, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProjectStore) ExistsByName(name, excludeID string) (bool, error) {
	for _, p := range f.projects {
		if p.Name == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProjectStore) Create(project models.Project) (models.Project, error) {
	if f.createErr != nil {
		return models.Project{}, f.createErr
	}
	project.ID = uuid.NewString()
	f.projects[project.ID] = project
	return project, nil
}

func (f *fakeProjectStore) Save(project models.Project) (models.Project, error) {
	f.projects[project.ID] = project
	return project, nil
}

func (f *fakeProjectStore) Delete(id string) error {
	delete(f.projects, id)
	return nil
}

type fakeTaskStore struct {
	tasks map[string]models.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[string]models.Task{}}
}

func (f *fakeTaskStore) FindAll() ([]models.Task, error) {
	list := make([]models.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		list = append(list, t)
	}
	return list, nil
}

func (f *fakeTaskStore) FindByID(id string) (models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return models.Task{}, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTaskStore) FindByProject(projectID string) ([]models.Task, error) {
	var list []models.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			list = append(list, t)
		}
	}
	return list, nil
}

func (f *fakeTaskStore) ExistsByTitle(projectID, title, excludeID string) (bool, error) {
	for _, t := range f.tasks {
		if t.ProjectID == projectID && t.Title == title && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaskStore) Create(task models.Task) (models.Task, error) {
	task.ID = uuid.NewString()
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeTaskStore) Save(task models.Task) (models.Task, error) {
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeTaskStore) Delete(id string) error {
	delete(f.tasks, id)
	return nil
}

// deleteByProject mirrors the repository cascade on project deletion
func (f *fakeTaskStore) deleteByProject(projectID string) {
	for id, t := range f.tasks {
		if t.ProjectID == projectID {
			delete(f.tasks, id)
		}
	}
}

type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (f *fakeUserStore) FindAll() ([]models.User, error) {
	list := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		list = append(list, u)
	}
	return list, nil
}

func (f *fakeUserStore) FindByID(id string) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FindByEmail(email string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) ExistsByEmail(email, excludeID string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Create(user models.User) (models.User, error) {
	user.ID = uuid.NewString()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) Save(user models.User) (models.User, error) {
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) Delete(id string) error {
	delete(f.users, id)
	return nil
}

// recordingBus captures every published event
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(evt events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
}

func (b *recordingBus) Subscribe(topics ...string) *events.Subscription {
	return nil
}

func (b *recordingBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.events...)
}

func (b *recordingBus) byTopic(topic string) []events.Event {
	var matched []events.Event
	for _, evt := range b.published() {
		if evt.Topic == topic {
			matched = append(matched, evt)
		}
	}
	return matched
}

var adminActor = &Actor{ID: "admin-1", Email: "admin@example.com", Role: models.RoleAdmin}
var memberActor = &Actor{ID: "user-1", Email: "user@example.com", Role: models.RoleUser}
