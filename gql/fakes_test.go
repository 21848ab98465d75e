package gql

import (
	"fmt"

	"github.com/taskboard-api/models"
	"gorm.io/gorm"
)

// Map-backed stores standing in for the gorm repositories.

type memProjectStore struct {
	seq      int
	projects map[string]models.Project
}

func (m *memProjectStore) FindAll() ([]models.Project, error) {
	list := make([]models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		list = append(list, p)
	}
	return list, nil
}

func (m *memProjectStore) FindByID(id string) (models.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return models.Project{}, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *memProjectStore) ExistsByName(name, excludeID string) (bool, error) {
	for _, p := range m.projects {
		if p.Name == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memProjectStore) Create(p models.Project) (models.Project, error) {
	m.seq++
	p.ID = fmt.Sprintf("p%d", m.seq)
	m.projects[p.ID] = p
	return p, nil
}

func (m *memProjectStore) Save(p models.Project) (models.Project, error) {
	m.projects[p.ID] = p
	return p, nil
}

func (m *memProjectStore) Delete(id string) error {
	delete(m.projects, id)
	return nil
}

type memTaskStore struct {
	seq   int
	tasks map[string]models.Task
}

func (m *memTaskStore) FindAll() ([]models.Task, error) {
	list := make([]models.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		list = append(list, t)
	}
	return list, nil
}

func (m *memTaskStore) FindByID(id string) (models.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return models.Task{}, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (m *memTaskStore) FindByProject(projectID string) ([]models.Task, error) {
	var list []models.Task
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			list = append(list, t)
		}
	}
	return list, nil
}

func (m *memTaskStore) ExistsByTitle(projectID, title, excludeID string) (bool, error) {
	for _, t := range m.tasks {
		if t.ProjectID == projectID && t.Title == title && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTaskStore) Create(t models.Task) (models.Task, error) {
	m.seq++
	t.ID = fmt.Sprintf("t%d", m.seq)
	m.tasks[t.ID] = t
	return t, nil
}

func (m *memTaskStore) Save(t models.Task) (models.Task, error) {
	m.tasks[t.ID] = t
	return t, nil
}

func (m *memTaskStore) Delete(id string) error {
	delete(m.tasks, id)
	return nil
}

type memUserStore struct {
	seq   int
	users map[string]models.User
}

func (m *memUserStore) FindAll() ([]models.User, error) {
	list := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		list = append(list, u)
	}
	return list, nil
}

func (m *memUserStore) FindByID(id string) (models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *memUserStore) FindByEmail(email string) (models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memUserStore) ExistsByEmail(email, excludeID string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserStore) Create(u models.User) (models.User, error) {
	m.seq++
	u.ID = fmt.Sprintf("u%d", m.seq)
	m.users[u.ID] = u
	return u, nil
}

func (m *memUserStore) Save(u models.User) (models.User, error) {
	m.users[u.ID] = u
	return u, nil
}

func (m *memUserStore) Delete(id string) error {
	delete(m.users, id)
	return nil
}
