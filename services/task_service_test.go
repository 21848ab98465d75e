package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard-api/dto"
	"github.com/taskboard-api/events"
	"github.com/taskboard-api/models"
)

type taskFixture struct {
	svc      *TaskService
	tasks    *fakeTaskStore
	projects *fakeProjectStore
	users    *fakeUserStore
	bus      *recordingBus
	project  models.Project
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	tasks := newFakeTaskStore()
	projects := newFakeProjectStore()
	users := newFakeUserStore()
	bus := &recordingBus{}

	project, err := projects.Create(models.Project{Name: "Alpha"})
	require.NoError(t, err)

	return &taskFixture{
		svc:      NewTaskService(tasks, projects, users, bus),
		tasks:    tasks,
		projects: projects,
		users:    users,
		bus:      bus,
		project:  project,
	}
}

func TestCreateTaskDefaultsToPending(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.svc.CreateTask(adminActor, dto.CreateTaskInput{
		Title:     "Write docs",
		ProjectID: f.project.ID,
	}, "corr-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, f.project.ID, task.ProjectID)

	published := f.bus.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.TopicTaskCreated, published[0].Topic)
	assert.Equal(t, "corr-1", published[0].CorrelationID)
}

func TestCreateTaskRequiresExistingProject(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.svc.CreateTask(adminActor, dto.CreateTaskInput{
		Title:     "Write docs",
		ProjectID: "missing",
	}, "")
	require.EqualError(t, err, "Project not found")
	assert.Empty(t, f.bus.published())
}

func TestCreateTaskRejectsDuplicateTitleWithinProject(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Write docs", ProjectID: f.project.ID}, "")
	require.NoError(t, err)

	_, err = f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Write docs", ProjectID: f.project.ID}, "")
	require.EqualError(t, err, "A task with this title already exists in this project")

	// The same title is fine in a different project.
	other, err := f.projects.Create(models.Project{Name: "Beta"})
	require.NoError(t, err)
	_, err = f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Write docs", ProjectID: other.ID}, "")
	require.NoError(t, err)
}

func TestCreateTaskRejectsUnknownAssignee(t *testing.T) {
	f := newTaskFixture(t)

	userID := "missing"
	_, err := f.svc.CreateTask(adminActor, dto.CreateTaskInput{
		Title:     "Write docs",
		ProjectID: f.project.ID,
		UserID:    &userID,
	}, "")
	require.EqualError(t, err, "User not found")
	assert.Empty(t, f.bus.published())
}

func TestUpdateTaskStatusMovePublishesTaskUpdated(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Write docs", ProjectID: f.project.ID}, "")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, task.Status)

	status := models.StatusCompleted
	updated, err := f.svc.UpdateTask(adminActor, task.ID, dto.UpdateTaskInput{Status: &status}, "corr-2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, task.ProjectID, updated.ProjectID)

	// A column move is an ordinary update, not a dedicated topic.
	updates := f.bus.byTopic(events.TopicTaskUpdated)
	require.Len(t, updates, 1)
	assert.Equal(t, "corr-2", updates[0].CorrelationID)
	payload, ok := updates[0].Payload.(models.Task)
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, payload.Status)
}

func TestUpdateTaskNotFound(t *testing.T) {
	f := newTaskFixture(t)

	status := models.StatusCompleted
	_, err := f.svc.UpdateTask(adminActor, "missing", dto.UpdateTaskInput{Status: &status}, "")
	require.EqualError(t, err, "Task not found")
	assert.Empty(t, f.bus.published())
}

func TestUpdateTaskChecksTitleAgainstTargetProject(t *testing.T) {
	f := newTaskFixture(t)

	other, err := f.projects.Create(models.Project{Name: "Beta"})
	require.NoError(t, err)

	_, err = f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Write docs", ProjectID: other.ID}, "")
	require.NoError(t, err)
	task, err := f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Write docs", ProjectID: f.project.ID}, "")
	require.NoError(t, err)

	// Moving the task into Beta while keeping its title collides there.
	title := "Write docs"
	_, err = f.svc.UpdateTask(adminActor, task.ID, dto.UpdateTaskInput{Title: &title, ProjectID: &other.ID}, "")
	require.EqualError(t, err, "A task with this title already exists in this project")
}

func TestUpdateTaskKeepingOwnTitleIsNotAConflict(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Write docs", ProjectID: f.project.ID}, "")
	require.NoError(t, err)

	title := "Write docs"
	desc := "expanded scope"
	updated, err := f.svc.UpdateTask(adminActor, task.ID, dto.UpdateTaskInput{Title: &title, Description: &desc}, "")
	require.NoError(t, err)
	assert.Equal(t, "Write docs", updated.Title)
}

func TestDeleteTaskPublishesTaskDeleted(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Write docs", ProjectID: f.project.ID}, "")
	require.NoError(t, err)

	deleted, err := f.svc.DeleteTask(adminActor, task.ID, "corr-3")
	require.NoError(t, err)
	assert.Equal(t, task.ID, deleted.ID)

	_, ok := f.tasks.tasks[task.ID]
	assert.False(t, ok)

	deletes := f.bus.byTopic(events.TopicTaskDeleted)
	require.Len(t, deletes, 1)
	assert.Equal(t, "corr-3", deletes[0].CorrelationID)
}

func TestAssignTaskPublishesTaskAssigned(t *testing.T) {
	f := newTaskFixture(t)

	user, err := f.users.Create(models.User{Name: "Kim", Email: "kim@example.com", Role: models.RoleUser})
	require.NoError(t, err)
	task, err := f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Write docs", ProjectID: f.project.ID}, "")
	require.NoError(t, err)

	assigned, err := f.svc.AssignTask(adminActor, dto.AssignTaskInput{TaskID: task.ID, UserID: user.ID}, "corr-4")
	require.NoError(t, err)
	require.NotNil(t, assigned.UserID)
	assert.Equal(t, user.ID, *assigned.UserID)

	assigns := f.bus.byTopic(events.TopicTaskAssigned)
	require.Len(t, assigns, 1)
	assert.Equal(t, "corr-4", assigns[0].CorrelationID)
}

func TestAssignTaskRejectsUnknownUser(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Write docs", ProjectID: f.project.ID}, "")
	require.NoError(t, err)

	_, err = f.svc.AssignTask(adminActor, dto.AssignTaskInput{TaskID: task.ID, UserID: "missing"}, "")
	require.EqualError(t, err, "User not found")
}

func TestTaskMutationsRequireAdmin(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.svc.CreateTask(memberActor, dto.CreateTaskInput{Title: "Write docs", ProjectID: f.project.ID}, "")
	require.EqualError(t, err, "Admin privileges required")

	_, err = f.svc.DeleteTask(nil, "any", "")
	require.EqualError(t, err, "Authentication required")

	assert.Empty(t, f.bus.published())
}

func TestTasksByProject(t *testing.T) {
	f := newTaskFixture(t)

	other, err := f.projects.Create(models.Project{Name: "Beta"})
	require.NoError(t, err)

	_, err = f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "One", ProjectID: f.project.ID}, "")
	require.NoError(t, err)
	_, err = f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Two", ProjectID: f.project.ID}, "")
	require.NoError(t, err)
	_, err = f.svc.CreateTask(adminActor, dto.CreateTaskInput{Title: "Three", ProjectID: other.ID}, "")
	require.NoError(t, err)

	tasks, err := f.svc.TasksByProject(f.project.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}
