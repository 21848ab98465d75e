package gql

import (
	"github.com/taskboard-api/dto"
	"github.com/taskboard-api/models"
	"github.com/taskboard-api/services"
)

// dtoAuthPayload is what the signUp/signIn resolvers hand to the
// AuthPayload type's field resolvers.
type dtoAuthPayload = dto.AuthPayload

// Resolver bundles the services the schema resolves against
type Resolver struct {
	Projects *services.ProjectService
	Tasks    *services.TaskService
	Users    *services.UserService
	Auth     *services.AuthService
}

// NewResolver creates a resolver over the given services
func NewResolver(projects *services.ProjectService, tasks *services.TaskService, users *services.UserService, auth *services.AuthService) *Resolver {
	return &Resolver{Projects: projects, Tasks: tasks, Users: users, Auth: auth}
}

// Argument decoding helpers. graphql-go hands input objects to resolvers as
// map[string]interface{}; these map them onto the dto types the services take.

func strArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func strPtrArg(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func inputArg(args map[string]interface{}) map[string]interface{} {
	input, _ := args["input"].(map[string]interface{})
	if input == nil {
		input = map[string]interface{}{}
	}
	return input
}

func decodeCreateProjectInput(input map[string]interface{}) dto.CreateProjectInput {
	return dto.CreateProjectInput{
		Name:        strArg(input, "name"),
		Description: strPtrArg(input, "description"),
	}
}

func decodeUpdateProjectInput(input map[string]interface{}) dto.UpdateProjectInput {
	return dto.UpdateProjectInput{
		Name:        strPtrArg(input, "name"),
		Description: strPtrArg(input, "description"),
	}
}

func decodeCreateTaskInput(input map[string]interface{}) dto.CreateTaskInput {
	return dto.CreateTaskInput{
		Title:       strArg(input, "title"),
		Description: strPtrArg(input, "description"),
		Status:      models.TaskStatus(strArg(input, "status")),
		ProjectID:   strArg(input, "projectId"),
		UserID:      strPtrArg(input, "userId"),
	}
}

func decodeUpdateTaskInput(input map[string]interface{}) dto.UpdateTaskInput {
	var status *models.TaskStatus
	if v, ok := input["status"].(string); ok {
		s := models.TaskStatus(v)
		status = &s
	}
	return dto.UpdateTaskInput{
		Title:       strPtrArg(input, "title"),
		Description: strPtrArg(input, "description"),
		Status:      status,
		ProjectID:   strPtrArg(input, "projectId"),
		UserID:      strPtrArg(input, "userId"),
	}
}

func decodeAssignTaskInput(input map[string]interface{}) dto.AssignTaskInput {
	return dto.AssignTaskInput{
		TaskID: strArg(input, "taskId"),
		UserID: strArg(input, "userId"),
	}
}

func decodeCreateUserInput(input map[string]interface{}) dto.CreateUserInput {
	return dto.CreateUserInput{
		Name:  strArg(input, "name"),
		Email: strArg(input, "email"),
	}
}

func decodeUpdateUserInput(input map[string]interface{}) dto.UpdateUserInput {
	return dto.UpdateUserInput{
		Name:  strPtrArg(input, "name"),
		Email: strPtrArg(input, "email"),
	}
}

func decodeSignUpInput(input map[string]interface{}) dto.SignUpInput {
	return dto.SignUpInput{
		Name:     strArg(input, "name"),
		Email:    strArg(input, "email"),
		Password: strArg(input, "password"),
		Role:     models.Role(strArg(input, "role")),
	}
}

func decodeSignInInput(input map[string]interface{}) dto.SignInInput {
	return dto.SignInInput{
		Email:    strArg(input, "email"),
		Password: strArg(input, "password"),
	}
}
