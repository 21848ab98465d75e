package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/taskboard-api/events"
	"github.com/taskboard-api/models"
)

// NewSchema builds the executable schema over the resolver. Queries and
// mutations execute over HTTP; the subscription fields document the topics
// the gateway relays and are not executed here.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	roleEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "Role",
		Values: graphql.EnumValueConfigMap{
			"ADMIN": &graphql.EnumValueConfig{Value: "ADMIN"},
			"USER":  &graphql.EnumValueConfig{Value: "USER"},
		},
	})

	taskStatusEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "TaskStatus",
		Values: graphql.EnumValueConfigMap{
			"PENDING":    &graphql.EnumValueConfig{Value: "PENDING"},
			"INPROGRESS": &graphql.EnumValueConfig{Value: "INPROGRESS"},
			"COMPLETED":  &graphql.EnumValueConfig{Value: "COMPLETED"},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role": &graphql.Field{
				Type: graphql.NewNonNull(roleEnum),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(models.User).Role), nil
				},
			},
		},
	})

	projectType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	taskType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"status": &graphql.Field{
				Type: graphql.NewNonNull(taskStatusEnum),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(models.Task).Status), nil
				},
			},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	// Relation fields are added after both objects exist to close the cycle.
	taskType.AddFieldConfig("project", &graphql.Field{
		Type: graphql.NewNonNull(projectType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			task := p.Source.(models.Task)
			if task.Project != nil {
				return *task.Project, nil
			}
			project, err := r.Projects.GetProject(task.ProjectID)
			if err != nil || project == nil {
				return nil, err
			}
			return *project, nil
		},
	})
	taskType.AddFieldConfig("assignedTo", &graphql.Field{
		Type: userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			task := p.Source.(models.Task)
			if task.AssignedTo != nil {
				return *task.AssignedTo, nil
			}
			if task.UserID == nil {
				return nil, nil
			}
			user, err := r.Users.GetUser(*task.UserID)
			if err != nil || user == nil {
				return nil, err
			}
			return *user, nil
		},
	})
	projectType.AddFieldConfig("tasks", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(taskType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			project := p.Source.(models.Project)
			if project.Tasks != nil {
				return project.Tasks, nil
			}
			return r.Tasks.TasksByProject(project.ID)
		},
	})
	userType.AddFieldConfig("tasks", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(taskType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.User).Tasks, nil
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(dtoAuthPayload).User, nil
				},
			},
		},
	})

	createProjectInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateProjectInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	updateProjectInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateProjectInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	createTaskInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"status":      &graphql.InputObjectFieldConfig{Type: taskStatusEnum},
			"projectId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"userId":      &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})
	updateTaskInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateTaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"status":      &graphql.InputObjectFieldConfig{Type: taskStatusEnum},
			"projectId":   &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"userId":      &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})
	createUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	updateUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	assignTaskInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AssignTaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"taskId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"userId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})
	signUpInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignUpInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"role":     &graphql.InputObjectFieldConfig{Type: roleEnum},
		},
	})
	signInInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignInInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"projects": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(projectType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Projects.ListProjects()
				},
			},
			"project": &graphql.Field{
				Type: projectType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					project, err := r.Projects.GetProject(strArg(p.Args, "id"))
					if err != nil || project == nil {
						return nil, err
					}
					return *project, nil
				},
			},
			"tasks": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Tasks.ListTasks()
				},
			},
			"task": &graphql.Field{
				Type: taskType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					task, err := r.Tasks.GetTask(strArg(p.Args, "id"))
					if err != nil || task == nil {
						return nil, err
					}
					return *task, nil
				},
			},
			"tasksByProject": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Tasks.TasksByProject(strArg(p.Args, "projectId"))
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Users.ListUsers()
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := r.Users.GetUser(strArg(p.Args, "id"))
					if err != nil || user == nil {
						return nil, err
					}
					return *user, nil
				},
			},
		},
	})

	inputOnlyArg := func(input *graphql.InputObject) graphql.FieldConfigArgument {
		return graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
		}
	}
	idAndInputArg := func(input *graphql.InputObject) graphql.FieldConfigArgument {
		return graphql.FieldConfigArgument{
			"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
		}
	}

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProject": &graphql.Field{
				Type: graphql.NewNonNull(projectType),
				Args: inputOnlyArg(createProjectInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					project, err := r.Projects.CreateProject(
						ActorFrom(p.Context),
						decodeCreateProjectInput(inputArg(p.Args)),
						CorrelationIDFrom(p.Context),
					)
					if err != nil {
						return nil, err
					}
					return *project, nil
				},
			},
			"updateProject": &graphql.Field{
				Type: graphql.NewNonNull(projectType),
				Args: idAndInputArg(updateProjectInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					project, err := r.Projects.UpdateProject(
						ActorFrom(p.Context),
						strArg(p.Args, "id"),
						decodeUpdateProjectInput(inputArg(p.Args)),
						CorrelationIDFrom(p.Context),
					)
					if err != nil {
						return nil, err
					}
					return *project, nil
				},
			},
			"deleteProject": &graphql.Field{
				Type: graphql.NewNonNull(projectType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					project, err := r.Projects.DeleteProject(
						ActorFrom(p.Context),
						strArg(p.Args, "id"),
						CorrelationIDFrom(p.Context),
					)
					if err != nil {
						return nil, err
					}
					return *project, nil
				},
			},
			"createTask": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: inputOnlyArg(createTaskInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					task, err := r.Tasks.CreateTask(
						ActorFrom(p.Context),
						decodeCreateTaskInput(inputArg(p.Args)),
						CorrelationIDFrom(p.Context),
					)
					if err != nil {
						return nil, err
					}
					return *task, nil
				},
			},
			"updateTask": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: idAndInputArg(updateTaskInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					task, err := r.Tasks.UpdateTask(
						ActorFrom(p.Context),
						strArg(p.Args, "id"),
						decodeUpdateTaskInput(inputArg(p.Args)),
						CorrelationIDFrom(p.Context),
					)
					if err != nil {
						return nil, err
					}
					return *task, nil
				},
			},
			"deleteTask": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					task, err := r.Tasks.DeleteTask(
						ActorFrom(p.Context),
						strArg(p.Args, "id"),
						CorrelationIDFrom(p.Context),
					)
					if err != nil {
						return nil, err
					}
					return *task, nil
				},
			},
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: inputOnlyArg(createUserInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := r.Users.CreateUser(
						ActorFrom(p.Context),
						decodeCreateUserInput(inputArg(p.Args)),
						CorrelationIDFrom(p.Context),
					)
					if err != nil {
						return nil, err
					}
					return *user, nil
				},
			},
			"updateUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: idAndInputArg(updateUserInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := r.Users.UpdateUser(
						ActorFrom(p.Context),
						strArg(p.Args, "id"),
						decodeUpdateUserInput(inputArg(p.Args)),
						CorrelationIDFrom(p.Context),
					)
					if err != nil {
						return nil, err
					}
					return *user, nil
				},
			},
			"deleteUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := r.Users.DeleteUser(
						ActorFrom(p.Context),
						strArg(p.Args, "id"),
						CorrelationIDFrom(p.Context),
					)
					if err != nil {
						return nil, err
					}
					return *user, nil
				},
			},
			"assignTaskToUser": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: inputOnlyArg(assignTaskInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					task, err := r.Tasks.AssignTask(
						ActorFrom(p.Context),
						decodeAssignTaskInput(inputArg(p.Args)),
						CorrelationIDFrom(p.Context),
					)
					if err != nil {
						return nil, err
					}
					return *task, nil
				},
			},
			"signUp": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: inputOnlyArg(signUpInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					payload, err := r.Auth.SignUp(
						decodeSignUpInput(inputArg(p.Args)),
						CorrelationIDFrom(p.Context),
					)
					if err != nil {
						return nil, err
					}
					return dtoAuthPayload(*payload), nil
				},
			},
			"signIn": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: inputOnlyArg(signInInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					payload, err := r.Auth.SignIn(decodeSignInInput(inputArg(p.Args)))
					if err != nil {
						return nil, err
					}
					return dtoAuthPayload(*payload), nil
				},
			},
		},
	})

	// Subscription fields are served by the gateway, which relays bus topics
	// 1:1 by field name; the resolvers here just pass the event payload
	// through so the type system stays complete.
	passthrough := func(p graphql.ResolveParams) (interface{}, error) {
		return p.Source, nil
	}
	subscriptionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			events.TopicProjectCreated: &graphql.Field{Type: graphql.NewNonNull(projectType), Resolve: passthrough},
			events.TopicProjectUpdated: &graphql.Field{Type: graphql.NewNonNull(projectType), Resolve: passthrough},
			events.TopicProjectDeleted: &graphql.Field{Type: graphql.NewNonNull(projectType), Resolve: passthrough},
			events.TopicTaskCreated:    &graphql.Field{Type: graphql.NewNonNull(taskType), Resolve: passthrough},
			events.TopicTaskUpdated:    &graphql.Field{Type: graphql.NewNonNull(taskType), Resolve: passthrough},
			events.TopicTaskDeleted:    &graphql.Field{Type: graphql.NewNonNull(taskType), Resolve: passthrough},
			events.TopicTaskAssigned:   &graphql.Field{Type: graphql.NewNonNull(taskType), Resolve: passthrough},
			events.TopicUserCreated:    &graphql.Field{Type: graphql.NewNonNull(userType), Resolve: passthrough},
			events.TopicUserUpdated:    &graphql.Field{Type: graphql.NewNonNull(userType), Resolve: passthrough},
			events.TopicUserDeleted:    &graphql.Field{Type: graphql.NewNonNull(userType), Resolve: passthrough},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:        queryType,
		Mutation:     mutationType,
		Subscription: subscriptionType,
	})
}
