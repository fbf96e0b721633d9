package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/result"
)

// TasksController reports the progress of enqueued work.
type TasksController struct {
	client TaskClient
	log    logrus.FieldLogger
}

func NewTasksController(client TaskClient, log logrus.FieldLogger) *TasksController {
	return &TasksController{client: client, log: log}
}

type TaskView struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.client.Status(ctx, taskID)
	if err != nil {
		tc.log.WithError(err).WithField("task_id", taskID).Error("Failed to read task status")
		respond(c, result.Internal[any]())
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondFailure(c, http.StatusNotFound, "Task not found")
		return
	}

	respond(c, result.OK(TaskView{ID: taskID, Status: taskStatusToString(status)}, "Task status fetched successfully"))
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
