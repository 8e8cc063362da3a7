package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/i-a-n/basic-birthdays-app/internal/worker"
)

// triggerDigestRun enqueues an out-of-schedule digest run. It goes through
// the same queue as the weekly tick, so a run already waiting in the queue
// absorbs the manual request.
func (server *Server) triggerDigestRun(ctx *gin.Context) {
	taskID := uuid.NewString()

	opts := []asynq.Option{
		asynq.MaxRetry(0),
		asynq.Queue(worker.QueueDefault),
		asynq.TaskID(taskID),
		asynq.Unique(time.Hour),
	}

	err := server.taskDistributor.DistributeTaskRunDigest(ctx, &worker.PayloadRunDigest{
		TriggeredBy: "manual",
	}, opts...)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			ctx.JSON(http.StatusConflict, gin.H{
				"message": "a digest run is already queued",
			})
			return
		}

		ctx.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	ctx.JSON(http.StatusAccepted, gin.H{
		"task_id": taskID,
		"queue":   worker.QueueDefault,
	})
}

// getDigestTask reports the queue state of one digest task.
func (server *Server) getDigestTask(ctx *gin.Context) {
	taskID := ctx.Param("id")

	info, err := server.taskInspector.GetTaskInfo(ctx, worker.QueueDefault, taskID)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrTaskNotFound))
			return
		}

		ctx.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"task_id":  info.ID,
		"queue":    info.Queue,
		"type":     info.Type,
		"state":    info.State.String(),
		"retried":  info.Retried,
		"last_err": info.LastErr,
	})
}

// deleteDigestTask removes a queued digest task that has not started yet.
func (server *Server) deleteDigestTask(ctx *gin.Context) {
	taskID := ctx.Param("id")

	err := server.taskInspector.DeleteTask(ctx, worker.QueueDefault, taskID)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrTaskNotFound))
			return
		}

		ctx.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "task deleted",
	})
}

// healthCheck verifies the queue backend is reachable.
func (server *Server) healthCheck(ctx *gin.Context) {
	if err := server.redisClient.Ping(ctx).Err(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, errorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
