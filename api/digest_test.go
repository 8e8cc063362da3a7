package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/i-a-n/basic-birthdays-app/internal/util"
	"github.com/i-a-n/basic-birthdays-app/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDistributor struct {
	payloads []*worker.PayloadRunDigest
	err      error
}

func (d *fakeDistributor) DistributeTaskRunDigest(ctx context.Context, payload *worker.PayloadRunDigest, opts ...asynq.Option) error {
	if d.err != nil {
		return d.err
	}
	d.payloads = append(d.payloads, payload)
	return nil
}

type fakeInspector struct {
	info *asynq.TaskInfo
	err  error
}

func (i *fakeInspector) GetTaskInfo(ctx context.Context, queue, taskID string) (*asynq.TaskInfo, error) {
	return i.info, i.err
}

func (i *fakeInspector) DeleteTask(ctx context.Context, queue, taskID string) error {
	return i.err
}

func newTestServer(distributor worker.TaskDistributor, inspector worker.TaskInspector) *Server {
	gin.SetMode(gin.TestMode)
	return NewServer(distributor, inspector, nil, &util.Config{})
}

func TestTriggerDigestRun(t *testing.T) {
	distributor := &fakeDistributor{}
	server := newTestServer(distributor, &fakeInspector{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/digest/runs", nil)
	server.router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusAccepted, recorder.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.NotEmpty(t, response["task_id"])
	assert.Equal(t, worker.QueueDefault, response["queue"])

	require.Len(t, distributor.payloads, 1)
	assert.Equal(t, "manual", distributor.payloads[0].TriggeredBy)
}

func TestTriggerDigestRun_AlreadyQueued(t *testing.T) {
	distributor := &fakeDistributor{err: asynq.ErrDuplicateTask}
	server := newTestServer(distributor, &fakeInspector{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/digest/runs", nil)
	server.router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestGetDigestTask_NotFound(t *testing.T) {
	inspector := &fakeInspector{err: asynq.ErrTaskNotFound}
	server := newTestServer(&fakeDistributor{}, inspector)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/v1/digest/tasks/missing", nil)
	server.router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteDigestTask_NotFound(t *testing.T) {
	inspector := &fakeInspector{err: asynq.ErrTaskNotFound}
	server := newTestServer(&fakeDistributor{}, inspector)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodDelete, "/v1/digest/tasks/missing", nil)
	server.router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
