package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/leave"
	leaveerrors "go-hrm/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn   func(ctx context.Context, companyID, actorID string, req leave.CreateLeaveApplicationRequest) (leave.LeaveApplicationResponse, error)
	getAllFn   func(ctx context.Context, companyID string) ([]leave.LeaveApplicationResponse, error)
	getByIDFn  func(ctx context.Context, companyID, id string) (leave.LeaveApplicationResponse, error)
	calendarFn func(ctx context.Context, companyID string, q leave.CalendarQuery) ([]leave.LeaveApplicationResponse, error)
	approveFn  func(ctx context.Context, companyID, actorID, id string) (leave.LeaveApplicationResponse, error)
	rejectFn   func(ctx context.Context, companyID, actorID, id, rejectionReason string) (leave.LeaveApplicationResponse, error)
	cancelFn   func(ctx context.Context, companyID, actorID, id string) (leave.LeaveApplicationResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, companyID, actorID string, req leave.CreateLeaveApplicationRequest) (leave.LeaveApplicationResponse, error) {
	return f.createFn(ctx, companyID, actorID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, companyID string) ([]leave.LeaveApplicationResponse, error) {
	return f.getAllFn(ctx, companyID)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, companyID, id string) (leave.LeaveApplicationResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}
func (f *fakeLeaveService) Calendar(ctx context.Context, companyID string, q leave.CalendarQuery) ([]leave.LeaveApplicationResponse, error) {
	return f.calendarFn(ctx, companyID, q)
}
func (f *fakeLeaveService) Approve(ctx context.Context, companyID, actorID, id string) (leave.LeaveApplicationResponse, error) {
	return f.approveFn(ctx, companyID, actorID, id)
}
func (f *fakeLeaveService) Reject(ctx context.Context, companyID, actorID, id, rejectionReason string) (leave.LeaveApplicationResponse, error) {
	return f.rejectFn(ctx, companyID, actorID, id, rejectionReason)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, companyID, actorID, id string) (leave.LeaveApplicationResponse, error) {
	return f.cancelFn(ctx, companyID, actorID, id)
}

func TestLeaveHandler_Calendar(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("forwards query params", func(t *testing.T) {
		companyID := uuid.New().String()

		svc := &fakeLeaveService{
			calendarFn: func(ctx context.Context, cid string, q leave.CalendarQuery) ([]leave.LeaveApplicationResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, 2026, q.Year)
				assert.Equal(t, 12, q.Month)
				assert.True(t, q.ShowPending)
				return []leave.LeaveApplicationResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/calendar?year=2026&month=12&show_pending=true", nil)
		c.Set("company_id", companyID)

		h.Calendar(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("invalid month maps to 400", func(t *testing.T) {
		svc := &fakeLeaveService{
			calendarFn: func(ctx context.Context, cid string, q leave.CalendarQuery) ([]leave.LeaveApplicationResponse, error) {
				return nil, leaveerrors.ErrInvalidCalendarMonth
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/calendar?year=2026&month=13", nil)
		c.Set("company_id", uuid.New().String())

		h.Calendar(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("rejection reason forwarded", func(t *testing.T) {
		companyID := uuid.New().String()
		actorID := uuid.New().String()
		appID := uuid.New().String()

		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, cid, aid, id, reason string) (leave.LeaveApplicationResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, actorID, aid)
				assert.Equal(t, appID, id)
				assert.Equal(t, "incomplete handover", reason)
				return leave.LeaveApplicationResponse{ID: id, Status: leave.StatusRejected}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"rejection_reason":"incomplete handover"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+appID+"/reject", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: appID}}
		c.Set("company_id", companyID)
		c.Set("employee_id", actorID)

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-pending application maps to 422", func(t *testing.T) {
		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, cid, aid, id, reason string) (leave.LeaveApplicationResponse, error) {
				return leave.LeaveApplicationResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"rejection_reason":"too late"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/reject", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "x"}}
		c.Set("company_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Reject(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}
