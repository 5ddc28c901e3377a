package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Handle(ctx context.Context, command commands.DispatchPendingOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, command)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type fakeJob struct {
	startErr error
	started  bool
	stopped  bool
}

func (f *fakeJob) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	return nil
}

func (f *fakeJob) Stop() { f.stopped = true }

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func assignedOrder(t *testing.T) *order.Order {
	t.Helper()
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 1, decimal.NewFromInt(40))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []order.Line{line}, "", at)
	require.NoError(t, err)
	require.NoError(t, o.SetStatus(order.Preparing, at))
	require.NoError(t, o.AssignPartner(kernel.NewUUID(), at))
	return o
}

func TestDispatchJob_Run(t *testing.T) {
	tests := []struct {
		name    string
		order   func(t *testing.T) *order.Order
		err     error
		level   string
		message string
	}{
		{"assigned", assignedOrder, nil, "level=INFO", "Order dispatched"},
		{"no order", nil, commands.ErrNoOrderAwaitingDispatch, "level=DEBUG", "Nothing to dispatch"},
		{"no partner", nil, commands.ErrNoAvailablePartner, "level=DEBUG", "Nothing to dispatch"},
		{"failure", nil, errors.New("connection refused"), "level=ERROR", "Dispatch job failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			dispatcher := new(MockDispatcher)
			var o *order.Order
			if tt.order != nil {
				o = tt.order(t)
			}
			dispatcher.On("Handle", mock.Anything, mock.Anything).Return(o, tt.err).Once()

			NewDispatchJob(dispatcher, "* * * * * *", bufferLogger(&buf)).Run()

			dispatcher.AssertExpectations(t)
			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), tt.message)
		})
	}
}

func TestDispatchJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewDispatchJob(new(MockDispatcher), "every minute", slog.Default())
	require.Error(t, job.Start())
}

func TestNewJobManager_DispatchIsOptIn(t *testing.T) {
	assert.Equal(t, 0, NewJobManager(new(MockDispatcher), "", slog.Default()).Len())
	assert.Equal(t, 1, NewJobManager(new(MockDispatcher), "*/5 * * * * *", slog.Default()).Len())
}

func TestJobManager_StartAllRollsBack(t *testing.T) {
	first := &fakeJob{}
	second := &fakeJob{startErr: errors.New("bad schedule")}
	third := &fakeJob{}
	jm := &JobManager{jobs: []Job{first, second, third}}

	err := jm.StartAll()

	require.Error(t, err)
	assert.True(t, first.started)
	assert.True(t, first.stopped)
	assert.False(t, third.started)
}
