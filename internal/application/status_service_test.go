package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
	"github.com/bnema/azdo-agent-scaler/internal/ports/mocks"
)

func TestStatusServicePreviewsDecision(t *testing.T) {
	t.Parallel()

	gateway := mocks.NewMockPoolGateway(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	svc := NewStatusService(gateway, clock)

	gateway.EXPECT().ResolvePool(mock.Anything, testPoolName).Return(testPoolID, nil).Once()
	gateway.EXPECT().CountOnlineAgents(mock.Anything, testPoolID).Return(3, nil).Once()
	gateway.EXPECT().CountWaitingJobs(mock.Anything, testPoolID).Return(0, nil).Once()
	gateway.EXPECT().FindIdleAgent(mock.Anything, testPoolID).Return(&domain.IdleAgentRef{ID: 5, Name: "agent-a"}, nil).Once()

	bounds := domain.ScalingBounds{MinAgents: 1, MaxAgents: 5, PollInterval: testInterval}
	status, err := svc.GetStatus(context.Background(), testPoolName, bounds)
	require.NoError(t, err)

	assert.Equal(t, testPoolID, status.PoolID)
	assert.Equal(t, 3, status.Snapshot.OnlineAgents)
	assert.Equal(t, clock.Now(), status.Snapshot.ObservedAt)
	require.NotNil(t, status.IdleAgent)
	assert.Equal(t, "agent-a", status.IdleAgent.Name)
	assert.True(t, status.Decision.ScaleDown)
	assert.Equal(t, 0, status.Decision.TotalScaleUps())
}

func TestStatusServiceSurfacesReadErrors(t *testing.T) {
	t.Parallel()

	gateway := mocks.NewMockPoolGateway(t)
	svc := NewStatusService(gateway, nil)

	gateway.EXPECT().ResolvePool(mock.Anything, testPoolName).Return(testPoolID, nil).Once()
	gateway.EXPECT().CountOnlineAgents(mock.Anything, testPoolID).Return(0, errors.New("401 unauthorized")).Once()
	gateway.EXPECT().CountWaitingJobs(mock.Anything, testPoolID).Return(2, nil).Once()

	_, err := svc.GetStatus(context.Background(), testPoolName, domain.ScalingBounds{MinAgents: 1, MaxAgents: 5, PollInterval: testInterval})
	require.Error(t, err)
	assert.ErrorContains(t, err, "401 unauthorized")
}

func TestStatusServiceRejectsInvalidBounds(t *testing.T) {
	t.Parallel()

	svc := NewStatusService(mocks.NewMockPoolGateway(t), nil)

	_, err := svc.GetStatus(context.Background(), testPoolName, domain.ScalingBounds{MinAgents: 3, MaxAgents: 2, PollInterval: testInterval})
	require.ErrorIs(t, err, domain.ErrInvalidBounds)
}

func TestStatusServiceReportsMissingPool(t *testing.T) {
	t.Parallel()

	gateway := mocks.NewMockPoolGateway(t)
	svc := NewStatusService(gateway, nil)
	gateway.EXPECT().ResolvePool(mock.Anything, "ghost").Return(domain.PoolID(0), domain.ErrPoolNotFound).Once()

	_, err := svc.GetStatus(context.Background(), "ghost", domain.ScalingBounds{MinAgents: 1, MaxAgents: 5, PollInterval: testInterval})
	require.ErrorIs(t, err, domain.ErrPoolNotFound)
}
