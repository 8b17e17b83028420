package services

import (
	"context"
	"fmt"
	"testing"

	"financeflow_backend/internal/advisor"
	"financeflow_backend/internal/services/dto"
	"financeflow_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdviceService_Recommend(t *testing.T) {
	conf := 0.8
	a := &fakeAdvisor{advice: &advisor.Advice{Text: "Split between index funds and an FD.", Confidence: &conf, Sources: []string{"rbi.org.in"}}}
	svc := NewAdviceService(a)

	resp, err := svc.Recommend(context.Background(), &dto.AdviceRequest{Income: 1200000})
	require.NoError(t, err)
	assert.Equal(t, "Split between index funds and an FD.", resp.Recommendation)
	require.NotNil(t, resp.Confidence)
	assert.InDelta(t, 0.8, *resp.Confidence, 1e-9)
	assert.Equal(t, []string{"rbi.org.in"}, resp.Sources)
}

func TestAdviceService_InvalidIncome(t *testing.T) {
	a := &fakeAdvisor{}
	svc := NewAdviceService(a)

	for _, income := range []float64{0, -5} {
		_, err := svc.Recommend(context.Background(), &dto.AdviceRequest{Income: income})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.HTTPCode)
	}
	assert.Zero(t, a.calls)
}

func TestAdviceService_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		target error
	}{
		{name: "timeout", err: advisor.ErrTimeout, status: 504, target: apperrors.ErrAdviceTimeout},
		{name: "upstream failure", err: fmt.Errorf("%w: status 500", advisor.ErrUnavailable), status: 502, target: apperrors.ErrAdviceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAdviceService(&fakeAdvisor{err: tt.err})

			_, err := svc.Recommend(context.Background(), &dto.AdviceRequest{Income: 500000})
			assert.ErrorIs(t, err, tt.target)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, appErr.HTTPCode)
		})
	}
}
