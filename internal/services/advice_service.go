package services

import (
	"context"
	"errors"

	"financeflow_backend/internal/advisor"
	"financeflow_backend/internal/logger"
	"financeflow_backend/internal/services/dto"
	"financeflow_backend/pkg/apperrors"
)

// Advisor produces investment advice for an income.
type Advisor interface {
	Recommend(ctx context.Context, income float64) (*advisor.Advice, error)
}

type AdviceService interface {
	Recommend(ctx context.Context, req *dto.AdviceRequest) (*dto.AdviceResponse, error)
}

type AdviceServiceImpl struct {
	advisor Advisor
}

func NewAdviceService(a Advisor) AdviceService {
	return &AdviceServiceImpl{advisor: a}
}

func (s *AdviceServiceImpl) Recommend(ctx context.Context, req *dto.AdviceRequest) (*dto.AdviceResponse, error) {
	if req.Income <= 0 {
		return nil, apperrors.ValidationError(map[string]string{"income": "Valid income must be provided"})
	}

	advice, err := s.advisor.Recommend(ctx, req.Income)
	if err != nil {
		if errors.Is(err, advisor.ErrTimeout) {
			logger.CtxWarn(ctx, "advice request timed out")
			return nil, apperrors.ErrAdviceTimeout.WithError(err)
		}
		logger.CtxWithError(ctx, "advice request failed", err)
		return nil, apperrors.ErrAdviceUnavailable.WithError(err)
	}

	return &dto.AdviceResponse{
		Recommendation: advice.Text,
		Confidence:     advice.Confidence,
		Sources:        advice.Sources,
	}, nil
}
