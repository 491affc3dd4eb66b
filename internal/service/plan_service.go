package service

import (
	"context"

	"creative-critique-be/internal/dto"
	"creative-critique-be/pkg/critique/access"

	"github.com/google/uuid"
)

type IPlanService interface {
	GetUserUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error)
}

type planService struct {
	accessVerifier *access.Verifier
}

func NewPlanService(accessVerifier *access.Verifier) IPlanService {
	return &planService{accessVerifier: accessVerifier}
}

func (s *planService) GetUserUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error) {
	status, err := s.accessVerifier.CheckQuota(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.UsageStatusResponse{
		Plan:     string(status.Plan),
		Used:     status.Used,
		Limit:    status.Limit,
		CanStart: status.CanStart,
		ResetsAt: status.ResetsAt,
	}, nil
}
