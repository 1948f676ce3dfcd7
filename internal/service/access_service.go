// Package service holds the business rules between handlers and repositories.
package service

import (
	"context"
	"strings"

	"accesshub/internal/middleware"
	"accesshub/internal/models"
	"accesshub/internal/repository"
)

// AccessService owns the request admissibility check and the request
// lifecycle.
type AccessService struct {
	requestRepo  repository.RequestRepository
	softwareRepo repository.SoftwareRepository
}

// SubmitRequestInput carries a user's application for an access tier.
type SubmitRequestInput struct {
	UserID     uint
	SoftwareID uint
	AccessType string
	Reason     string
}

// DecideRequestInput carries a manager's status transition.
type DecideRequestInput struct {
	RequestID uint
	Status    string
}

func NewAccessService(requestRepo repository.RequestRepository, softwareRepo repository.SoftwareRepository) *AccessService {
	return &AccessService{requestRepo: requestRepo, softwareRepo: softwareRepo}
}

// SubmitRequest runs the admission checks in order and persists the request
// as Pending. The order is part of the API contract: validation first, then
// software existence, then the approved-coverage conflict, then the
// one-pending-per-pair conflict.
func (s *AccessService) SubmitRequest(ctx context.Context, in SubmitRequestInput) (*models.AccessRequest, error) {
	if in.SoftwareID == 0 {
		return nil, models.NewValidationError("Software id is required")
	}
	tier, ok := models.ParseAccessTier(in.AccessType)
	if !ok {
		return nil, models.NewValidationError("Access type must be one of Read, Write, Admin")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}

	if _, err := s.softwareRepo.GetByID(ctx, in.SoftwareID); err != nil {
		return nil, err
	}

	approved, err := s.requestRepo.FindApproved(ctx, in.UserID, in.SoftwareID)
	if err != nil {
		return nil, err
	}
	// Coverage is asymmetric: a Read holder may still request Write.
	for i := range approved {
		if approved[i].AccessType.Covers(tier) {
			return nil, models.NewConflictError(
				"You already have access that covers the requested tier",
				approved[i].CurrentAccessMeta(),
			)
		}
	}

	if pending, err := s.requestRepo.FindPending(ctx, in.UserID, in.SoftwareID); err != nil {
		return nil, err
	} else if pending != nil {
		return nil, models.NewConflictError(
			"You already have an active request for this software",
			pending.PendingConflictMeta(),
		)
	}

	request := &models.AccessRequest{
		UserID:     in.UserID,
		SoftwareID: in.SoftwareID,
		AccessType: tier,
		Reason:     reason,
	}
	if err := s.requestRepo.CreatePending(ctx, request); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "access request submitted",
		"request_id", request.ID,
		"software_id", request.SoftwareID,
		"access_type", request.AccessType,
	)
	middleware.RequestDecisions.WithLabelValues("submit", "admitted").Inc()
	return request, nil
}

// ListMyRequests returns the user's requests with software populated.
func (s *AccessService) ListMyRequests(ctx context.Context, userID uint) ([]models.AccessRequest, error) {
	return s.requestRepo.ListByUser(ctx, userID)
}

// ListAllRequests returns every request with requester and software
// populated. Callers gate this behind the Manager role.
func (s *AccessService) ListAllRequests(ctx context.Context) ([]models.AccessRequest, error) {
	return s.requestRepo.ListAll(ctx)
}

// DecideRequest overwrites a request's status. Any of the three labels is a
// valid target; there is deliberately no terminal-state guard, so a decided
// request can be re-decided or reopened.
func (s *AccessService) DecideRequest(ctx context.Context, in DecideRequestInput) (*models.AccessRequest, error) {
	status, ok := models.ParseRequestStatus(in.Status)
	if !ok {
		return nil, models.NewValidationError("Status must be one of Pending, Approved, Rejected")
	}

	request, err := s.requestRepo.GetByID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}

	request.Status = status
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "access request decided",
		"request_id", request.ID,
		"status", request.Status,
	)
	middleware.RequestDecisions.WithLabelValues("decide", strings.ToLower(string(status))).Inc()
	return request, nil
}
