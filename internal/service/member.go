package service

import (
	"context"

	"github.com/brightsprout/kinderportal/internal/domain/model"
	"github.com/brightsprout/kinderportal/internal/ports"
)

// MemberService orchestrates member administration.
type MemberService struct {
	members ports.MemberRepository
}

// NewMemberService constructs a new MemberService.
func NewMemberService(members ports.MemberRepository) *MemberService {
	return &MemberService{members: members}
}

// Activate flips a pending member to active. Returns false when the member
// does not exist or is already active.
func (s *MemberService) Activate(ctx context.Context, id string) (bool, error) {
	return s.members.Activate(ctx, id)
}

// ListPending returns members awaiting activation.
func (s *MemberService) ListPending(ctx context.Context, limit, offset int) ([]model.Member, error) {
	return s.members.ListPending(ctx, limit, offset)
}
