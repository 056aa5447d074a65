package service

import (
	"context"
	"testing"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatServiceImpl_RoomsFor(t *testing.T) {
	ctx := context.Background()

	service := NewChatService(newSeededRegistry(t), testLogger())

	rooms, err := service.RoomsFor(ctx, domain.User{ID: "student-1", Role: domain.RoleStudent})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "room-1", rooms[0].ID)

	rooms, err = service.RoomsFor(ctx, domain.User{ID: "student-3", Role: domain.RoleStudent})
	require.NoError(t, err)
	assert.Empty(t, rooms)

	rooms, err = service.RoomsFor(ctx, domain.User{ID: "admin-1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestChatServiceImpl_Messages(t *testing.T) {
	ctx := context.Background()

	service := NewChatService(newSeededRegistry(t), testLogger())

	member := domain.User{ID: "student-1", Role: domain.RoleStudent}
	outsider := domain.User{ID: "student-3", Role: domain.RoleStudent}

	messages, err := service.Messages(ctx, member, "room-1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "emp-nemetschek", messages[0].SenderID)

	_, err = service.Messages(ctx, outsider, "room-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = service.Messages(ctx, member, "room-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestChatServiceImpl_Post(t *testing.T) {
	ctx := context.Background()

	service := NewChatService(newSeededRegistry(t), testLogger())

	member := domain.User{ID: "student-1", Role: domain.RoleStudent}
	employee := domain.User{ID: "emp-nemetschek", Role: domain.RoleCompany, CompanyID: "comp-nemetschek"}
	outsider := domain.User{ID: "emp-chaos", Role: domain.RoleCompany, CompanyID: "comp-chaos"}

	msg, err := service.Post(ctx, member, "room-1", "Hello!")
	require.NoError(t, err)
	assert.Equal(t, "student-1", msg.SenderID)

	_, err = service.Post(ctx, employee, "room-1", "Hi, glad to have you.")
	require.NoError(t, err)

	// Messages come back in append order.
	messages, err := service.Messages(ctx, member, "room-1")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "Hello!", messages[1].Content)
	assert.Equal(t, "Hi, glad to have you.", messages[2].Content)

	_, err = service.Post(ctx, outsider, "room-1", "Let me in")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = service.Post(ctx, member, "room-1", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
