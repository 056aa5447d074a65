package service

import (
	"context"
	"fmt"

	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stazhbg/internship-portal/internal/repository"
	"github.com/stretchr/testify/mock"
)

type SessionRepositoryMock struct {
	mock.Mock
}

var _ repository.SessionRepository = (*SessionRepositoryMock)(nil)

func (m *SessionRepositoryMock) Get(ctx context.Context, token string) ([]byte, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

func (m *SessionRepositoryMock) Set(ctx context.Context, token string, snapshot []byte) error {
	args := m.Called(ctx, token, snapshot)
	return args.Error(0)
}

func (m *SessionRepositoryMock) Remove(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// sessionStoreFake is an in-memory stand-in for the persisted session store,
// used where tests need real round-trips instead of expectations.
type sessionStoreFake struct {
	snapshots map[string][]byte
}

var _ repository.SessionRepository = (*sessionStoreFake)(nil)

func newSessionStoreFake() *sessionStoreFake {
	return &sessionStoreFake{snapshots: make(map[string][]byte)}
}

func (f *sessionStoreFake) Get(_ context.Context, token string) ([]byte, error) {
	snapshot, ok := f.snapshots[token]
	if !ok {
		return nil, fmt.Errorf("%w: session '%s'", apperrors.ErrNotFound, token)
	}

	return snapshot, nil
}

func (f *sessionStoreFake) Set(_ context.Context, token string, snapshot []byte) error {
	f.snapshots[token] = snapshot
	return nil
}

func (f *sessionStoreFake) Remove(_ context.Context, token string) error {
	delete(f.snapshots, token)
	return nil
}
