package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitrack/internal/auth"
	"sitrack/internal/model"
	repoMocks "sitrack/internal/repository/mocks"
)

type stubIssuer struct {
	err error
}

func (s stubIssuer) Issue(p *model.Profile) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "token-for-" + p.ID, fixedNow.Add(time.Hour), nil
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("rahasia123")
	require.NoError(t, err)
	profile := &model.Profile{ID: "u-1", Name: "tu1", Role: model.RoleTU, PasswordHash: hash}

	tests := []struct {
		name     string
		username string
		password string
		setup    func(m *repoMocks.MockStore)
		issuer   stubIssuer
		wantErr  error
	}{
		{
			name:     "success",
			username: " tu1 ",
			password: "rahasia123",
			setup: func(m *repoMocks.MockStore) {
				m.ProfileRepo.On("FindByName", ctx, "tu1").Return(profile, nil)
			},
		},
		{
			name:     "missing fields",
			username: "",
			password: "x",
			setup:    func(m *repoMocks.MockStore) {},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "rahasia123",
			setup: func(m *repoMocks.MockStore) {
				m.ProfileRepo.On("FindByName", ctx, "ghost").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name:     "wrong password",
			username: "tu1",
			password: "salah",
			setup: func(m *repoMocks.MockStore) {
				m.ProfileRepo.On("FindByName", ctx, "tu1").Return(profile, nil)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name:     "signing fails",
			username: "tu1",
			password: "rahasia123",
			setup: func(m *repoMocks.MockStore) {
				m.ProfileRepo.On("FindByName", ctx, "tu1").Return(profile, nil)
			},
			issuer:  stubIssuer{err: errors.New("no key")},
			wantErr: errors.New("no key"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repoMocks.NewMockStore()
			tt.setup(store)
			svc := NewAuthService(store, tt.issuer)

			res, err := svc.Login(ctx, tt.username, tt.password)

			if tt.wantErr != nil {
				assert.Nil(t, res)
				if errors.Is(tt.wantErr, ErrInvalidInput) || errors.Is(tt.wantErr, ErrUnauthorized) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "token-for-u-1", res.AccessToken)
				assert.Equal(t, "Bearer", res.TokenType)
				assert.Equal(t, profile, res.Profile)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()
	svc := NewAuthService(store, stubIssuer{})

	_, err := svc.Me(ctx, "")
	assert.ErrorIs(t, err, ErrIDRequired)

	store.ProfileRepo.On("FindByID", mock.Anything, "u-1").Return(&model.Profile{ID: "u-1"}, nil)
	store.ProfileRepo.On("FindByID", mock.Anything, "gone").Return(nil, sql.ErrNoRows)

	p, err := svc.Me(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.ID)

	_, err = svc.Me(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}
