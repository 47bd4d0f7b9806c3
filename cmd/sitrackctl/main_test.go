package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"sitrack/internal/auth"
	"sitrack/internal/config"
	"sitrack/internal/model"
	"sitrack/internal/service"
	serviceMocks "sitrack/internal/service/mocks"
)

const sampleSeed = `
users:
  - name: admin
    full_name: Administrator
    role: Admin
    password: admin12345
  - name: tu
    role: TU
    password: tu12345
`

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseSeedUsers(t *testing.T) {
	users, err := parseSeedUsers([]byte(sampleSeed))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Administrator", users[0].FullName)
	assert.Equal(t, model.RoleTU, users[1].Role)

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty", input: "users: []", wantErr: "no users"},
		{name: "missing name", input: "users:\n  - role: TU\n", wantErr: "user 1: name is required"},
		{name: "bad role", input: "users:\n  - name: x\n    role: Kepala\n", wantErr: `unknown role "Kepala"`},
		{name: "not yaml", input: "users: [", wantErr: "could not parse seed file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSeedUsers([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSeedUsers_MissingFile(t *testing.T) {
	_, err := loadSeedUsers(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read file")
}

func TestSeedUsers(t *testing.T) {
	users, err := parseSeedUsers([]byte(sampleSeed))
	require.NoError(t, err)

	t.Run("creates and skips existing", func(t *testing.T) {
		svc := new(serviceMocks.MockUserService)
		svc.On("Create", mock.Anything, service.UserInput{Name: "admin", FullName: "Administrator", Role: model.RoleAdmin, Password: "admin12345"}).
			Return(nil, fmt.Errorf("%w: username already exists", service.ErrConflict)).Once()
		svc.On("Create", mock.Anything, service.UserInput{Name: "tu", Role: model.RoleTU, Password: "tu12345"}).
			Return(&model.Profile{Name: "tu", Role: model.RoleTU, Email: "tu@sitrack.gov.id"}, nil).Once()

		var out bytes.Buffer
		created, skipped, err := seedUsers(context.Background(), svc, users, &out)

		require.NoError(t, err)
		assert.Equal(t, 1, created)
		assert.Equal(t, 1, skipped)
		assert.Contains(t, out.String(), "skip   admin (exists)")
		assert.Contains(t, out.String(), "create tu (TU) tu@sitrack.gov.id")
		svc.AssertExpectations(t)
	})

	t.Run("stops on other errors", func(t *testing.T) {
		svc := new(serviceMocks.MockUserService)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		created, _, err := seedUsers(context.Background(), svc, users, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, "create admin: connection refused", err.Error())
		assert.Equal(t, 0, created)
		svc.AssertNumberOfCalls(t, "Create", 1)
	})
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := executeCommand(t, "hash-password", "rahasia123")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, auth.CheckPassword(hash, "rahasia123"))

	_, err = executeCommand(t, "hash-password")
	assert.Error(t, err)
}

func TestCatalogCommand(t *testing.T) {
	t.Run("built-in", func(t *testing.T) {
		t.Setenv("CATALOG_FILE", "")
		catalogPath = ""

		out, err := executeCommand(t, "catalog")
		require.NoError(t, err)

		var c config.Catalog
		require.NoError(t, yaml.Unmarshal([]byte(out), &c))
		assert.Equal(t, config.DefaultCatalog().Services, c.Services)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("services: [Pengaduan]\ntodo_items: [Verifikasi berkas]\n"), 0o600))
		t.Cleanup(func() { catalogPath = "" })

		out, err := executeCommand(t, "catalog", "--file", path)
		require.NoError(t, err)
		assert.Contains(t, out, "- Pengaduan")
	})
}
