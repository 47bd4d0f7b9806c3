package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sitrack/internal/model"
	"sitrack/internal/service"
	serviceMocks "sitrack/internal/service/mocks"
)

func TestTrack(t *testing.T) {
	tests := []struct {
		name            string
		target          string
		setupMock       func(m *serviceMocks.MockTrackingService)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:   "found",
			target: "/track?search=NS-001",
			setupMock: func(m *serviceMocks.MockTrackingService) {
				m.On("Track", mock.Anything, "NS-001").Return(&service.TrackingResult{
					NoSurat:    "NS-001",
					Status:     "Dalam Proses",
					StatusCode: model.StatusInProgress,
					Progress:   24,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "missing search",
			target: "/track",
			setupMock: func(m *serviceMocks.MockTrackingService) {
				m.On("Track", mock.Anything, "").Return(nil, service.ErrSearchRequired).Once()
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Nomor surat diperlukan",
		},
		{
			name:   "unknown letter",
			target: "/track?search=NS-404",
			setupMock: func(m *serviceMocks.MockTrackingService) {
				m.On("Track", mock.Anything, "NS-404").Return(nil, fmt.Errorf("%w: report", service.ErrNotFound)).Once()
			},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Data surat tidak ditemukan",
		},
		{
			name:   "store failure",
			target: "/track?search=NS-500",
			setupMock: func(m *serviceMocks.MockTrackingService) {
				m.On("Track", mock.Anything, "NS-500").Return(nil, errors.New("connection refused")).Once()
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockTrackingService)
			tt.setupMock(mockSvc)

			app := fiber.New()
			app.Get("/track", Track(mockSvc))

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, decodeError(t, resp).Error.Message)
			} else {
				var res service.TrackingResult
				json.NewDecoder(resp.Body).Decode(&res)
				assert.Equal(t, 24, res.Progress)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}
