package list_services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/catalog"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
)

type brokenCatalog struct{}

func (brokenCatalog) ListServices(context.Context) ([]*domain.Service, error) {
	return nil, errors.New("catalog down")
}

func TestHandle(t *testing.T) {
	h := NewHandler(catalog.NewStatic(nil), logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/services", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body ServicesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Services, len(catalog.DefaultServices))
	assert.Equal(t, ServiceResponse{
		ID:              1,
		Name:            "Corte Feminino",
		Description:     "Corte com lavagem e finalização",
		Price:           85.00,
		DurationMinutes: 90,
		Category:        "cabelo",
	}, body.Services[0])
}

func TestHandle_CatalogError(t *testing.T) {
	h := NewHandler(brokenCatalog{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/services", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
