package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/services", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Service{
			{ID: 1, Name: "Corte Feminino", Price: 85, DurationMinutes: 90, Category: "cabelo"},
			{ID: 4, Name: "Manicure", Price: 35, DurationMinutes: 45, Category: "unhas"},
		})
	})
	mux.HandleFunc("/services/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Service{ID: 1, Name: "Corte Feminino", Price: 85, DurationMinutes: 90})
	})
	mux.HandleFunc("/services/2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})
	mux.HandleFunc("/services/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListServices(t *testing.T) {
	srv := newCatalogServer(t)
	client := NewClient(srv.URL+"/", time.Second, logger.NewNop())

	services, err := client.ListServices(context.Background())

	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Corte Feminino", services[0].Name)
	assert.Equal(t, 90, services[0].DurationMinutes)
	assert.Equal(t, "unhas", services[1].Category)
}

func TestClient_GetService(t *testing.T) {
	srv := newCatalogServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{name: "found", id: 1},
		{name: "not found", id: 99, wantErr: ErrServiceNotFound},
		{name: "server error", id: 2, wantErr: ErrInvalidResponse},
		{name: "bad json", id: 3, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := client.GetService(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, svc.ID)
			assert.Equal(t, 85.0, svc.Price)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := newCatalogServer(t)
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, logger.NewNop())

	_, err := client.ListServices(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestStatic(t *testing.T) {
	static := NewStatic(nil)
	ctx := context.Background()

	services, err := static.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, len(DefaultServices))

	svc, err := static.GetService(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Corte Feminino", svc.Name)
	assert.Equal(t, 85.00, svc.Price)
	assert.Equal(t, 90, svc.DurationMinutes)

	// Каталог отдает копии
	svc.Name = "changed"
	again, err := static.GetService(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Corte Feminino", again.Name)

	_, err = static.GetService(ctx, 42)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestFallback(t *testing.T) {
	srv := newCatalogServer(t)
	primary := NewClient(srv.URL, time.Second, logger.NewNop())
	catalog := NewFallback(primary, NewStatic(nil), logger.NewNop())
	ctx := context.Background()

	// Ошибка сервера: берем из встроенного каталога
	svc, err := catalog.GetService(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Corte Masculino", svc.Name)

	// Отсутствие услуги не маскируется
	_, err = catalog.GetService(ctx, 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	services, err := catalog.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 2)
}
