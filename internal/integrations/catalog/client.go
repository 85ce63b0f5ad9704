package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// Client клиент внешнего каталога услуг
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListServices получает все услуги каталога
func (c *Client) ListServices(ctx context.Context) ([]*domain.Service, error) {
	var services []Service
	if err := c.get(ctx, c.baseURL+"/services", &services); err != nil {
		return nil, err
	}

	result := make([]*domain.Service, 0, len(services))
	for i := range services {
		result = append(result, services[i].ToDomain())
	}
	return result, nil
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	var service Service
	if err := c.get(ctx, fmt.Sprintf("%s/services/%d", c.baseURL, id), &service); err != nil {
		return nil, err
	}
	return service.ToDomain(), nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrServiceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
