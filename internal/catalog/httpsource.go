package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oasis/talentboard/internal/domain"
)

// HTTPSource reads the catalog from a remote JSON endpoint returning the
// full posting list.
type HTTPSource struct {
	client *http.Client
	url    string
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (s *HTTPSource) ListOpenJobs(ctx context.Context) ([]domain.Job, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog source responded %d", response.StatusCode)
	}

	var jobs []domain.Job
	if err := json.NewDecoder(response.Body).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("decode catalog payload: %w", err)
	}
	return jobs, nil
}
