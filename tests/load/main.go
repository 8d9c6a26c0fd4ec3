// Command load runs an in-process benchmark against the full HTTP surface
// and prints latency percentiles per scenario.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/blob"
	"github.com/oasis/talentboard/internal/catalog"
	"github.com/oasis/talentboard/internal/config"
	httpapi "github.com/oasis/talentboard/internal/http"
	"github.com/oasis/talentboard/internal/notify"
	"github.com/oasis/talentboard/internal/repository"
	"github.com/oasis/talentboard/internal/service"
)

type scenarioResult struct {
	Name          string   `json:"name"`
	Total         int      `json:"total"`
	Success       int      `json:"success"`
	Errors        int      `json:"errors"`
	P50MS         float64  `json:"p50_ms"`
	P95MS         float64  `json:"p95_ms"`
	P99MS         float64  `json:"p99_ms"`
	MaxMS         float64  `json:"max_ms"`
	ThroughputRPS float64  `json:"throughput_rps"`
	ErrorSamples  []string `json:"error_samples,omitempty"`
}

type runResult struct {
	GeneratedAtUTC string           `json:"generated_at_utc"`
	Environment    string           `json:"environment"`
	Results        []scenarioResult `json:"results"`
}

type benchmarkEnv struct {
	server *httptest.Server
	cancel context.CancelFunc
}

func main() {
	searchTotal := flag.Int("search-total", 400, "total job search requests")
	searchConcurrency := flag.Int("search-concurrency", 32, "concurrency for job search requests")
	submitTotal := flag.Int("submit-total", 200, "total application submissions")
	submitConcurrency := flag.Int("submit-concurrency", 24, "concurrency for application submissions")
	trackerTotal := flag.Int("tracker-total", 300, "total tracker reads")
	trackerConcurrency := flag.Int("tracker-concurrency", 24, "concurrency for tracker reads")
	outputPath := flag.String("output", "", "optional path to persist benchmark results JSON")
	flag.Parse()

	env, err := startBenchmarkEnvironment()
	if err != nil {
		log.Fatalf("failed to start local benchmark environment: %v", err)
	}
	defer env.cancel()
	client := env.server.Client()

	searchResult := runScenario("job_search", *searchTotal, *searchConcurrency, func(worker int) error {
		queries := []string{
			"/v1/jobs",
			"/v1/jobs?domain=Operations",
			"/v1/jobs?q=remote",
			"/v1/jobs?spot=Berlin",
			"/v1/jobs?domain=Legal&tenure=3",
		}
		return getOK(client, env.server.URL+queries[worker%len(queries)])
	})

	submitResult := runScenario("application_submit", *submitTotal, *submitConcurrency, func(worker int) error {
		_, err := submitApplication(client, env.server.URL)
		return err
	})

	// Seed one application so tracker reads have a stable target.
	trackerToken, err := submitApplication(client, env.server.URL)
	if err != nil {
		log.Fatalf("failed to seed tracker application: %v", err)
	}
	trackerResult := runScenario("tracker_read", *trackerTotal, *trackerConcurrency, func(worker int) error {
		return getOK(client, env.server.URL+"/tracker/"+trackerToken)
	})

	result := runResult{
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Environment:    "in-process httptest, in-memory store",
		Results:        []scenarioResult{searchResult, submitResult, trackerResult},
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode results: %v", err)
	}
	fmt.Println(string(encoded))

	if *outputPath != "" {
		if err := os.WriteFile(*outputPath, encoded, 0o644); err != nil {
			log.Fatalf("failed to persist results: %v", err)
		}
	}
}

func startBenchmarkEnvironment() (benchmarkEnv, error) {
	ctx, cancel := context.WithCancel(context.Background())
	logger := zap.NewNop()

	store := repository.NewMemoryStore()
	if err := store.SeedJobs(ctx, catalog.SeedJobs()); err != nil {
		cancel()
		return benchmarkEnv{}, err
	}

	mediaRoot, err := os.MkdirTemp("", "talentboard-load-media-")
	if err != nil {
		cancel()
		return benchmarkEnv{}, err
	}
	blobs, err := blob.NewLocalFS(mediaRoot)
	if err != nil {
		cancel()
		return benchmarkEnv{}, err
	}

	webhook := notify.NewWebhook(notify.Config{}, logger)
	go webhook.Start(ctx)

	jobCatalog := catalog.New(store, nil, time.Hour, logger)

	cfg := config.Config{
		PublicOrigin:   "http://localhost",
		RateLimitRPS:   100000,
		RateLimitBurst: 100000,
		CORSOrigins:    []string{"*"},
	}

	board := service.NewBoardService(jobCatalog)
	submissions := service.NewSubmissionService(store, blobs, webhook, cfg.PublicOrigin, logger)
	trackerSvc := service.NewTrackerService(store, webhook, cfg.ReviewerEmail, logger)

	server := httptest.NewServer(httpapi.NewRouter(cfg, board, submissions, trackerSvc, logger))
	return benchmarkEnv{
		server: server,
		cancel: func() {
			cancel()
			server.Close()
			_ = os.RemoveAll(mediaRoot)
		},
	}, nil
}

func runScenario(name string, total, concurrency int, request func(worker int) error) scenarioResult {
	if total <= 0 {
		return scenarioResult{Name: name}
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	latencies := make([]float64, total)
	var errorCount int64
	var sampleMu sync.Mutex
	errorSamples := make([]string, 0, 3)

	jobs := make(chan int)
	var wg sync.WaitGroup
	start := time.Now()
	for worker := 0; worker < concurrency; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for index := range jobs {
				began := time.Now()
				err := request(worker)
				latencies[index] = float64(time.Since(began).Microseconds()) / 1000
				if err != nil {
					atomic.AddInt64(&errorCount, 1)
					sampleMu.Lock()
					if len(errorSamples) < cap(errorSamples) {
						errorSamples = append(errorSamples, err.Error())
					}
					sampleMu.Unlock()
				}
			}
		}(worker)
	}
	for index := 0; index < total; index++ {
		jobs <- index
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(start).Seconds()

	sort.Float64s(latencies)
	errors := int(errorCount)
	return scenarioResult{
		Name:          name,
		Total:         total,
		Success:       total - errors,
		Errors:        errors,
		P50MS:         percentile(latencies, 50),
		P95MS:         percentile(latencies, 95),
		P99MS:         percentile(latencies, 99),
		MaxMS:         latencies[len(latencies)-1],
		ThroughputRPS: float64(total) / math.Max(elapsed, 0.001),
		ErrorSamples:  errorSamples,
	}
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}

func getOK(client *http.Client, url string) error {
	response, err := client.Get(url)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned %d", url, response.StatusCode)
	}
	return nil
}

func submitApplication(client *http.Client, baseURL string) (string, error) {
	var buffer bytes.Buffer
	form := multipart.NewWriter(&buffer)
	fields := map[string]string{
		"job_id":        "job-driver",
		"name":          "Load Candidate",
		"email":         "load@candidate.com",
		"age":           "30",
		"work_auth":     "Citizen",
		"consent":       "true",
		"mode":          "text",
		"text_response": "A sufficiently long benchmark response about logistics work.",
	}
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return "", err
		}
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	request, err := http.NewRequest(http.MethodPost, baseURL+"/v1/applications", &buffer)
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", form.FormDataContentType())

	response, err := client.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()
	raw, _ := io.ReadAll(response.Body)
	if response.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("submit returned %d: %s", response.StatusCode, string(raw))
	}

	var decoded struct {
		TrackerToken string `json:"tracker_token"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", err
	}
	return decoded.TrackerToken, nil
}
