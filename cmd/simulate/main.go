// Command simulate drives a running api-server with a synthetic booking
// day: a pool of workers books office and imaging visits, cancels some of
// them, and pulls reports, then prints latency and conflict stats.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/clinicdesk/clinic-scheduling/internal/api"
)

type SimConfig struct {
	APIBaseURL   string
	Duration     time.Duration
	Workers      int
	DoctorRatio  float64
	ImagingRatio float64
	CancelRatio  float64
	PatientCount int
	DayCount     int
}

var rooms = []string{"XRAY", "CATSCAN", "ULTRASOUND"}

var reportKinds = []string{
	"appointment", "patient", "location", "office", "imaging", "charges", "credits",
}

// DataPool holds the synthetic patients and calendar the workers draw
// from, plus the bookings made so far so cancels have targets.
type DataPool struct {
	Patients []api.PatientRequest
	Dates    []string
	Slots    []string
	NPIs     []string

	mu       sync.RWMutex
	bookings []api.CancelRequest
}

func (dp *DataPool) AddBooking(b api.CancelRequest) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.bookings = append(dp.bookings, b)
}

func (dp *DataPool) RandomBooking(rng *rand.Rand) (api.CancelRequest, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if len(dp.bookings) == 0 {
		return api.CancelRequest{}, false
	}
	return dp.bookings[rng.Intn(len(dp.bookings))], true
}

type OperationMetrics struct {
	Total    int64
	Success  int64
	Conflict int64
	Error    int64

	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(latency time.Duration, success, conflict bool) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case success:
		atomic.AddInt64(&om.Success, 1)
	case conflict:
		atomic.AddInt64(&om.Conflict, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.latencies = append(om.latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.latencies))
	copy(latencies, om.latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]
	p50 = latencies[len(latencies)*50/100]
	p95 = latencies[min2(len(latencies)*95/100, len(latencies)-1)]
	return avg, min, max, p50, p95
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}

type Metrics struct {
	BookDoctor  OperationMetrics
	BookImaging OperationMetrics
	Cancel      OperationMetrics
	Reports     OperationMetrics
}

type Simulator struct {
	config  SimConfig
	pool    *DataPool
	client  *http.Client
	metrics Metrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("config: duration=%s workers=%d doctor=%.2f imaging=%.2f cancel=%.2f",
		cfg.Duration, cfg.Workers, cfg.DoctorRatio, cfg.ImagingRatio, cfg.CancelRatio)

	sim := &Simulator{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	pool, err := sim.buildDataPool()
	if err != nil {
		log.Fatalf("build data pool: %v", err)
	}
	sim.pool = pool

	log.Printf("loaded: %d patients, %d dates, %d slots, %d doctors",
		len(pool.Patients), len(pool.Dates), len(pool.Slots), len(pool.NPIs))

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL:   getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:     getDuration("SIM_DURATION", 30*time.Second),
		Workers:      getInt("SIM_WORKERS", 10),
		DoctorRatio:  getFloat("SIM_DOCTOR_RATIO", 0.4),
		ImagingRatio: getFloat("SIM_IMAGING_RATIO", 0.3),
		CancelRatio:  getFloat("SIM_CANCEL_RATIO", 0.1),
		PatientCount: getInt("SIM_PATIENT_COUNT", 500),
		DayCount:     getInt("SIM_DAY_COUNT", 40),
	}
	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if cfg.DoctorRatio+cfg.ImagingRatio+cfg.CancelRatio > 1 {
		return fmt.Errorf("operation ratios must sum to at most 1")
	}
	return nil
}

// buildDataPool fabricates patients locally and pulls slots and doctor
// NPIs from the running server.
func (s *Simulator) buildDataPool() (*DataPool, error) {
	faker := gofakeit.New(uint64(time.Now().UnixNano()))

	pool := &DataPool{}
	for i := 0; i < s.config.PatientCount; i++ {
		pool.Patients = append(pool.Patients, api.PatientRequest{
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
			DOB: fmt.Sprintf("%d/%d/%d",
				faker.Number(1, 12), faker.Number(1, 28), faker.Number(1940, 2015)),
		})
	}
	pool.Dates = businessDays(time.Now(), s.config.DayCount)

	if err := s.getJSON("/slots", &pool.Slots); err != nil {
		return nil, fmt.Errorf("load slots: %w", err)
	}

	var providers api.ProviderListResponse
	if err := s.getJSON("/providers", &providers); err != nil {
		return nil, fmt.Errorf("load providers: %w", err)
	}
	for _, p := range providers.Providers {
		if p.Type == "doctor" {
			pool.NPIs = append(pool.NPIs, p.NPI)
		}
	}

	if len(pool.Slots) == 0 {
		return nil, fmt.Errorf("no slots loaded")
	}
	if len(pool.NPIs) == 0 {
		return nil, fmt.Errorf("no doctors loaded")
	}
	return pool, nil
}

// businessDays returns the next n weekdays after start, formatted M/D/YYYY.
func businessDays(start time.Time, n int) []string {
	var out []string
	day := start
	for len(out) < n {
		day = day.AddDate(0, 0, 1)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		out = append(out, fmt.Sprintf("%d/%d/%d", int(day.Month()), day.Day(), day.Year()))
	}
	return out
}

func (s *Simulator) getJSON(path string, v any) error {
	resp, err := s.client.Get(s.config.APIBaseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Printf("starting simulation for %s with %d workers", s.config.Duration, s.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	log.Println("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			r := rng.Float64()
			switch {
			case r < s.config.DoctorRatio:
				s.doBookDoctor(ctx, rng)
			case r < s.config.DoctorRatio+s.config.ImagingRatio:
				s.doBookImaging(ctx, rng)
			case r < s.config.DoctorRatio+s.config.ImagingRatio+s.config.CancelRatio:
				s.doCancel(ctx, rng)
			default:
				s.doReport(ctx, rng)
			}
		}
	}
}

func (s *Simulator) post(ctx context.Context, path string, body any) (*http.Response, time.Duration, error) {
	buf, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIBaseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	return resp, time.Since(start), err
}

func (s *Simulator) doBookDoctor(ctx context.Context, rng *rand.Rand) {
	patient := s.pool.Patients[rng.Intn(len(s.pool.Patients))]
	body := api.BookDoctorRequest{
		Date:    s.pool.Dates[rng.Intn(len(s.pool.Dates))],
		Slot:    s.pool.Slots[rng.Intn(len(s.pool.Slots))],
		Patient: patient,
		NPI:     s.pool.NPIs[rng.Intn(len(s.pool.NPIs))],
	}

	resp, latency, err := s.post(ctx, "/visits/doctor", body)
	success, conflict := false, false
	if err == nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		success = resp.StatusCode == http.StatusCreated
		conflict = resp.StatusCode == http.StatusConflict
		if success {
			s.pool.AddBooking(api.CancelRequest{Date: body.Date, Slot: body.Slot, Patient: body.Patient})
		}
	}
	s.metrics.BookDoctor.Record(latency, success, conflict)
}

func (s *Simulator) doBookImaging(ctx context.Context, rng *rand.Rand) {
	patient := s.pool.Patients[rng.Intn(len(s.pool.Patients))]
	body := api.BookImagingRequest{
		Date:    s.pool.Dates[rng.Intn(len(s.pool.Dates))],
		Slot:    s.pool.Slots[rng.Intn(len(s.pool.Slots))],
		Patient: patient,
		Room:    rooms[rng.Intn(len(rooms))],
	}

	resp, latency, err := s.post(ctx, "/visits/imaging", body)
	success, conflict := false, false
	if err == nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		success = resp.StatusCode == http.StatusCreated
		conflict = resp.StatusCode == http.StatusConflict
		if success {
			s.pool.AddBooking(api.CancelRequest{Date: body.Date, Slot: body.Slot, Patient: body.Patient})
		}
	}
	s.metrics.BookImaging.Record(latency, success, conflict)
}

func (s *Simulator) doCancel(ctx context.Context, rng *rand.Rand) {
	booking, ok := s.pool.RandomBooking(rng)
	if !ok {
		return
	}

	resp, latency, err := s.post(ctx, "/visits/cancel", booking)
	success, conflict := false, false
	if err == nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
		// Already canceled by another worker.
		conflict = resp.StatusCode == http.StatusNotFound
	}
	s.metrics.Cancel.Record(latency, success, conflict)
}

func (s *Simulator) doReport(ctx context.Context, rng *rand.Rand) {
	kind := reportKinds[rng.Intn(len(reportKinds))]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.APIBaseURL+"/reports/"+kind, nil)
	if err != nil {
		return
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	if err == nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}
	s.metrics.Reports.Record(latency, success, false)
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Println()

	printOperationReport("Book doctor", &s.metrics.BookDoctor)
	printOperationReport("Book imaging", &s.metrics.BookImaging)
	printOperationReport("Cancel", &s.metrics.Cancel)
	printOperationReport("Reports", &s.metrics.Reports)
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	conflict := atomic.LoadInt64(&om.Conflict)
	errs := atomic.LoadInt64(&om.Error)

	avg, min, max, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Success: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	if conflict > 0 {
		fmt.Printf("  Conflicts: %d (%.1f%%)\n", conflict, float64(conflict)/float64(total)*100)
	}
	if errs > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", errs, float64(errs)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), min.Round(time.Millisecond), max.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Println()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
