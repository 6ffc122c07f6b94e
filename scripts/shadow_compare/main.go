// Command shadow_compare replays read-only API calls against two deployments, typically one backed by
// PostgreSQL and one by the MySQL schema, and reports responses that differ.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
	// keys removed at any depth before comparing, e.g. signed image URLs
	Ignore []string `json:"ignore"`
}

type config struct {
	Targets []target `json:"targets"`
	Ignore  []string `json:"ignore"`
}

type endpoint struct {
	base  string
	token string
}

type comparison struct {
	Target        target
	PrimaryStatus int
	ShadowStatus  int
	StatusMatch   bool
	BodyMatch     bool
	Error         error
	DurPrimary    time.Duration
	DurShadow     time.Duration
}

func main() {
	var (
		primary     endpoint
		shadow      endpoint
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&primary.base, "primary-base", "http://localhost:8080/api/v1", "Primary API base URL")
	flag.StringVar(&shadow.base, "shadow-base", "http://localhost:8081/api/v1", "Shadow API base URL")
	flag.StringVar(&primary.token, "primary-token", os.Getenv("PRIMARY_TOKEN"), "Bearer token for the primary API")
	flag.StringVar(&shadow.token, "shadow-token", os.Getenv("SHADOW_TOKEN"), "Bearer token for the shadow API")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	cfg, err := loadConfig(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)

	for _, t := range cfg.Targets {
		t.Ignore = append(t.Ignore, cfg.Ignore...)
		comp := compareTarget(client, primary, shadow, t)
		switch {
		case comp.Error != nil && t.Critical:
			breaking++
		case comp.Error == nil && (!comp.StatusMatch || !comp.BodyMatch):
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(os.Stdout, comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return &cfg, nil
}

func compareTarget(client *http.Client, primary, shadow endpoint, tgt target) comparison {
	comp := comparison{Target: tgt}
	primaryBody, primaryStatus, primaryDur, err := fetch(client, primary, tgt)
	if err != nil {
		comp.Error = fmt.Errorf("primary request failed: %w", err)
		return comp
	}
	shadowBody, shadowStatus, shadowDur, err := fetch(client, shadow, tgt)
	if err != nil {
		comp.Error = fmt.Errorf("shadow request failed: %w", err)
		return comp
	}

	comp.PrimaryStatus, comp.ShadowStatus = primaryStatus, shadowStatus
	comp.DurPrimary, comp.DurShadow = primaryDur, shadowDur
	comp.StatusMatch = primaryStatus == shadowStatus
	comp.BodyMatch = bodiesEqual(primaryBody, shadowBody, tgt.Ignore)
	return comp
}

func fetch(client *http.Client, ep endpoint, tgt target) ([]byte, int, time.Duration, error) {
	if client == nil {
		return nil, 0, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(ep.base, "/")+path, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	if ep.token != "" {
		req.Header.Set("Authorization", "Bearer "+ep.token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, time.Since(start), nil
}

func bodiesEqual(a, b []byte, ignore []string) bool {
	if len(ignore) == 0 && bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	skip := make(map[string]struct{}, len(ignore))
	for _, key := range ignore {
		skip[key] = struct{}{}
	}
	return reflect.DeepEqual(normalize(aj, skip), normalize(bj, skip))
}

// normalize drops ignored keys and folds integral floats so 2 and 2.0 compare equal.
func normalize(v interface{}, skip map[string]struct{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, child := range val {
			if _, ok := skip[k]; ok {
				delete(val, k)
				continue
			}
			val[k] = normalize(child, skip)
		}
		return val
	case []interface{}:
		for i, child := range val {
			val[i] = normalize(child, skip)
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
	}
	return v
}

func printReport(w io.Writer, results []comparison) {
	fmt.Fprintln(w, "Shadow Compare Report")
	fmt.Fprintln(w, "======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		fmt.Fprintf(w, "  Primary: %d (%s)\n", res.PrimaryStatus, res.DurPrimary)
		fmt.Fprintf(w, "  Shadow:  %d (%s)\n", res.ShadowStatus, res.DurShadow)
		if res.Error != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Error)
		} else {
			fmt.Fprintf(w, "  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		}
	}
}
