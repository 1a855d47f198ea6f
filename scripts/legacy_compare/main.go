// Command legacy_compare replays read endpoints against the legacy Express
// server and this service and reports contract differences. Volatile fields
// (ids, timestamps) are stripped before comparing since the two backends do
// not share a database.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"
)

type endpoint struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type endpointsFile struct {
	Endpoints []endpoint `json:"endpoints"`
}

type result struct {
	Endpoint     endpoint
	LegacyStatus int
	GoStatus     int
	StatusMatch  bool
	ShapeMatch   bool
	Err          error
}

var volatileFields = map[string]struct{}{
	"id": {}, "_id": {}, "createdAt": {}, "updatedAt": {}, "token": {}, "affirmation": {},
}

func main() {
	var (
		goBase     string
		legacyBase string
		listPath   string
		token      string
		timeout    time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:5000", "legacy Express API base URL")
	flag.StringVar(&listPath, "endpoints", filepath.Join("scripts", "legacy_compare", "endpoints.json"), "path to endpoint list")
	flag.StringVar(&token, "token", "", "bearer token sent to both backends")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	endpoints, err := loadEndpoints(listPath)
	if err != nil {
		log.Fatalf("failed to load endpoint list: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var breaking int

	fmt.Println("Legacy Contract Report")
	fmt.Println("======================")
	for _, ep := range endpoints {
		res := compare(client, goBase, legacyBase, token, ep)
		printResult(res)
		if ep.Critical && (res.Err != nil || !res.StatusMatch || !res.ShapeMatch) {
			breaking++
		}
	}

	fmt.Printf("Breaking diffs: %d\n", breaking)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadEndpoints(path string) ([]endpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file endpointsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints defined in %s", path)
	}
	return file.Endpoints, nil
}

func compare(client *http.Client, goBase, legacyBase, token string, ep endpoint) result {
	res := result{Endpoint: ep}

	goStatus, goBody, err := fetch(client, goBase, token, ep)
	if err != nil {
		res.Err = fmt.Errorf("go request failed: %w", err)
		return res
	}
	legacyStatus, legacyBody, err := fetch(client, legacyBase, token, ep)
	if err != nil {
		res.Err = fmt.Errorf("legacy request failed: %w", err)
		return res
	}

	res.GoStatus = goStatus
	res.LegacyStatus = legacyStatus
	res.StatusMatch = goStatus == legacyStatus
	res.ShapeMatch = shapesEqual(goBody, legacyBody)
	return res
}

func fetch(client *http.Client, base, token string, ep endpoint) (int, []byte, error) {
	method := strings.ToUpper(strings.TrimSpace(ep.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := ep.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// shapesEqual compares the JSON key structure of two bodies, ignoring
// volatile values. Arrays compare by the shape of their first element since
// the two backends hold different rows.
func shapesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	return reflect.DeepEqual(shapeOf(aj), shapeOf(bj))
}

func shapeOf(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			if _, skip := volatileFields[k]; skip {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		shaped := make(map[string]interface{}, len(keys))
		for _, k := range keys {
			shaped[k] = shapeOf(val[k])
		}
		return shaped
	case []interface{}:
		if len(val) == 0 {
			return "array"
		}
		return []interface{}{shapeOf(val[0])}
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return "null"
	}
}

func printResult(res result) {
	status := "OK"
	if res.Err != nil {
		status = "ERROR"
	} else if !res.StatusMatch || !res.ShapeMatch {
		status = "DIFF"
	}
	fmt.Printf("[%s] %s %s\n", status, res.Endpoint.Method, res.Endpoint.Path)
	if res.Err != nil {
		fmt.Printf("  Error: %v\n", res.Err)
		return
	}
	fmt.Printf("  Go: %d | Legacy: %d | Shape match: %t | Critical: %t\n", res.GoStatus, res.LegacyStatus, res.ShapeMatch, res.Endpoint.Critical)
}
