package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"crosswarped.com/xwfill"
	"crosswarped.com/xwfill/internal"
)

type SolveGridRequest struct {
	// Cells marks the fillable cells of the grid, row by row.
	Cells          [][]bool `json:"cells"`
	Words          []string `json:"words"`
	WordScope      string   `json:"wordScope"`
	IncludeObscure bool     `json:"includeObscure"`
	ExcludedWords  []string `json:"excludedWords"`
}

type SolvedSlot struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"`
	Length    int    `json:"length"`
	Word      string `json:"word"`
}

type SolveGridResponse struct {
	Success bool         `json:"success"`
	Solved  bool         `json:"solved"`
	Slots   []SolvedSlot `json:"slots,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func execute(ctx context.Context, req SolveGridRequest) ([]SolvedSlot, bool, error) {
	if len(req.Cells) == 0 {
		return nil, false, fmt.Errorf("cells must not be empty")
	}

	for i, word := range req.Words {
		req.Words[i] = strings.ToLower(word)
	}

	if req.WordScope != "" {
		source, err := internal.NewWordSource(ctx)
		if err != nil {
			return nil, false, fmt.Errorf("internal.NewWordSource: %w", err)
		}
		defer source.Close()
		scoped, err := source.Fetch(ctx, req.WordScope, req.IncludeObscure)
		if err != nil {
			return nil, false, fmt.Errorf("source.Fetch: %w", err)
		}
		fmt.Printf("Loaded %d words for scope %q\n", len(scoped), req.WordScope)
		req.Words = append(req.Words, scoped...)
	}

	excluded := make(map[string]bool, len(req.ExcludedWords))
	for _, word := range req.ExcludedWords {
		excluded[strings.ToLower(word)] = true
	}
	words := req.Words[:0]
	for _, word := range req.Words {
		if !excluded[word] {
			words = append(words, word)
		}
	}

	if len(words) == 0 {
		return nil, false, fmt.Errorf("words must not be empty")
	}

	structure := xwfill.NewStructure(req.Cells)
	solver := xwfill.NewSolver(structure, words)

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
		fmt.Printf("Setting timeout to %v\n", timeout)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	assignment, solved := solver.Solve(ctx)
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if !solved {
		return nil, false, nil
	}

	slots := make([]SolvedSlot, 0, len(assignment))
	for _, slot := range structure.Slots() {
		slots = append(slots, SolvedSlot{
			Row:       slot.Row,
			Col:       slot.Col,
			Direction: slot.Direction.String(),
			Length:    slot.Length,
			Word:      assignment[slot],
		})
	}
	return slots, true, nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func solveGrid(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req SolveGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fmt.Printf("Error parsing JSON body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		response := SolveGridResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	slots, solved, err := execute(r.Context(), req)

	response := SolveGridResponse{
		Success: err == nil,
		Solved:  solved,
		Slots:   slots,
	}
	if err != nil {
		response.Error = err.Error()
	} else if !solved {
		response.Error = "No solution exists for the given grid and words"
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Printf("Error marshaling response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/solve-grid", solveGrid)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
