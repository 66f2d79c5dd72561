package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Turn is a single turn in a conversation transcript, as produced by the
// scenario runner. Turns arrive ordered by turn_index.
type Turn struct {
	TurnIndex int    `json:"turn_index"`
	Role      string `json:"role"` // "system", "user", or "assistant"
	Content   string `json:"content"`
	Phase     string `json:"phase,omitempty"`
	NodeID    string `json:"node_id,omitempty"`
}

// ParseFile reads a JSONL transcript file into an ordered list of turns.
func ParseFile(path string) ([]Turn, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads line-delimited JSON turn records from r.
// Blank lines are skipped; a malformed line is an error, reported with its
// line number so bad scenario exports are easy to locate.
func Parse(r io.Reader) ([]Turn, error) {
	var turns []Turn

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB line buffer
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var turn Turn
		if err := json.Unmarshal([]byte(line), &turn); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		turns = append(turns, turn)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return turns, nil
}

// Render formats a transcript as "[turn_index] ROLE: content" blocks separated
// by blank lines, the form the judge prompt embeds.
func Render(turns []Turn) string {
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		parts = append(parts, fmt.Sprintf("[%d] %s: %s", t.TurnIndex, strings.ToUpper(t.Role), t.Content))
	}
	return strings.Join(parts, "\n\n")
}
