package output

import "time"

// RenderOutput is the JSON result of render and transform.
type RenderOutput struct {
	Dialect string   `json:"dialect"`
	Input   string   `json:"input"`
	Output  string   `json:"output"`
	Columns []string `json:"columns"`
	ID      string   `json:"id,omitempty"`
}

// ColumnsOutput is the JSON result of columns.
type ColumnsOutput struct {
	Rendered string   `json:"rendered"`
	Columns  []string `json:"columns"`
}

// DialectInfo describes one registered dialect.
type DialectInfo struct {
	Name       string `json:"name"`
	OpenQuote  string `json:"open_quote"`
	CloseQuote string `json:"close_quote"`
	True       string `json:"true"`
	False      string `json:"false"`
	Default    bool   `json:"default,omitempty"`
}

// HistoryEntry is one stored render.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Dialect   string    `json:"dialect"`
	Source    string    `json:"source"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
}

// VerifyResult is the outcome of verifying one fragment.
type VerifyResult struct {
	Entity  string   `json:"entity,omitempty"`
	Kind    string   `json:"kind"`
	Name    string   `json:"name,omitempty"`
	Output  string   `json:"output"`
	OK      bool     `json:"ok"`
	Missing []string `json:"missing,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// VerifyOutput is the JSON result of verify.
type VerifyOutput struct {
	Adapter string         `json:"adapter"`
	Table   string         `json:"table"`
	Results []VerifyResult `json:"results"`
	Passed  int            `json:"passed"`
	Failed  int            `json:"failed"`
}
