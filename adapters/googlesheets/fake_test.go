package googlesheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

const testToken = "test-token"

// appendCall is one values.append request received by fakeSheets
type appendCall struct {
	Path             string
	ValueInputOption string
	InsertDataOption string
	Authorization    string
	UserAgent        string
	Values           [][]interface{}
}

// fakeSheets imitates the parts of the Sheets REST API used by this package
type fakeSheets struct {
	*httptest.Server

	mu       sync.Mutex
	appends  []appendCall
	gets     int
	failWith int    // HTTP status returned for every call when non-zero
	values   string // values.get response body
}

func newFakeSheets(t *testing.T) *fakeSheets {
	t.Helper()

	f := &fakeSheets{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)

	return f
}

func (f *fakeSheets) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.failWith)
		fmt.Fprintf(w, `{"error": {"code": %d, "message": "The caller does not have permission", "status": "PERMISSION_DENIED"}}`, f.failWith)
		return
	}

	switch r.Method {
	case http.MethodPost:
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.appends = append(f.appends, appendCall{
			Path:             r.URL.Path,
			ValueInputOption: r.URL.Query().Get("valueInputOption"),
			InsertDataOption: r.URL.Query().Get("insertDataOption"),
			Authorization:    r.Header.Get("Authorization"),
			UserAgent:        r.Header.Get("User-Agent"),
			Values:           body.Values,
		})

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spreadsheetId": "doc-id", "updates": {"updatedRows": 1, "updatedColumns": 7}}`))

	case http.MethodGet:
		f.gets++
		if r.URL.Query().Get("valueRenderOption") != "UNFORMATTED_VALUE" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(f.values))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeSheets) calls() []appendCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]appendCall(nil), f.appends...)
}

// rows renders every appended row as text
func (f *fakeSheets) rows() [][]string {
	var rows [][]string
	for _, call := range f.calls() {
		for _, row := range call.Values {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = fmt.Sprintf("%v", v)
			}
			rows = append(rows, cells)
		}
	}
	return rows
}

// options routes the client to the fake server with a static token
func (f *fakeSheets) options(logger zerolog.Logger) []Option {
	return []Option{
		WithLogger(logger),
		WithClientOptions(option.WithEndpoint(f.URL)),
		WithAuthenticator(func(ctx context.Context, credentials []byte) (oauth2.TokenSource, error) {
			return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: testToken}), nil
		}),
	}
}

func writeCredentials(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(testServiceAccountJSON), 0600); err != nil {
		t.Fatalf("Failed to write credentials file: %v", err)
	}
	return path
}

func testLogger() (zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return zerolog.New(&buf), &buf
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}

// regularFile returns the path of an existing plain file, so that paths below
// it fail to stat with ENOTDIR
func regularFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "not-a-dir")
	if err := writeFile(path, "x"); err != nil {
		t.Fatalf("writeFile() error = %v", err)
	}
	return path
}

func (f *fakeSheets) reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.gets
}
