package excel

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sedrickcz/cityvizor"
	"github.com/sedrickcz/cityvizor/internal/storetest"
	"github.com/xuri/excelize/v2"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name: "valid config",
			config: &Config{
				FilePath:  "requests.xlsx",
				SheetName: "Requests",
			},
		},
		{
			name: "missing file path",
			config: &Config{
				SheetName: "Requests",
			},
			wantErr: ErrMissingFilePath,
		},
		{
			name: "missing sheet name",
			config: &Config{
				FilePath: "requests.xlsx",
			},
			wantErr: ErrMissingSheetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := New(nil); err == nil {
		t.Errorf("New(nil) error = nil, want error")
	}
}

// readRows returns the data rows (row 2 onwards) of the sheet
func readRows(t *testing.T, path, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}
	if len(rows) < 2 {
		return nil
	}
	return rows[1:]
}

func TestStore_Insert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "requests.xlsx")
	store, err := New(&Config{FilePath: path, SheetName: "Requests"}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rq := &cityvizor.CityRequest{
		Time:      time.Date(2023, time.May, 1, 10, 15, 0, 0, time.UTC),
		City:      "Brno",
		Email:     "jan@example.com",
		Name:      "Jan Novák",
		Subscribe: true,
		GDPR:      true,
		IP:        "192.0.2.10",
	}

	outcome, err := store.Insert(context.Background(), rq)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if outcome != cityvizor.OutcomeWritten {
		t.Errorf("Insert() outcome = %v, want %v", outcome, cityvizor.OutcomeWritten)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Requests" {
		t.Errorf("sheets = %v, want [Requests]", sheets)
	}

	first, err := f.GetCellValue("Requests", "A1")
	if err != nil || first != "" {
		t.Errorf("A1 = %q, %v; want an empty header row", first, err)
	}

	city, err := f.GetCellValue("Requests", "B2")
	if err != nil || city != "Brno" {
		t.Errorf("B2 = %q, %v; want Brno", city, err)
	}

	when, err := f.GetCellValue("Requests", "A2")
	if err != nil || when != "01.05.2023 10:15" {
		t.Errorf("A2 = %q, %v; want 01.05.2023 10:15", when, err)
	}
}

func TestStore_InsertKeepsExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.xlsx")

	f := excelize.NewFile()
	if err := f.SetSheetRow("Sheet1", "A1", &[]interface{}{"time", "city", "email", "name", "subscribe", "gdpr", "ip"}); err != nil {
		t.Fatalf("SetSheetRow() error = %v", err)
	}
	if err := f.SetSheetRow("Sheet1", "A2", &[]interface{}{"", "Existing", "old@example.com", "Old", false, false, ""}); err != nil {
		t.Fatalf("SetSheetRow() error = %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	f.Close()

	store, err := New(&Config{FilePath: path, SheetName: "Sheet1"}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rq := storetest.Request(1)
	if _, err := store.Insert(context.Background(), rq); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	rows := readRows(t, path, "Sheet1")
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][1] != "Existing" {
		t.Errorf("existing row overwritten: %q", rows[0])
	}
	storetest.AssertRow(t, rows[1], rq)
}

func TestStore_InsertFailures(t *testing.T) {
	t.Run("unwritable path", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		var buf bytes.Buffer
		store, err := New(&Config{
			FilePath:  filepath.Join(blocker, "requests.xlsx"),
			SheetName: "Requests",
		}, WithLogger(zerolog.New(&buf)))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		outcome, err := store.Insert(context.Background(), storetest.Request(3))
		if outcome != cityvizor.OutcomeFailed || !errors.Is(err, cityvizor.ErrStoreFailed) {
			t.Errorf("Insert() = %v, %v; want failed store error", outcome, err)
		}
		if !strings.Contains(buf.String(), "user3@example.com") {
			t.Errorf("log = %s, want the request", buf.String())
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		store, err := New(&Config{
			FilePath:  filepath.Join(t.TempDir(), "requests.xlsx"),
			SheetName: "Requests",
		}, WithLogger(zerolog.Nop()))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		outcome, err := store.Insert(ctx, storetest.Request(1))
		if outcome != cityvizor.OutcomeFailed || !errors.Is(err, context.Canceled) {
			t.Errorf("Insert() = %v, %v; want failed with context.Canceled", outcome, err)
		}
	})
}

func TestStore_Conformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) (cityvizor.Store, func() [][]string) {
		path := filepath.Join(t.TempDir(), "requests.xlsx")

		store, err := New(&Config{FilePath: path, SheetName: "Requests"}, WithLogger(zerolog.Nop()))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		return store, func() [][]string { return readRows(t, path, "Requests") }
	})
}
