// Package storetest is a conformance suite shared by every cityvizor.Store
// implementation.
package storetest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sedrickcz/cityvizor"
)

// Factory creates a configured store under test and a function returning the
// data rows persisted so far, each cell rendered as text
type Factory func(t *testing.T) (store cityvizor.Store, rows func() [][]string)

// Run runs the suite against the stores produced by factory
func Run(t *testing.T, factory Factory) {
	t.Run("appends one row per request in order", func(t *testing.T) {
		store, rows := factory(t)
		requests := []*cityvizor.CityRequest{
			Request(1),
			Request(2),
		}

		for _, rq := range requests {
			outcome, err := store.Insert(context.Background(), rq)
			if err != nil {
				t.Fatalf("Insert() error = %v", err)
			}
			if outcome != cityvizor.OutcomeWritten {
				t.Fatalf("Insert() outcome = %v, want %v", outcome, cityvizor.OutcomeWritten)
			}
		}

		got := rows()
		if len(got) != len(requests) {
			t.Fatalf("stored %d rows, want %d", len(got), len(requests))
		}
		for i, rq := range requests {
			AssertRow(t, got[i], rq)
		}
	})

	t.Run("blank time and ip", func(t *testing.T) {
		store, rows := factory(t)
		rq := &cityvizor.CityRequest{
			City:  "Kolín",
			Email: "anna@example.com",
			Name:  "Anna",
			GDPR:  true,
		}

		if _, err := store.Insert(context.Background(), rq); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}

		got := rows()
		if len(got) != 1 {
			t.Fatalf("stored %d rows, want 1", len(got))
		}
		AssertRow(t, got[0], rq)
	})

	t.Run("concurrent inserts", func(t *testing.T) {
		store, rows := factory(t)
		const n = 5

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, err := store.Insert(context.Background(), Request(i)); err != nil {
					errs <- err
				}
			}(i)
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			t.Errorf("Insert() error = %v", err)
		}

		if got := rows(); len(got) != n {
			t.Errorf("stored %d rows, want %d", len(got), n)
		}
	})
}

// Request returns a distinct, fully populated request
func Request(i int) *cityvizor.CityRequest {
	return &cityvizor.CityRequest{
		Time:      time.Date(2023, time.May, 1, 10, 15+i, 0, 0, time.UTC),
		City:      fmt.Sprintf("City %d", i),
		Email:     fmt.Sprintf("user%d@example.com", i),
		Name:      fmt.Sprintf("User %d", i),
		Subscribe: i%2 == 0,
		GDPR:      true,
		IP:        fmt.Sprintf("192.0.2.%d", i+1),
	}
}

// Cells renders a request the way it is expected to read back from a sheet
func Cells(rq *cityvizor.CityRequest) []string {
	return []string{
		rq.FormattedTime(),
		rq.City,
		rq.Email,
		rq.Name,
		strconv.FormatBool(rq.Subscribe),
		strconv.FormatBool(rq.GDPR),
		rq.IP,
	}
}

// AssertRow compares a stored row against the request. Sheets may drop
// trailing empty cells and render booleans in upper case.
func AssertRow(t *testing.T, row []string, rq *cityvizor.CityRequest) {
	t.Helper()

	want := Cells(rq)
	if len(row) > len(want) {
		t.Errorf("row has %d cells, want %d: %q", len(row), len(want), row)
		return
	}
	for len(row) < len(want) {
		row = append(row, "")
	}

	for i := range want {
		if !strings.EqualFold(row[i], want[i]) {
			t.Errorf("cell %d = %q, want %q (row %q)", i, row[i], want[i], row)
		}
	}
}
