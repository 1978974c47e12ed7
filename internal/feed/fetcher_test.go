package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		w.Write([]byte("title;price\nWidget;10\n"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	text, err := client.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.HasPrefix(text, "title;price") {
		t.Errorf("unexpected body: %q", text)
	}
}

func TestClientFetchNonSuccessStatus(t *testing.T) {
	body := strings.Repeat("x", 500)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	_, err := client.Fetch(context.Background(), srv.URL)

	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if ferr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d", ferr.StatusCode)
	}
	if len(ferr.Excerpt) != 120 {
		t.Errorf("excerpt must be truncated to 120 bytes, got %d", len(ferr.Excerpt))
	}
}

func TestClientFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(50 * time.Millisecond)
	if _, err := client.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestCSVSourceFetchTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("title,price\nWidget,10\nGadget,20\n"))
	}))
	defer srv.Close()

	src := NewCSVSource(NewClient(5*time.Second), srv.URL)
	table, err := src.FetchTable(context.Background())
	if err != nil {
		t.Fatalf("FetchTable failed: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(table.Rows))
	}
}

func TestHTMLTableSource(t *testing.T) {
	page := `<html><body>
	<p>Deals of the day</p>
	<table>
	  <tr><th>title</th><th>price</th></tr>
	  <tr><td>Widget</td><td>19.99</td></tr>
	  <tr><td>Gadget</td><td>5.00</td></tr>
	</table>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	src := NewHTMLTableSource(NewClient(5*time.Second), srv.URL)
	table, err := src.FetchTable(context.Background())
	if err != nil {
		t.Fatalf("FetchTable failed: %v", err)
	}
	if len(table.Header) != 2 || table.Header[0] != "title" {
		t.Fatalf("unexpected header: %v", table.Header)
	}
	if len(table.Rows) != 2 || table.Rows[0]["price"] != "19.99" {
		t.Errorf("unexpected rows: %v", table.Rows)
	}
}

func TestHTMLTableSourceNoTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))
	defer srv.Close()

	src := NewHTMLTableSource(NewClient(5*time.Second), srv.URL)
	if _, err := src.FetchTable(context.Background()); err == nil {
		t.Fatal("expected error for a page without a table")
	}
}
