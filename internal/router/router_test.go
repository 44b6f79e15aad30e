package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"care-companion/internal/router"
)

func TestHTTP_EndToEnd_ScheduleAndLedger(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	acctID := "acct-1"

	// 0) Sin cuenta no hay agenda
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/schedule", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without account, got %d", st)
		}
	}

	// 1) Setup inicial: dos pacientes con sus medicaciones
	{
		st, body := doReq(t, ts.URL, "POST", "/api/setup", acctID, map[string]any{
			"patients": []map[string]any{
				{
					"name": "Rosa",
					"meds": []map[string]any{
						{"name": "Aspirin", "dosage": "100mg", "stock": 10, "time": "08:00", "frequency": "Daily"},
						{"name": "Lipitor", "dosage": "20mg", "stock": 3, "time": "21:00", "frequency": "Daily"},
					},
				},
				{
					"name": "Pedro",
					"meds": []map[string]any{
						{"name": "Metformin", "dosage": "500mg", "stock": 8, "time": "13:00", "frequency": "Daily"},
					},
				},
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 setup, got %d body=%s", st, string(body))
		}
	}

	// 2) La agenda del día trae las tres dosis ordenadas por hora
	var firstID string
	{
		st, body := doReq(t, ts.URL, "GET", "/api/schedule", acctID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 schedule, got %d body=%s", st, string(body))
		}

		var entries []struct {
			ID      string `json:"id"`
			Time    string `json:"time"`
			Task    string `json:"task"`
			Patient string `json:"patient"`
			IsDone  bool   `json:"is_done"`
		}
		mustDecode(t, body, &entries)

		if len(entries) != 3 {
			t.Fatalf("expected 3 schedule entries, got %d", len(entries))
		}
		for i := 1; i < len(entries); i++ {
			if entries[i-1].Time > entries[i].Time {
				t.Fatalf("schedule not sorted by time: %s before %s", entries[i-1].Time, entries[i].Time)
			}
		}
		if entries[0].Task != "Aspirin" || entries[0].Patient != "Rosa" {
			t.Fatalf("expected Aspirin (Rosa) first, got %s (%s)", entries[0].Task, entries[0].Patient)
		}
		firstID = entries[0].ID
	}

	// 3) Take: stock baja y la dosis queda hecha
	{
		st, body := doReq(t, ts.URL, "POST", "/api/task/toggle", acctID, map[string]any{"id": firstID})
		if st != http.StatusOK {
			t.Fatalf("expected 200 toggle, got %d body=%s", st, string(body))
		}

		var res struct {
			Success bool `json:"success"`
			Taken   bool `json:"taken"`
			Stock   int  `json:"stock"`
		}
		mustDecode(t, body, &res)
		if !res.Success || !res.Taken || res.Stock != 9 {
			t.Fatalf("unexpected toggle result %+v", res)
		}
	}

	// 4) El inventario refleja el descuento y marca stock bajo
	{
		st, body := doReq(t, ts.URL, "GET", "/api/inventory", acctID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 inventory, got %d body=%s", st, string(body))
		}

		var items []struct {
			Name   string `json:"name"`
			Stock  int    `json:"stock"`
			Total  int    `json:"total"`
			Status string `json:"status"`
		}
		mustDecode(t, body, &items)

		byName := map[string]int{}
		for i, it := range items {
			byName[it.Name] = i
		}
		asp := items[byName["Aspirin (Rosa)"]]
		if asp.Stock != 9 || asp.Status != "ok" {
			t.Fatalf("unexpected Aspirin inventory %+v", asp)
		}
		lip := items[byName["Lipitor (Rosa)"]]
		if lip.Stock != 3 || lip.Status != "low" {
			t.Fatalf("expected Lipitor low at stock 3, got %+v", lip)
		}
	}

	// 5) Adherencia: 1 de 3 tomada
	{
		st, body := doReq(t, ts.URL, "GET", "/api/stats", acctID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 stats, got %d body=%s", st, string(body))
		}

		var stats struct {
			Total  int `json:"total"`
			Taken  int `json:"taken"`
			Missed int `json:"missed"`
			Score  int `json:"score"`
		}
		mustDecode(t, body, &stats)
		if stats.Total != 3 || stats.Taken != 1 || stats.Missed != 2 || stats.Score != 33 {
			t.Fatalf("unexpected stats %+v", stats)
		}
	}

	// 6) Undo: el segundo toggle del día restaura el stock
	{
		st, body := doReq(t, ts.URL, "POST", "/api/task/toggle", acctID, map[string]any{"id": firstID})
		if st != http.StatusOK {
			t.Fatalf("expected 200 undo, got %d body=%s", st, string(body))
		}

		var res struct {
			Taken bool `json:"taken"`
			Stock int  `json:"stock"`
		}
		mustDecode(t, body, &res)
		if res.Taken || res.Stock != 10 {
			t.Fatalf("unexpected undo result %+v", res)
		}
	}

	// 7) Pedido manual del dashboard
	{
		st, body := doReq(t, ts.URL, "POST", "/api/request", acctID, map[string]any{"type": "help"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 request, got %d body=%s", st, string(body))
		}
	}

	// 8) El historial quedó: take, undo y la emergencia, más reciente primero
	{
		st, body := doReq(t, ts.URL, "GET", "/api/history", acctID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}

		var hist []struct {
			Action string `json:"action"`
			Detail string `json:"detail"`
		}
		mustDecode(t, body, &hist)
		if len(hist) != 3 {
			t.Fatalf("expected 3 history entries, got %d", len(hist))
		}
		if hist[0].Action != "EMERGENCY ALERT" {
			t.Fatalf("expected EMERGENCY ALERT first, got %q", hist[0].Action)
		}
		if hist[1].Action != "Undo: Aspirin" || hist[2].Action != "Dispensed Aspirin" {
			t.Fatalf("unexpected ledger history %+v", hist)
		}
	}

	// 9) Otra cuenta no ve nada de esto
	{
		st, body := doReq(t, ts.URL, "GET", "/api/schedule", "acct-2", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 schedule for other account, got %d", st)
		}
		var entries []json.RawMessage
		mustDecode(t, body, &entries)
		if len(entries) != 0 {
			t.Fatalf("account isolation broken: got %d entries", len(entries))
		}

		st, _ = doReq(t, ts.URL, "POST", "/api/task/toggle", "acct-2", map[string]any{"id": firstID})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 toggling another account's medication, got %d", st)
		}
	}
}

func TestHTTP_ToggleOutOfStock(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	acctID := "acct-1"

	// Frasco vacío desde el setup: stock 0 explícito con máximo en 30.
	st, body := doReq(t, ts.URL, "POST", "/api/setup", acctID, map[string]any{
		"patients": []map[string]any{
			{"name": "Rosa", "meds": []map[string]any{
				{"name": "Insulin", "dosage": "10u", "stock": 0, "max_stock": 30, "time": "08:00", "frequency": "Daily"},
			}},
		},
	})
	if st != http.StatusOK {
		t.Fatalf("setup: %d body=%s", st, string(body))
	}

	var entries []struct {
		ID string `json:"id"`
	}
	_, body = doReq(t, ts.URL, "GET", "/api/schedule", acctID, nil)
	mustDecode(t, body, &entries)
	if len(entries) != 1 {
		t.Fatalf("expected 1 schedule entry, got %d", len(entries))
	}
	id := entries[0].ID

	st, body = doReq(t, ts.URL, "POST", "/api/task/toggle", acctID, map[string]any{"id": id})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 taking from empty bottle, got %d body=%s", st, string(body))
	}
	if want := "Error: Insulin is Out of Stock!"; !bytes.Contains(body, []byte(want)) {
		t.Fatalf("expected %q in body, got %s", want, string(body))
	}

	// El intento fallido no muta ni deja rastro
	_, body = doReq(t, ts.URL, "GET", "/api/history", acctID, nil)
	var hist []json.RawMessage
	mustDecode(t, body, &hist)
	if len(hist) != 0 {
		t.Fatalf("failed take must not log, got %d entries", len(hist))
	}

	_, body = doReq(t, ts.URL, "GET", "/api/inventory", acctID, nil)
	var items []struct {
		Stock  int    `json:"stock"`
		Status string `json:"status"`
	}
	mustDecode(t, body, &items)
	if items[0].Stock != 0 || items[0].Status != "low" {
		t.Fatalf("unexpected inventory after failed take %+v", items[0])
	}
}

func TestHTTP_MapSaveLoad(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	acctID := "acct-1"

	// Sin plano guardado: success=false, no error
	{
		st, body := doReq(t, ts.URL, "GET", "/api/map/load", acctID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 load, got %d body=%s", st, string(body))
		}
		var res struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		mustDecode(t, body, &res)
		if res.Success || res.Message != "No saved map found" {
			t.Fatalf("unexpected empty-load result %+v", res)
		}
	}

	grid := [][]int{{0, 1, 0}, {1, 0, 1}}
	{
		st, body := doReq(t, ts.URL, "POST", "/api/map/save", acctID, map[string]any{"grid": grid})
		if st != http.StatusOK {
			t.Fatalf("expected 200 save, got %d body=%s", st, string(body))
		}
	}

	{
		_, body := doReq(t, ts.URL, "GET", "/api/map/load", acctID, nil)
		var res struct {
			Success bool    `json:"success"`
			Grid    [][]int `json:"grid"`
		}
		mustDecode(t, body, &res)
		if !res.Success || len(res.Grid) != 2 || res.Grid[1][2] != 1 {
			t.Fatalf("unexpected load result %+v", res)
		}
	}

	// El plano es por cuenta
	{
		_, body := doReq(t, ts.URL, "GET", "/api/map/load", "acct-2", nil)
		var res struct {
			Success bool `json:"success"`
		}
		mustDecode(t, body, &res)
		if res.Success {
			t.Fatalf("another account must not see the saved map")
		}
	}
}

func doReq(t *testing.T, baseURL, method, path, accountID string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accountID != "" {
		req.Header.Set("X-Debug-Account-ID", accountID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res.StatusCode, b
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}
