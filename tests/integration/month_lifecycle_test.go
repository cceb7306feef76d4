package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMonthFlow_FullLifecycle(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "planner", "password123")

	// Step 1: Set up category templates and a fixed expense
	groceriesID := app.createCategory(t, token, "Groceries", 300)
	app.createCategory(t, token, "Transport", 120)

	rec := app.request("POST", "/api/fixed-expenses", `{"label":"Rent","amount":1200}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create fixed expense failed: %d %s", rec.Code, rec.Body.String())
	}

	// Step 2: Opening the current month seeds allocations from the templates
	monthID := app.currentMonth(t, token)

	rec = app.request("GET", fmt.Sprintf("/api/months/%.0f", monthID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get month failed: %d %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)
	budgets := summary["budgets"].([]interface{})
	if len(budgets) != 2 {
		t.Fatalf("expected 2 seeded allocations, got %d", len(budgets))
	}
	if summary["total_budgeted"] != 420.0 {
		t.Errorf("expected total_budgeted 420, got %v", summary["total_budgeted"])
	}

	// Step 3: Record income and spending
	rec = app.request("POST", fmt.Sprintf("/api/months/%.0f/income", monthID),
		`{"label":"Paycheck","amount":2500}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create income failed: %d %s", rec.Code, rec.Body.String())
	}

	itemBody := fmt.Sprintf(`{"category_id":%.0f,"description":"Coffee beans","amount":14.5,"spent_on":"2026-05-10"}`, groceriesID)
	rec = app.request("POST", fmt.Sprintf("/api/months/%.0f/items", monthID), itemBody, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create item failed: %d %s", rec.Code, rec.Body.String())
	}

	itemBody = fmt.Sprintf(`{"category_id":%.0f,"description":"Weekly shop","amount":85.5,"spent_on":"2026-05-12"}`, groceriesID)
	rec = app.request("POST", fmt.Sprintf("/api/months/%.0f/items", monthID), itemBody, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create item failed: %d %s", rec.Code, rec.Body.String())
	}

	// Step 4: The summary derives every total from the month's rows
	rec = app.request("GET", fmt.Sprintf("/api/months/%.0f", monthID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get month failed: %d %s", rec.Code, rec.Body.String())
	}
	summary = parseJSON(t, rec)
	if summary["total_income"] != 2500.0 {
		t.Errorf("expected total_income 2500, got %v", summary["total_income"])
	}
	if summary["total_fixed"] != 1200.0 {
		t.Errorf("expected total_fixed 1200, got %v", summary["total_fixed"])
	}
	if summary["total_spent"] != 100.0 {
		t.Errorf("expected total_spent 100, got %v", summary["total_spent"])
	}
	if summary["remaining"] != 1200.0 {
		t.Errorf("expected remaining 1200, got %v", summary["remaining"])
	}

	// The groceries allocation reports its derived spend
	var groceriesSpent float64
	for _, b := range summary["budgets"].([]interface{}) {
		budget := b.(map[string]interface{})
		if budget["category_id"] == groceriesID {
			groceriesSpent = budget["spent_amount"].(float64)
		}
	}
	if groceriesSpent != 100.0 {
		t.Errorf("expected groceries spent_amount 100, got %v", groceriesSpent)
	}

	// Step 5: Close the month
	rec = app.request("POST", fmt.Sprintf("/api/months/%.0f/close", monthID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("close month failed: %d %s", rec.Code, rec.Body.String())
	}
	closed := parseJSON(t, rec)
	month := closed["month"].(map[string]interface{})
	if month["is_closed"] != true {
		t.Error("expected month to be closed")
	}
	if month["closed_at"] == nil {
		t.Error("expected closed_at to be set")
	}

	// Step 6: A closed month rejects every mutation
	rec = app.request("POST", fmt.Sprintf("/api/months/%.0f/income", monthID),
		`{"label":"Late bonus","amount":500}`, token)
	assertMonthClosed(t, rec)

	itemBody = fmt.Sprintf(`{"category_id":%.0f,"description":"Late buy","amount":5,"spent_on":"2026-05-30"}`, groceriesID)
	rec = app.request("POST", fmt.Sprintf("/api/months/%.0f/items", monthID), itemBody, token)
	assertMonthClosed(t, rec)

	budgetID := summary["budgets"].([]interface{})[0].(map[string]interface{})["id"].(float64)
	rec = app.request("PUT", fmt.Sprintf("/api/months/%.0f/budgets/%.0f", monthID, budgetID),
		`{"allocated_amount":999}`, token)
	assertMonthClosed(t, rec)

	// Step 7: Closing twice fails
	rec = app.request("POST", fmt.Sprintf("/api/months/%.0f/close", monthID), "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on second close, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "MONTH_ALREADY_CLOSED" {
		t.Errorf("expected MONTH_ALREADY_CLOSED, got %v", errObj["code"])
	}

	// Step 8: The archived report is served as a PDF
	rec = app.request("GET", fmt.Sprintf("/api/months/%.0f/pdf", monthID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get pdf failed: %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("expected response body to be a PDF document")
	}

	// Step 9: The closed month still reads back, totals intact
	rec = app.request("GET", fmt.Sprintf("/api/months/%.0f", monthID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get closed month failed: %d %s", rec.Code, rec.Body.String())
	}
	summary = parseJSON(t, rec)
	if summary["total_spent"] != 100.0 {
		t.Errorf("expected total_spent 100 after close, got %v", summary["total_spent"])
	}
}

func TestMonthFlow_PDFBeforeClose(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "eager_reader", "password123")
	monthID := app.currentMonth(t, token)

	rec := app.request("GET", fmt.Sprintf("/api/months/%.0f/pdf", monthID), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before close, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "SNAPSHOT_NOT_FOUND" {
		t.Errorf("expected SNAPSHOT_NOT_FOUND, got %v", errObj["code"])
	}
}

func TestMonthFlow_ListMonths(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "lister", "password123")
	app.currentMonth(t, token)

	rec := app.request("GET", "/api/months", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list months failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"] != 1.0 {
		t.Errorf("expected total_items 1, got %v", result["total_items"])
	}
	data := result["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 month, got %d", len(data))
	}
}

func TestMonthFlow_CurrentMonthIsIdempotent(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "repeat_visitor", "password123")
	app.createCategory(t, token, "Groceries", 300)

	first := app.currentMonth(t, token)
	second := app.currentMonth(t, token)
	if first != second {
		t.Fatalf("expected the same month, got %v and %v", first, second)
	}

	// Revisiting must not duplicate the seeded allocations
	rec := app.request("GET", fmt.Sprintf("/api/months/%.0f/budgets", first), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get budgets failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	budgets := result["budgets"].([]interface{})
	if len(budgets) != 1 {
		t.Errorf("expected 1 allocation, got %d", len(budgets))
	}
}

func TestMonthFlow_OtherUsersMonthHidden(t *testing.T) {
	app := setupApp(t)

	ownerToken, _ := app.registerUser(t, "owner", "password123")
	monthID := app.currentMonth(t, ownerToken)

	strangerToken, _ := app.registerUser(t, "stranger", "password123")

	rec := app.request("GET", fmt.Sprintf("/api/months/%.0f", monthID), "", strangerToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's month, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "MONTH_NOT_FOUND" {
		t.Errorf("expected MONTH_NOT_FOUND, got %v", errObj["code"])
	}
}

// assertMonthClosed fails the test unless the response is the closed-month rejection.
func assertMonthClosed(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a closed month, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected error object in response")
	}
	if errObj["code"] != "MONTH_CLOSED" {
		t.Errorf("expected MONTH_CLOSED, got %v", errObj["code"])
	}
}
