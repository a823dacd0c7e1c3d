package main

import (
	"fmt"
	"net/http"
	"testing"
)

func TestPurchaseLeavesStockUntouched(t *testing.T) {
	r := setupTest(t)
	ck := loginCookie(t, r)
	company := seedAccount(t, "Agro Super Supplies", GroupCompany, "0")
	item := seedItem(t, "DAP 50Kg", "50")

	body := fmt.Sprintf(`{"bill_no":"P-2001","bill_date":"2024-06-02","account_id":%d,
	  "remarks":"monthly stock","items":[{"item_id":%d,"qty":20,"rate":1300}]}`, company, item)
	w := doJSON(t, r, "POST", "/api/purchase", body, ck)
	if w.Code != http.StatusCreated {
		t.Fatalf("create purchase: %d %s", w.Code, w.Body.String())
	}
	res := decodeBody(t, w)
	if res["id"] == nil || res["message"] != "Purchase Bill Saved Successfully" {
		t.Fatalf("unexpected response: %v", res)
	}

	if n := getInt(t, "select count(*) from purchase_head"); n != 1 {
		t.Fatalf("purchase_head rows = %d, want 1", n)
	}
	if n := getInt(t, "select count(*) from purchase_detail"); n != 1 {
		t.Fatalf("purchase_detail rows = %d, want 1", n)
	}
	wantDec(t, getDec(t, "select grand_total from purchase_head where bill_no='P-2001'"), "26000")
	// receiving goods does not move the counter
	wantDec(t, stock(t, item), "50")
}

func TestPurchaseRejectsFarmerParty(t *testing.T) {
	r := setupTest(t)
	ck := loginCookie(t, r)
	farmer := seedAccount(t, "Ramesh Patel", GroupFarmer, "0")
	item := seedItem(t, "DAP 50Kg", "50")

	body := fmt.Sprintf(`{"bill_no":"P-1","bill_date":"2024-06-02","account_id":%d,
	  "items":[{"item_id":%d,"qty":1,"rate":100}]}`, farmer, item)
	w := doJSON(t, r, "POST", "/api/purchase", body, ck)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (%s)", w.Code, w.Body.String())
	}
	if n := getInt(t, "select count(*) from purchase_head"); n != 0 {
		t.Fatalf("purchase_head rows = %d, want 0", n)
	}
}

func TestPurchaseDuplicateBillNoFailsAtomically(t *testing.T) {
	r := setupTest(t)
	ck := loginCookie(t, r)
	company := seedAccount(t, "Agro Super Supplies", GroupCompany, "0")
	item := seedItem(t, "DAP 50Kg", "50")

	body := fmt.Sprintf(`{"bill_no":"P-7","bill_date":"2024-06-02","account_id":%d,
	  "items":[{"item_id":%d,"qty":1,"rate":100}]}`, company, item)
	if w := doJSON(t, r, "POST", "/api/purchase", body, ck); w.Code != http.StatusCreated {
		t.Fatalf("first purchase: %d %s", w.Code, w.Body.String())
	}
	w := doJSON(t, r, "POST", "/api/purchase", body, ck)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate bill: %d, want 409 (%s)", w.Code, w.Body.String())
	}
	if n := getInt(t, "select count(*) from purchase_detail"); n != 1 {
		t.Fatalf("purchase_detail rows = %d, want 1", n)
	}
}

func TestPurchaseListAndDetailViews(t *testing.T) {
	r := setupTest(t)
	ck := loginCookie(t, r)
	company := seedAccount(t, "Agro Super Supplies", GroupCompany, "0")
	item := seedItem(t, "DAP 50Kg", "50")

	body := fmt.Sprintf(`{"bill_no":"P-9","bill_date":"2024-06-02","account_id":%d,
	  "items":[{"item_id":%d,"qty":5,"rate":1300}]}`, company, item)
	w := doJSON(t, r, "POST", "/api/purchase", body, ck)
	if w.Code != http.StatusCreated {
		t.Fatalf("create purchase: %d", w.Code)
	}
	id := decodeBody(t, w)["id"]

	w = doJSON(t, r, "GET", "/api/purchase", "", ck)
	if w.Code != http.StatusOK {
		t.Fatalf("list purchases: %d", w.Code)
	}
	var heads []PurchaseHead
	mustUnmarshal(t, w, &heads)
	if len(heads) != 1 || heads[0].PartyName != "Agro Super Supplies" || heads[0].BillNo != "P-9" {
		t.Fatalf("unexpected list: %+v", heads)
	}

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/purchase/%v", id), "", ck)
	if w.Code != http.StatusOK {
		t.Fatalf("get purchase: %d %s", w.Code, w.Body.String())
	}
	doc := decodeBody(t, w)
	lines, ok := doc["items"].([]interface{})
	if !ok || len(lines) != 1 {
		t.Fatalf("unexpected purchase document: %v", doc)
	}
}

func TestPurchaseUnknownItemRollsBack(t *testing.T) {
	r := setupTest(t)
	ck := loginCookie(t, r)
	company := seedAccount(t, "Agro Super Supplies", GroupCompany, "0")

	body := fmt.Sprintf(`{"bill_no":"P-8","bill_date":"2024-06-02","account_id":%d,
	  "items":[{"item_id":9999,"qty":1,"rate":100}]}`, company)
	w := doJSON(t, r, "POST", "/api/purchase", body, ck)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (%s)", w.Code, w.Body.String())
	}
	if n := getInt(t, "select count(*) from purchase_head"); n != 0 {
		t.Fatalf("purchase_head rows = %d, want 0", n)
	}
}
