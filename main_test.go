package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// setupTest gives each test its own in-memory database behind the global DB,
// with the full schema applied and the default admin seeded. Shared-cache
// in-memory sqlite reports "table is locked" to a second writer connection,
// so the pool is pinned to one connection and concurrent requests serialize
// there.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	keySecret = "test-secret"
	name := strings.ReplaceAll(t.Name(), "/", "_")
	DB = sqlx.MustConnect("sqlite3_hooked",
		fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000", name))
	DB.SetMaxOpenConns(1)
	t.Cleanup(func() { DB.Close() })
	if err := createTables(DB); err != nil {
		t.Fatal(err)
	}
	return newRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, ck *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if ck != nil {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginCookie(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/auth/login", `{"username":"admin","password":"admin123"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "token" {
			return ck
		}
	}
	t.Fatal("login response carries no token cookie")
	return nil
}

func seedAccount(t *testing.T, name string, group int, balance string) int64 {
	t.Helper()
	res, err := DB.Exec("insert into accounts(name, group_id, balance) values(?,?,?)", name, group, balance)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := res.LastInsertId()
	return id
}

func seedItem(t *testing.T, name, stock string) int64 {
	t.Helper()
	res, err := DB.Exec("insert into items(name, stock) values(?,?)", name, stock)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := res.LastInsertId()
	return id
}

func getDec(t *testing.T, query string, args ...interface{}) decimal.Decimal {
	t.Helper()
	var d decimal.Decimal
	if err := DB.Get(&d, query, args...); err != nil {
		t.Fatal(err)
	}
	return d
}

func getInt(t *testing.T, query string, args ...interface{}) int {
	t.Helper()
	var n int
	if err := DB.Get(&n, query, args...); err != nil {
		t.Fatal(err)
	}
	return n
}

func stock(t *testing.T, itemId int64) decimal.Decimal {
	return getDec(t, "select stock from items where id=?", itemId)
}

func balance(t *testing.T, accountId int64) decimal.Decimal {
	return getDec(t, "select balance from accounts where id=?", accountId)
}

func wantDec(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func mustUnmarshal(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("bad response body %q: %v", w.Body.String(), err)
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body %q: %v", w.Body.String(), err)
	}
	return body
}
