package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/fashion-fuel/storefront-api/internal/auth"
	"github.com/fashion-fuel/storefront-api/internal/catalog"
	"github.com/fashion-fuel/storefront-api/internal/order"
)

func adminReq(t *testing.T, f *fixtures, method, path, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	adm := f.addUser(t, "adm-"+uuid.NewString()+"@example.com", "password1", auth.RoleAdmin)
	req.AddCookie(f.sessionCookie(t, adm.ID, auth.RoleAdmin))
	return req
}

func TestAdminCreateProduct_ValidAndInvalid(t *testing.T) {
	f := newFixtures()
	_ = f.catalog.CreateCategory(nil, &catalog.Category{ID: "cat-1", Name: "Jackets", Slug: "jackets"})
	r := f.router(nil)

	// válido
	{
		body := `{"category_id":"cat-1","name":"Denim Jacket","price":"89.90","description":"Oversized"}`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq(t, f, http.MethodPost, "/api/admin/products", body))
		if w.Code != http.StatusCreated {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var got struct {
			Data catalog.Product `json:"data"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &got)
		if got.Data.ID == "" || got.Data.Status != catalog.StatusActive {
			t.Fatalf("producto inesperado: %+v", got.Data)
		}
	}

	// sin precio ⇒ 400
	{
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq(t, f, http.MethodPost, "/api/admin/products", `{"category_id":"cat-1","name":"X"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("esperaba 400, got %d", w.Code)
		}
	}

	// precio no decimal ⇒ 400
	{
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq(t, f, http.MethodPost, "/api/admin/products", `{"category_id":"cat-1","name":"X","price":"gratis"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("esperaba 400 por precio inválido, got %d", w.Code)
		}
	}

	// categoría inexistente ⇒ 400
	{
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq(t, f, http.MethodPost, "/api/admin/products", `{"category_id":"nope","name":"X","price":"1.00"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("esperaba 400 por categoría, got %d", w.Code)
		}
	}
}

func TestAdminDisableProduct_SoftDelete(t *testing.T) {
	f := newFixtures()
	p := f.addProduct(t, "Retired Shoe", "50.00")
	r := f.router(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, adminReq(t, f, http.MethodDelete, "/api/admin/products/"+p.ID, ""))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	// la fila sigue existiendo, sólo cambia el estado
	got, err := f.catalog.GetByID(nil, p.ID)
	if err != nil {
		t.Fatalf("producto borrado en vez de deshabilitado")
	}
	if got.Status != catalog.StatusDisabled {
		t.Fatalf("status=%s, esperaba disabled", got.Status)
	}
}

func TestAdminOrderStatus_LegalAndIllegal(t *testing.T) {
	f := newFixtures()
	u := f.addUser(t, "cust@example.com", "password1", auth.RoleUser)
	o := f.addPendingOrder(t, u.ID, "cs_adm")
	if _, err := f.orders.UpdateStatus(nil, o.ID, order.StatusProcessing); err != nil {
		t.Fatalf("setup: %v", err)
	}
	r := f.router(nil)

	// processing -> shipped: legal
	{
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq(t, f, http.MethodPut, "/api/admin/orders/"+o.ID+"/status", `{"status":"shipped"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		if f.orders.orders[0].Status != order.StatusShipped {
			t.Fatalf("estado=%s", f.orders.orders[0].Status)
		}
		// el cliente recibe notificación del cambio
		if n, _ := f.notes.UnreadCount(nil, u.ID); n != 1 {
			t.Fatalf("unread=%d, esperaba 1", n)
		}
	}

	// shipped -> processing: ilegal ⇒ 409, sin cambios
	{
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq(t, f, http.MethodPut, "/api/admin/orders/"+o.ID+"/status", `{"status":"processing"}`))
		if w.Code != http.StatusConflict {
			t.Fatalf("esperaba 409, got %d body=%s", w.Code, w.Body.String())
		}
		if f.orders.orders[0].Status != order.StatusShipped {
			t.Fatalf("estado cambió tras transición ilegal")
		}
	}

	// estado desconocido ⇒ 400
	{
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq(t, f, http.MethodPut, "/api/admin/orders/"+o.ID+"/status", `{"status":"wtf"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("esperaba 400, got %d", w.Code)
		}
	}

	// orden inexistente ⇒ 404
	{
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq(t, f, http.MethodPut, "/api/admin/orders/nope/status", `{"status":"shipped"}`))
		if w.Code != http.StatusNotFound {
			t.Fatalf("esperaba 404, got %d", w.Code)
		}
	}
}

func TestAdminListOrders_FilterByStatus(t *testing.T) {
	f := newFixtures()
	u := f.addUser(t, "multi@example.com", "password1", auth.RoleUser)
	o1 := f.addPendingOrder(t, u.ID, "cs_f1")
	f.addPendingOrder(t, u.ID, "cs_f2")
	if _, err := f.orders.UpdateStatus(nil, o1.ID, order.StatusProcessing); err != nil {
		t.Fatalf("setup: %v", err)
	}
	r := f.router(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, adminReq(t, f, http.MethodGet, "/api/admin/orders?status=processing", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Data struct {
			Items []order.Order `json:"items"`
		} `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Data.Items) != 1 || got.Data.Items[0].ID != o1.ID {
		t.Fatalf("filtro por estado falló: %+v", got.Data.Items)
	}

	// estado desconocido ⇒ 400
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, adminReq(t, f, http.MethodGet, "/api/admin/orders?status=wtf", ""))
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d", w2.Code)
	}
}

func TestAdminCustomers_ListAndDelete(t *testing.T) {
	f := newFixtures()
	u := f.addUser(t, "delete-me@example.com", "password1", auth.RoleUser)
	r := f.router(nil)

	// listado incluye al cliente
	{
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq(t, f, http.MethodGet, "/api/admin/customers", ""))
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
	}

	// borrar y verificar 404 posterior
	{
		w := httptest.NewRecorder()
		r.ServeHTTP(w, adminReq(t, f, http.MethodDelete, "/api/admin/customers/"+u.ID, ""))
		if w.Code != http.StatusOK {
			t.Fatalf("delete status=%d", w.Code)
		}
		w2 := httptest.NewRecorder()
		r.ServeHTTP(w2, adminReq(t, f, http.MethodGet, "/api/admin/customers/"+u.ID, ""))
		if w2.Code != http.StatusNotFound {
			t.Fatalf("esperaba 404 tras borrar, got %d", w2.Code)
		}
	}
}

func TestAdminDashboard_CountsByStatus(t *testing.T) {
	f := newFixtures()
	u := f.addUser(t, "dash@example.com", "password1", auth.RoleUser)
	f.addPendingOrder(t, u.ID, "cs_d1")
	o := f.addPendingOrder(t, u.ID, "cs_d2")
	if _, err := f.orders.UpdateStatus(nil, o.ID, order.StatusProcessing); err != nil {
		t.Fatalf("setup: %v", err)
	}
	r := f.router(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, adminReq(t, f, http.MethodGet, "/api/admin/dashboard", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Data struct {
			OrdersByStatus map[string]int `json:"orders_by_status"`
		} `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Data.OrdersByStatus[order.StatusPending] != 1 || got.Data.OrdersByStatus[order.StatusProcessing] != 1 {
		t.Fatalf("conteos inesperados: %+v", got.Data.OrdersByStatus)
	}
}
