package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fashion-fuel/storefront-api/internal/auth"
	"github.com/fashion-fuel/storefront-api/internal/cart"
	"github.com/fashion-fuel/storefront-api/internal/catalog"
	"github.com/fashion-fuel/storefront-api/internal/config"
	"github.com/fashion-fuel/storefront-api/internal/notification"
	"github.com/fashion-fuel/storefront-api/internal/order"
	"github.com/fashion-fuel/storefront-api/internal/payments"
	"github.com/fashion-fuel/storefront-api/internal/user"
	"github.com/fashion-fuel/storefront-api/internal/wishlist"
)

//
// ---------- STUBS EN MEMORIA ----------
//

type stubUsers struct {
	users     map[string]*user.User
	customers map[string]*user.Customer
}

func newStubUsers() *stubUsers {
	return &stubUsers{users: map[string]*user.User{}, customers: map[string]*user.Customer{}}
}

func (s *stubUsers) Create(ctx context.Context, u *user.User, c *user.Customer) error {
	for _, ex := range s.users {
		if ex.Email == u.Email {
			return user.ErrAlreadyExist
		}
	}
	cu, cc := *u, *c
	cu.CreatedAt, cu.UpdatedAt = time.Now().UTC(), time.Now().UTC()
	s.users[u.ID] = &cu
	s.customers[u.ID] = &cc
	return nil
}

func (s *stubUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *stubUsers) GetCustomer(ctx context.Context, userID string) (*user.Customer, error) {
	c, ok := s.customers[userID]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubUsers) UpdateCustomer(ctx context.Context, c *user.Customer) error {
	cur, ok := s.customers[c.UserID]
	if !ok {
		return user.ErrNotFound
	}
	if c.FirstName != "" {
		cur.FirstName = c.FirstName
	}
	if c.LastName != "" {
		cur.LastName = c.LastName
	}
	if c.Phone != "" {
		cur.Phone = c.Phone
	}
	return nil
}

func (s *stubUsers) ListCustomers(ctx context.Context, limit, offset int) ([]user.Account, error) {
	out := []user.Account{}
	for id, u := range s.users {
		if u.Role != auth.RoleUser {
			continue
		}
		out = append(out, user.Account{User: *u, Customer: s.customers[id]})
	}
	return out, nil
}

func (s *stubUsers) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	delete(s.customers, id)
	return true, nil
}

type stubCatalog struct {
	items      map[string]*catalog.Product
	categories map[string]*catalog.Category
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{items: map[string]*catalog.Product{}, categories: map[string]*catalog.Category{}}
}

func (s *stubCatalog) Create(ctx context.Context, p *catalog.Product) error {
	cp := *p
	cp.CreatedAt, cp.UpdatedAt = time.Now().UTC(), time.Now().UTC()
	s.items[p.ID] = &cp
	return nil
}

func (s *stubCatalog) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubCatalog) List(ctx context.Context, q catalog.Query) ([]catalog.Product, error) {
	out := []catalog.Product{}
	for _, p := range s.items {
		if !q.IncludeDisabled && p.Status != catalog.StatusActive {
			continue
		}
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if q.Q != "" && !containsFold(p.Name, q.Q) && !containsFold(p.Description, q.Q) {
			continue
		}
		out = append(out, *p)
	}
	start := q.Offset
	if start > len(out) {
		return []catalog.Product{}, nil
	}
	end := start + q.Limit
	if end > len(out) || q.Limit <= 0 {
		end = len(out)
	}
	return out[start:end], nil
}

func (s *stubCatalog) Update(ctx context.Context, p *catalog.Product, updatePrice bool) error {
	cur, ok := s.items[p.ID]
	if !ok {
		return catalog.ErrNotFound
	}
	if p.Name != "" {
		cur.Name = p.Name
	}
	if p.Description != "" {
		cur.Description = p.Description
	}
	if p.CategoryID != "" {
		cur.CategoryID = p.CategoryID
	}
	if p.Status != "" {
		cur.Status = p.Status
	}
	if updatePrice {
		cur.Price = p.Price
	}
	return nil
}

func (s *stubCatalog) Disable(ctx context.Context, id string) (bool, error) {
	p, ok := s.items[id]
	if !ok {
		return false, nil
	}
	p.Status = catalog.StatusDisabled
	return true, nil
}

func (s *stubCatalog) CreateCategory(ctx context.Context, c *catalog.Category) error {
	cp := *c
	cp.CreatedAt = time.Now().UTC()
	s.categories[c.ID] = &cp
	return nil
}

func (s *stubCatalog) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, catalog.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCatalog) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	out := []catalog.Category{}
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubCatalog) UpdateCategory(ctx context.Context, c *catalog.Category) error {
	cur, ok := s.categories[c.ID]
	if !ok {
		return catalog.ErrCategoryNotFound
	}
	if c.Name != "" {
		cur.Name = c.Name
	}
	if c.Slug != "" {
		cur.Slug = c.Slug
	}
	if c.Description != "" {
		cur.Description = c.Description
	}
	return nil
}

func (s *stubCatalog) DeleteCategory(ctx context.Context, id string) (bool, error) {
	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)
	return true, nil
}

// stubCart joins against stubCatalog for names/prices like the SQL repo does.
type stubCart struct {
	products *stubCatalog
	lines    map[string]map[string]int // userID -> productID -> quantity
}

func newStubCart(products *stubCatalog) *stubCart {
	return &stubCart{products: products, lines: map[string]map[string]int{}}
}

func (s *stubCart) Add(ctx context.Context, id, userID, productID string, quantity int) error {
	if s.lines[userID] == nil {
		s.lines[userID] = map[string]int{}
	}
	s.lines[userID][productID] += quantity
	return nil
}

func (s *stubCart) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if _, ok := s.lines[userID][productID]; !ok {
		return cart.ErrNotFound
	}
	s.lines[userID][productID] = quantity
	return nil
}

func (s *stubCart) Remove(ctx context.Context, userID, productID string) (bool, error) {
	if _, ok := s.lines[userID][productID]; !ok {
		return false, nil
	}
	delete(s.lines[userID], productID)
	return true, nil
}

func (s *stubCart) List(ctx context.Context, userID string) ([]cart.Line, error) {
	out := []cart.Line{}
	for pid, qty := range s.lines[userID] {
		p := s.products.items[pid]
		out = append(out, cart.Line{
			ID: pid, UserID: userID, ProductID: pid,
			ProductName: p.Name, ProductPrice: p.Price, Quantity: qty,
		})
	}
	return out, nil
}

func (s *stubCart) Clear(ctx context.Context, userID string) error {
	delete(s.lines, userID)
	return nil
}

type stubWishlist struct {
	products *stubCatalog
	lines    map[string]map[string]bool
}

func newStubWishlist(products *stubCatalog) *stubWishlist {
	return &stubWishlist{products: products, lines: map[string]map[string]bool{}}
}

func (s *stubWishlist) Add(ctx context.Context, id, userID, productID string) error {
	if s.lines[userID] == nil {
		s.lines[userID] = map[string]bool{}
	}
	s.lines[userID][productID] = true
	return nil
}

func (s *stubWishlist) Remove(ctx context.Context, userID, productID string) (bool, error) {
	if !s.lines[userID][productID] {
		return false, nil
	}
	delete(s.lines[userID], productID)
	return true, nil
}

func (s *stubWishlist) List(ctx context.Context, userID string) ([]wishlist.Line, error) {
	out := []wishlist.Line{}
	for pid := range s.lines[userID] {
		p := s.products.items[pid]
		out = append(out, wishlist.Line{ID: pid, UserID: userID, ProductID: pid,
			ProductName: p.Name, ProductPrice: p.Price})
	}
	return out, nil
}

// stubOrders mirrors the real repo's create semantics: authoritative prices
// from the catalog, decimal math, cart cleared on success.
type stubOrders struct {
	products *stubCatalog
	carts    *stubCart
	orders   []*order.Order
	items    map[string][]order.Item
}

func newStubOrders(products *stubCatalog, carts *stubCart) *stubOrders {
	return &stubOrders{products: products, carts: carts, items: map[string][]order.Item{}}
}

func (s *stubOrders) Create(ctx context.Context, userID string, shipping order.Shipping, paymentMethod string, items []order.NewItem) (*order.Order, []order.Item, error) {
	if len(items) == 0 {
		return nil, nil, order.ErrNoItems
	}
	o := &order.Order{
		ID:            uuid.NewString(),
		Number:        order.NewNumber(time.Now().UTC()),
		UserID:        userID,
		Status:        order.StatusPending,
		PaymentMethod: paymentMethod,
		Shipping:      shipping,
	}
	total := decimal.Zero
	var lines []order.Item
	for _, in := range items {
		p, ok := s.products.items[in.ProductID]
		if !ok || p.Status != catalog.StatusActive {
			return nil, nil, order.ErrProductUnavailable
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, nil, err
		}
		sub := price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		total = total.Add(sub)
		lines = append(lines, order.Item{
			ID: uuid.NewString(), OrderID: o.ID, ProductID: in.ProductID,
			ProductName: p.Name, UnitPrice: price.StringFixed(2),
			Quantity: in.Quantity, Subtotal: sub.StringFixed(2),
		})
	}
	o.Total = total.StringFixed(2)
	s.orders = append(s.orders, o)
	s.items[o.ID] = lines
	_ = s.carts.Clear(ctx, userID)
	return o, lines, nil
}

func (s *stubOrders) find(id string) *order.Order {
	for _, o := range s.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (s *stubOrders) GetByID(ctx context.Context, id string) (*order.Order, []order.Item, error) {
	o := s.find(id)
	if o == nil {
		return nil, nil, order.ErrNotFound
	}
	cp := *o
	return &cp, s.items[id], nil
}

func (s *stubOrders) ListByUser(ctx context.Context, userID string, limit, offset int) ([]order.Order, error) {
	out := []order.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrders) List(ctx context.Context, status string, limit, offset int) ([]order.Order, error) {
	out := []order.Order{}
	for _, o := range s.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrders) GetItems(ctx context.Context, orderID string) ([]order.Item, error) {
	items, ok := s.items[orderID]
	if !ok {
		return nil, order.ErrNotFound
	}
	return items, nil
}

func (s *stubOrders) SetCheckoutSession(ctx context.Context, orderID, sessionID string) error {
	o := s.find(orderID)
	if o == nil {
		return order.ErrNotFound
	}
	o.CheckoutSessionID = sessionID
	return nil
}

func (s *stubOrders) applyStatus(o *order.Order, to string) (*order.Order, error) {
	if o == nil {
		return nil, order.ErrNotFound
	}
	if !order.CanTransition(o.Status, to) {
		return nil, order.ErrIllegalTransition
	}
	o.Status = to
	cp := *o
	return &cp, nil
}

func (s *stubOrders) UpdateStatus(ctx context.Context, id, to string) (*order.Order, error) {
	return s.applyStatus(s.find(id), to)
}

func (s *stubOrders) UpdateStatusBySession(ctx context.Context, sessionID, to string) (*order.Order, error) {
	for _, o := range s.orders {
		if o.CheckoutSessionID == sessionID {
			return s.applyStatus(o, to)
		}
	}
	return nil, order.ErrNotFound
}

func (s *stubOrders) CountByStatus(ctx context.Context) (map[string]int, error) {
	out := map[string]int{}
	for _, o := range s.orders {
		out[o.Status]++
	}
	return out, nil
}

type stubNotes struct {
	created []notification.Notification
}

func (s *stubNotes) Create(ctx context.Context, n *notification.Notification) error {
	s.created = append(s.created, *n)
	return nil
}

func (s *stubNotes) ListByUser(ctx context.Context, userID string, limit, offset int) ([]notification.Notification, error) {
	out := []notification.Notification{}
	for _, n := range s.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNotes) UnreadCount(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, x := range s.created {
		if x.UserID == userID && !x.Read {
			n++
		}
	}
	return n, nil
}

func (s *stubNotes) MarkRead(ctx context.Context, userID, id string) error {
	for i := range s.created {
		if s.created[i].ID == id && s.created[i].UserID == userID {
			s.created[i].Read = true
			return nil
		}
	}
	return notification.ErrNotFound
}

func (s *stubNotes) MarkAllRead(ctx context.Context, userID string) error {
	for i := range s.created {
		if s.created[i].UserID == userID {
			s.created[i].Read = true
		}
	}
	return nil
}

type stubDedup struct {
	seen map[string]bool
}

func newStubDedup() *stubDedup { return &stubDedup{seen: map[string]bool{}} }

func (s *stubDedup) Seen(ctx context.Context, eventID string) (bool, error) {
	if s.seen[eventID] {
		return true, nil
	}
	s.seen[eventID] = true
	return false, nil
}

func (s *stubDedup) Forget(ctx context.Context, eventID string) error {
	delete(s.seen, eventID)
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

//
// ---------- FIXTURES ----------
//

const webhookSecret = "whsec_test"

type fixtures struct {
	users    *stubUsers
	catalog  *stubCatalog
	cart     *stubCart
	wishlist *stubWishlist
	orders   *stubOrders
	notes    *stubNotes
	dedup    *stubDedup
	tokens   *auth.Tokens
}

func newFixtures() *fixtures {
	cat := newStubCatalog()
	crt := newStubCart(cat)
	return &fixtures{
		users:    newStubUsers(),
		catalog:  cat,
		cart:     crt,
		wishlist: newStubWishlist(cat),
		orders:   newStubOrders(cat, crt),
		notes:    &stubNotes{},
		dedup:    newStubDedup(),
		tokens:   auth.NewTokens("test-secret", time.Hour),
	}
}

func (f *fixtures) router(pay *payments.Client) *gin.Engine {
	return f.routerWithOrders(pay, f.orders)
}

func (f *fixtures) routerWithOrders(pay *payments.Client, orders order.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return buildRouter(app{
		cfg: config.Config{
			PaymentWebhookSecret: webhookSecret,
			CheckoutSuccessURL:   "http://localhost/success",
			CheckoutCancelURL:    "http://localhost/cancel",
		},
		tokens:        f.tokens,
		users:         f.users,
		catalog:       f.catalog,
		cart:          f.cart,
		wishlist:      f.wishlist,
		orders:        orders,
		notifications: f.notes,
		payments:      pay,
		dedup:         f.dedup,
	})
}

func (f *fixtures) addUser(t *testing.T, email, password, role string) *user.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &user.User{ID: uuid.NewString(), Email: email, PasswordHash: hash, Role: role}
	if err := f.users.Create(context.Background(), u, &user.Customer{UserID: u.ID, FirstName: "Test"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (f *fixtures) addProduct(t *testing.T, name, price string) *catalog.Product {
	t.Helper()
	p := &catalog.Product{
		ID: uuid.NewString(), CategoryID: "cat-1", Name: name,
		Price: price, Status: catalog.StatusActive,
	}
	if err := f.catalog.Create(context.Background(), p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func (f *fixtures) sessionCookie(t *testing.T, uid, role string) *http.Cookie {
	t.Helper()
	tok, err := f.tokens.Sign(uid, role)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return &http.Cookie{Name: auth.SessionCookie, Value: tok}
}

func validShipping() string {
	return `{"full_name":"Jane Doe","address":"1 Main St","city":"Springfield","postal_code":"12345","country":"US"}`
}

func orderBody(items string) string {
	return fmt.Sprintf(`{"shipping":%s,"payment_method":"card","items":%s}`, validShipping(), items)
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}
