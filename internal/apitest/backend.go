// Package apitest runs an in-memory imitation of the quiz REST backend for
// tests. It follows the backend contract: paginated {items,total} lists,
// {success} deletes, a flat /users list and JWT-protected routes.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizadmin/internal/auth"
)

// Doc is a stored record in its JSON shape.
type Doc = map[string]any

// Failure is a canned error response for the next matching request.
type Failure struct {
	Status  int
	Message string
}

// Backend is the fake server. Use URL() as the client base URL.
type Backend struct {
	Secret string
	// OmitToken makes login succeed without a token in the body.
	OmitToken bool

	mu          sync.Mutex
	server      *httptest.Server
	collections map[string]map[string]Doc
	searchField map[string]string
	users       map[string]Doc
	passwords   map[string]string
	failures    map[string]Failure
	hits        map[string]int
}

// New starts a backend. Callers must Close it.
func New() *Backend {
	b := &Backend{
		Secret:      "test-secret",
		collections: map[string]map[string]Doc{},
		searchField: map[string]string{
			"nodes":       "name",
			"assessments": "title",
			"questions":   "text",
			"answers":     "text",
			"attempts":    "userId",
		},
		users:     map[string]Doc{},
		passwords: map[string]string{},
		failures:  map[string]Failure{},
		hits:      map[string]int{},
	}
	for name := range b.searchField {
		b.collections[name] = map[string]Doc{}
	}
	b.server = httptest.NewServer(b.router())
	return b
}

// URL is the API base URL, including the /api prefix.
func (b *Backend) URL() string { return b.server.URL + "/api" }

// Close stops the server.
func (b *Backend) Close() { b.server.Close() }

// Token mints a valid bearer token for userID.
func (b *Backend) Token(userID string) string {
	token, err := auth.Sign([]byte(b.Secret), userID, "admin", time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}

// AddUser stores a user with a password and returns its id.
func (b *Backend) AddUser(name, email, role, password string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := primitive.NewObjectID().Hex()
	b.users[id] = Doc{"_id": id, "name": name, "email": email, "role": role, "createdAt": now()}
	b.passwords[id] = password
	return id
}

// Seed inserts a document into collection and returns its id.
func (b *Backend) Seed(collection string, doc Doc) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insert(collection, doc)
}

// Doc returns a copy of a stored document.
func (b *Backend) Doc(collection, id string) (Doc, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	doc, ok := b.collections[collection][id]
	return clone(doc), ok
}

// Count returns the number of documents in collection.
func (b *Backend) Count(collection string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if collection == "users" {
		return len(b.users)
	}
	return len(b.collections[collection])
}

// FailNext makes the next request with method and path (without /api) fail.
func (b *Backend) FailNext(method, path string, f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = f
}

// Hits reports how many requests reached method and path (without /api).
func (b *Backend) Hits(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" "+path]
}

func (b *Backend) router() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.Use(b.track)

	api := e.Group("/api")
	api.POST("/auth/login", b.login)
	api.POST("/users/register", b.registerUser)

	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(b.Secret),
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
		},
	}))
	secured.GET("/users", b.listUsers)
	secured.GET("/users/:id", b.getUser)
	secured.PUT("/users/:id", b.updateUser)
	secured.DELETE("/users/:id", b.deleteUser)

	for name := range b.searchField {
		collection := name
		secured.GET("/"+collection, func(c echo.Context) error { return b.list(c, collection) })
		secured.GET("/"+collection+"/:id", func(c echo.Context) error { return b.get(c, collection) })
		secured.DELETE("/"+collection+"/:id", func(c echo.Context) error { return b.remove(c, collection) })
		if collection == "attempts" {
			continue
		}
		secured.POST("/"+collection, func(c echo.Context) error { return b.create(c, collection) })
		secured.PUT("/"+collection+"/:id", func(c echo.Context) error { return b.update(c, collection) })
	}
	return e
}

func (b *Backend) track(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Method + " " + strings.TrimPrefix(c.Request().URL.Path, "/api")
		b.mu.Lock()
		b.hits[key]++
		f, failing := b.failures[key]
		delete(b.failures, key)
		b.mu.Unlock()
		if failing {
			if f.Message == "" {
				return c.String(f.Status, http.StatusText(f.Status))
			}
			return c.JSON(f.Status, echo.Map{"message": f.Message})
		}
		return next(c)
	}
}

func (b *Backend) login(c echo.Context) error {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(c, &creds); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, user := range b.users {
		if user["email"] == creds.Email && b.passwords[id] == creds.Password {
			if b.OmitToken {
				return c.JSON(http.StatusOK, echo.Map{"user": clone(user)})
			}
			return c.JSON(http.StatusOK, echo.Map{"token": b.Token(id), "user": clone(user)})
		}
	}
	return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password"})
}

func (b *Backend) registerUser(c echo.Context) error {
	var body Doc
	if err := decode(c, &body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	password, _ := body["password"].(string)
	if password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Password is required"})
	}
	delete(body, "password")
	b.mu.Lock()
	defer b.mu.Unlock()
	id := primitive.NewObjectID().Hex()
	body["_id"] = id
	body["createdAt"] = now()
	b.users[id] = body
	b.passwords[id] = password
	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered", "userId": id})
}

func (b *Backend) listUsers(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Doc, 0, len(b.users))
	for _, u := range b.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return fmt.Sprint(out[i]["_id"]) < fmt.Sprint(out[j]["_id"]) })
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) getUser(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[c.Param("id")]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}
	return c.JSON(http.StatusOK, clone(u))
}

func (b *Backend) updateUser(c echo.Context) error {
	var body Doc
	if err := decode(c, &body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := c.Param("id")
	u, ok := b.users[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}
	if password, ok := body["password"].(string); ok {
		b.passwords[id] = password
		delete(body, "password")
	}
	for k, v := range body {
		u[k] = v
	}
	return c.JSON(http.StatusOK, clone(u))
}

func (b *Backend) deleteUser(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := c.Param("id")
	if _, ok := b.users[id]; !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}
	delete(b.users, id)
	delete(b.passwords, id)
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}

func (b *Backend) list(c echo.Context, collection string) error {
	page := atoi(c.QueryParam("page"), 1)
	limit := atoi(c.QueryParam("limit"), 10)
	search := strings.ToLower(c.QueryParam("search"))
	sortKey := c.QueryParam("sort")
	desc := c.QueryParam("order") == "desc"

	b.mu.Lock()
	defer b.mu.Unlock()
	field := b.searchField[collection]
	items := make([]Doc, 0, len(b.collections[collection]))
	for _, doc := range b.collections[collection] {
		if search != "" && !strings.Contains(strings.ToLower(fmt.Sprint(doc[field])), search) {
			continue
		}
		items = append(items, clone(doc))
	}
	if sortKey == "" {
		sortKey = "_id"
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, z := fmt.Sprint(items[i][sortKey]), fmt.Sprint(items[j][sortKey])
		if desc {
			return a > z
		}
		return a < z
	})

	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items[start:end], "total": total})
}

func (b *Backend) get(c echo.Context, collection string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	doc, ok := b.collections[collection][c.Param("id")]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
	}
	return c.JSON(http.StatusOK, clone(doc))
}

func (b *Backend) create(c echo.Context, collection string) error {
	var body Doc
	if err := decode(c, &body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.insert(collection, body)
	return c.JSON(http.StatusCreated, clone(b.collections[collection][id]))
}

func (b *Backend) update(c echo.Context, collection string) error {
	var body Doc
	if err := decode(c, &body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	doc, ok := b.collections[collection][c.Param("id")]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
	}
	for k, v := range body {
		doc[k] = v
	}
	doc["updatedAt"] = now()
	return c.JSON(http.StatusOK, clone(doc))
}

func (b *Backend) remove(c echo.Context, collection string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := c.Param("id")
	if _, ok := b.collections[collection][id]; !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
	}
	delete(b.collections[collection], id)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (b *Backend) insert(collection string, doc Doc) string {
	doc = clone(doc)
	id, _ := doc["_id"].(string)
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}
	doc["_id"] = id
	if _, ok := doc["createdAt"]; !ok {
		doc["createdAt"] = now()
	}
	b.collections[collection][id] = doc
	return id
}

// decode reads the JSON body only; echo's Bind would also copy path params
// into map destinations.
func decode(c echo.Context, v any) error {
	return json.NewDecoder(c.Request().Body).Decode(v)
}

func clone(doc Doc) Doc {
	if doc == nil {
		return nil
	}
	out := make(Doc, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func atoi(raw string, def int) int {
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		return v
	}
	return def
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
