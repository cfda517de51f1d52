package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/km-arc/go-container/framework/app"
	"github.com/km-arc/go-container/framework/container"
	gohttp "github.com/km-arc/go-container/framework/http"
	"github.com/km-arc/go-container/framework/routing"
)

// ── Domain ────────────────────────────────────────────────────────────────────

// UserRepository is bound to an in-memory implementation below; swap the
// binding to change storage without touching the controller.
type UserRepository interface {
	All() []User
	Find(id string) (User, bool)
	Save(u User) User
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]User
	next  int
}

func newMemoryUsers(seed []User) *memoryUsers {
	m := &memoryUsers{users: make(map[string]User)}
	for _, u := range seed {
		m.Save(u)
	}
	return m
}

func (m *memoryUsers) All() []User {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryUsers) Find(id string) (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	return u, ok
}

func (m *memoryUsers) Save(u User) User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	u.ID = fmt.Sprint(m.next)
	m.users[u.ID] = u
	return u
}

// ── Controllers ───────────────────────────────────────────────────────────────

// UserController is built by the container on every request; its fields are
// injected by type.
type UserController struct {
	Users UserRepository `inject:""`
	Log   *slog.Logger   `inject:""`
}

var errNotFound = errors.New("user not found")

func (c *UserController) Index() []User { return c.Users.All() }

func (c *UserController) Show(id string, res *gohttp.Response) any {
	u, ok := c.Users.Find(id)
	if !ok {
		res.NotFound(errNotFound.Error())
		return nil
	}
	return u
}

func (c *UserController) Store(req *gohttp.Request, res *gohttp.Response) {
	var u User
	if err := req.Bind(&u); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	if u.Name == "" || u.Email == "" {
		res.Error(http.StatusUnprocessableEntity, "name and email are required")
		return
	}
	saved := c.Users.Save(u)
	c.Log.Info("user created", "id", saved.ID)
	res.Created(saved)
}

// ── Providers ─────────────────────────────────────────────────────────────────

// AppServiceProvider binds the application's own services.
type AppServiceProvider struct {
	container.BaseProvider
}

func (p *AppServiceProvider) Register(c *container.Container) {
	c.Singleton(container.KeyOf[UserRepository](), container.Closure(func(*container.Container, container.Params) (any, error) {
		return newMemoryUsers([]User{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "Bob", Email: "bob@example.com"},
		}), nil
	}))
	c.Bind("UserController", container.TypeOf[UserController](
		container.WithMethod("Show", container.Arg("id")),
	))
}

// ── Bootstrap ─────────────────────────────────────────────────────────────────

func main() {
	application := app.New() // loads .env automatically
	application.Register(&AppServiceProvider{})
	application.Boot()

	r := application.Router()

	r.Get("/", func(a *app.Application) map[string]any {
		return map[string]any{
			"message": "Welcome to " + a.Config().App.Name,
			"version": a.Version(),
		}
	})

	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/users", "UserController@Index")
		api.Post("/users", "UserController@Store")
		api.Get("/users/{id}", "UserController@Show")
	})

	r.Group(func(protected *routing.Router) {
		protected.Middleware(AuthMiddleware)
		protected.Get("/profile", func(req *gohttp.Request) map[string]any {
			return map[string]any{"token": req.BearerToken()}
		})
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger().Error("server error", "err", err)
		os.Exit(1)
	}
}

// AuthMiddleware is an example bearer-token guard.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gohttp.NewRequest(r).BearerToken() == "" {
			gohttp.NewResponse(w).Unauthorized()
			return
		}
		next.ServeHTTP(w, r)
	})
}
