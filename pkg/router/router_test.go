package router_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/pkg/router"
)

func get(path string) router.Request {
	return router.NewRequest(context.Background(), http.MethodGet, path)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	noop := router.Func(func() {})

	t.Run("conflicting parameter names", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/foo/{a}", noop))

		err := r.Get("/foo/{b}", noop)
		require.ErrorIs(t, err, router.ErrConflictingRoute)

		var conflict *router.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "/foo/{b}", conflict.Definition)
		assert.Equal(t, "/foo/{a}", conflict.Existing)
		assert.Equal(t, http.MethodGet, conflict.Method)
	})

	t.Run("same definition twice is a conflict", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/about", noop))
		require.ErrorIs(t, r.Get("/about", noop), router.ErrConflictingRoute)
	})

	t.Run("same definition on other method is fine", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/about", noop))
		require.NoError(t, r.Post("/about", noop))
	})

	t.Run("ALL expands to every method", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Any("/ping", noop))

		routes := r.Routes()
		require.Len(t, routes, len(router.Methods))
		for i, m := range router.Methods {
			assert.Equal(t, m, routes[i].Method)
			assert.Equal(t, "/ping", routes[i].Definition)
		}
	})

	t.Run("method case is normalized", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Register("/x", []string{"get", "Post", "GET"}, noop))
		require.Len(t, r.Routes(), 2)
	})

	t.Run("unknown method", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.ErrorIs(t, r.Register("/x", []string{"FETCH"}, noop), router.ErrInvalidMethod)
		require.ErrorIs(t, r.Register("/x", nil, noop), router.ErrInvalidMethod)
	})

	t.Run("invalid parameter name", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.ErrorIs(t, r.Get("/users/{}", noop), router.ErrInvalidRouteParameterName)
		require.ErrorIs(t, r.Get("/users/{9}", noop), router.ErrInvalidRouteParameterName)
		require.Empty(t, r.Routes())
	})

	t.Run("duplicate parameter name", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.ErrorIs(t, r.Get("/x/{a}/{a}", noop), router.ErrDuplicateRouteParameterName)
	})

	t.Run("conflict on one method aborts all methods", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Post("/items/{id}", noop))

		err := r.Register("/items/{item}", []string{http.MethodGet, http.MethodPost}, noop)
		require.ErrorIs(t, err, router.ErrConflictingRoute)

		_, err = r.Match("/items/1", http.MethodGet)
		require.ErrorIs(t, err, router.ErrUnroutableRequest)
		require.Len(t, r.Routes(), 1)
	})

	t.Run("invalid handler is reported", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.ErrorIs(t, r.Get("/x", router.Func("not a func")), router.ErrInvalidHandler)
		require.ErrorIs(t, r.Get("/x", router.Handler{}), router.ErrInvalidHandler)
	})
}

func TestMatch(t *testing.T) {
	t.Parallel()

	t.Run("first match wins", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/a/{x}", router.Func(func() string { return "param" })))
		require.NoError(t, r.Get("/a/literal", router.Func(func() string { return "literal" })))

		route, err := r.Match("/a/literal", http.MethodGet)
		require.NoError(t, err)
		assert.Equal(t, "/a/{x}", route.Definition())

		got, err := r.Route(get("/a/literal"))
		require.NoError(t, err)
		assert.Equal(t, "param", got)
	})

	t.Run("registration order decides overlapping routes", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/users/{id}", router.Func(func() string { return "user" })))
		require.NoError(t, r.Get("/{a}/{b}", router.Func(func() string { return "generic" })))

		got, err := r.Route(get("/users/7"))
		require.NoError(t, err)
		assert.Equal(t, "user", got)

		got, err = r.Route(get("/posts/7"))
		require.NoError(t, err)
		assert.Equal(t, "generic", got)
	})

	t.Run("wrong method is unroutable", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/x", router.Func(func() {})))

		_, err := r.Match("/x", http.MethodPost)
		require.ErrorIs(t, err, router.ErrUnroutableRequest)
		require.False(t, router.IsLogicError(err))
	})

	t.Run("unknown path is unroutable", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		_, err := r.Route(get("/missing"))
		require.ErrorIs(t, err, router.ErrUnroutableRequest)
	})
}

func TestRouteArguments(t *testing.T) {
	t.Parallel()

	t.Run("capture is coerced to int", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/entry/{id}/edit", router.Func(func(id int) int {
			return id
		}, router.Arg("id"))))

		got, err := r.Route(get("/entry/42/edit"))
		require.NoError(t, err)
		require.Equal(t, 42, got)
	})

	t.Run("arguments follow handler order", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/x/{a}/{b}", router.Func(func(b, a string) string {
			return b + "," + a
		}, router.Arg("b"), router.Arg("a"))))

		got, err := r.Route(get("/x/first/second"))
		require.NoError(t, err)
		require.Equal(t, "second,first", got)
	})

	t.Run("optional parameter uses default", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/x/{a}", router.Func(func(a string, b int) string {
			return fmt.Sprintf("%s:%d", a, b)
		}, router.Arg("a"), router.Optional("b", 5))))

		got, err := r.Route(get("/x/hello"))
		require.NoError(t, err)
		require.Equal(t, "hello:5", got)
	})

	t.Run("optional without default is zero", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/x", router.Func(func(page int64) int64 {
			return page
		}, router.Optional("page", nil))))

		got, err := r.Route(get("/x"))
		require.NoError(t, err)
		require.Equal(t, int64(0), got)
	})

	t.Run("required parameter missing from route", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/x/{a}", router.Func(func(a, b string) {}, router.Arg("a"), router.Arg("b"))))

		_, err := r.Route(get("/x/1"))
		require.ErrorIs(t, err, router.ErrHandlerMismatch)
		require.True(t, router.IsLogicError(err))
	})

	t.Run("coercion failure", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/entry/{id}", router.Func(func(id int) {}, router.Arg("id"))))

		_, err := r.Route(get("/entry/abc"))
		require.ErrorIs(t, err, router.ErrArgumentCoercion)
		require.True(t, router.IsLogicError(err))

		var coercion *router.CoercionError
		require.True(t, errors.As(err, &coercion))
		assert.Equal(t, "id", coercion.Param)
		assert.Equal(t, router.KindInt, coercion.Kind)
		assert.Equal(t, "abc", coercion.Raw)
	})

	t.Run("request is injected anywhere", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/hello/{name}", router.Func(
			func(req router.Request, name string, again router.Request) string {
				return req.Method() + " " + name + " " + again.Path()
			}, router.Arg("name"))))

		got, err := r.Route(get("/hello/bob"))
		require.NoError(t, err)
		require.Equal(t, "GET bob /hello/bob", got)
	})

	t.Run("context is injected", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "value")

		r := router.New()
		require.NoError(t, r.Get("/ctx", router.Func(func(ctx context.Context) any {
			return ctx.Value(key{})
		})))

		got, err := r.Route(router.NewRequest(ctx, http.MethodGet, "/ctx"))
		require.NoError(t, err)
		require.Equal(t, "value", got)
	})

	t.Run("http request is injected", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/agent", router.Func(func(req *http.Request) string {
			return req.UserAgent()
		})))

		httpReq := httptest.NewRequest(http.MethodGet, "/agent", nil)
		httpReq.Header.Set("User-Agent", "waypoint-test")

		got, err := r.Route(router.NewHTTPRequest(httpReq))
		require.NoError(t, err)
		require.Equal(t, "waypoint-test", got)
	})

	t.Run("http request missing is a mismatch", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/agent", router.Func(func(req *http.Request) {})))

		_, err := r.Route(get("/agent"))
		require.ErrorIs(t, err, router.ErrHandlerMismatch)
	})

	t.Run("handler error is returned unchanged", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		r := router.New()
		require.NoError(t, r.Get("/boom", router.Func(func() (string, error) {
			return "partial", errBoom
		})))

		got, err := r.Route(get("/boom"))
		require.ErrorIs(t, err, errBoom)
		require.Equal(t, "partial", got)
	})

	t.Run("error only result", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/ok", router.Func(func() error { return nil })))

		got, err := r.Route(get("/ok"))
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

type greeter struct {
	greeting string
}

func (g *greeter) Greet(name string) string {
	return g.greeting + ", " + name
}

func TestMethodHandler(t *testing.T) {
	t.Parallel()

	r := router.New()
	require.NoError(t, r.Get("/greet/{name}", router.Method(&greeter{greeting: "hi"}, "Greet", router.Arg("name"))))

	got, err := r.Route(get("/greet/ann"))
	require.NoError(t, err)
	require.Equal(t, "hi, ann", got)

	require.ErrorIs(t, r.Get("/nope", router.Method(&greeter{}, "Missing")), router.ErrInvalidHandler)
}

type entryController struct {
	prefix string
	calls  int
}

func (c *entryController) Init() error {
	c.prefix = "entry"
	return nil
}

func (c *entryController) Edit(id int) string {
	c.calls++
	return fmt.Sprintf("%s %d (%d)", c.prefix, id, c.calls)
}

type brokenController struct{}

func (c *brokenController) Init() error {
	return errors.New("no database")
}

func (c *brokenController) Show() string {
	return "unreachable"
}

func TestControllerHandler(t *testing.T) {
	t.Parallel()

	t.Run("fresh instance per dispatch", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/entry/{id}/edit", router.Controller[entryController]("Edit", router.Arg("id"))))

		for range 2 {
			got, err := r.Route(get("/entry/3/edit"))
			require.NoError(t, err)
			require.Equal(t, "entry 3 (1)", got)
		}
	})

	t.Run("init failure", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		require.NoError(t, r.Get("/broken", router.Controller[brokenController]("Show")))

		_, err := r.Route(get("/broken"))
		require.ErrorIs(t, err, router.ErrHandlerInstantiation)
		require.True(t, router.IsLogicError(err))
	})

	t.Run("missing method", func(t *testing.T) {
		t.Parallel()

		h := router.Controller[entryController]("Delete")
		require.ErrorIs(t, h.Err(), router.ErrInvalidHandler)
	})

	t.Run("non struct", func(t *testing.T) {
		t.Parallel()

		h := router.Controller[int]("String")
		require.ErrorIs(t, h.Err(), router.ErrInvalidHandler)
	})
}

func TestConcurrentRegisterAndRoute(t *testing.T) {
	t.Parallel()

	r := router.New()
	require.NoError(t, r.Get("/base", router.Func(func() string { return "base" })))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = r.Get(fmt.Sprintf("/r%d", i), router.Func(func() {}))
		}(i)
		go func() {
			defer wg.Done()
			got, err := r.Route(get("/base"))
			assert.NoError(t, err)
			assert.Equal(t, "base", got)
		}()
	}
	wg.Wait()

	require.Len(t, r.Routes(), 21)
}
