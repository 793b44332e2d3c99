package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.routes = append(router.routes, routes...)
		}
	}

	// WithRouteMiddleware envolve todas as rotas com um middleware que conhece
	// o método e o template da rota (usado nas métricas)
	WithRouteMiddleware = func(mw func(method, path string) func(http.Handler) http.Handler) ConfigRouter {
		return func(router *Router) {
			router.routeMiddlewares = append(router.routeMiddlewares, mw)
		}
	}

	WithNotFound = func(handler http.Handler) ConfigRouter {
		return func(router *Router) {
			router.router.NotFound = handler
		}
	}
)

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // Middlewares específicos desta rota
}

type Router struct {
	router           *httprouter.Router
	routes           []Route
	routeMiddlewares []func(method, path string) func(http.Handler) http.Handler
}

type ConfigRouter func(router *Router)

// New aplica as configurações e só então registra as rotas, então a ordem das
// opções não importa
func New(configs ...ConfigRouter) Router {
	router := &Router{
		router: httprouter.New(),
	}

	for _, config := range configs {
		config(router)
	}

	router.AddRoutes(router.routes...)

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes registra as rotas com seus middlewares. Os middlewares da rota rodam
// na ordem declarada, depois dos middlewares globais de rota.
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		var handler http.Handler = route.Handler

		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		for i := len(r.routeMiddlewares) - 1; i >= 0; i-- {
			handler = r.routeMiddlewares[i](route.Method, route.Path)(handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
	}
}
