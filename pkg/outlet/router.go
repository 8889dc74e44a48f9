package outlet

// RouteHandler handles a single gateway event.
type RouteHandler func(*Event) error

// Route defines a plugin route handler, matched on event type
type Route struct {
	// EventType is the event type to match
	EventType EventType

	// Handler is the handler to call
	Handler RouteHandler
}

func NewRoute(eventType EventType, handler RouteHandler) Route {
	return Route{
		EventType: eventType,
		Handler:   handler,
	}
}

// Router dispatches gateway events to plugin routes and holds the command
// table. Routes run in registration order within an event type.
type Router struct {
	routes          []Route
	routeEventCache map[EventType][]Route

	commands map[string]*Command
	order    []string
}

func NewRouter() *Router {
	return &Router{
		routes:          make([]Route, 0),
		routeEventCache: make(map[EventType][]Route),
		commands:        make(map[string]*Command),
	}
}

func (r *Router) AddRoute(route Route) {
	r.routes = append(r.routes, route)
	r.routeEventCache[route.EventType] = append(r.routeEventCache[route.EventType], route)
}

func (r *Router) GetRoutesByEvent(eventType EventType) []Route {
	return r.routeEventCache[eventType]
}

func (r *Router) GetRoutes() []Route {
	return r.routes
}

// AddCommand registers a command. Command names are global across plugins;
// a duplicate name is a programming error and panics at startup.
func (r *Router) AddCommand(cmd *Command) {
	if _, ok := r.commands[cmd.Name]; ok {
		panic("command already registered: " + cmd.Name)
	}

	r.commands[cmd.Name] = cmd
	r.order = append(r.order, cmd.Name)
}

// Lookup returns the command registered under name, or nil.
func (r *Router) Lookup(name string) *Command {
	return r.commands[name]
}

// Commands returns all commands in registration order.
func (r *Router) Commands() []*Command {
	out := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}

	return out
}

func (r *Router) Handle(evt *Event) error {
	for _, route := range r.GetRoutesByEvent(evt.Type) {
		if err := route.Handler(evt); err != nil {
			return err
		}
	}

	return nil
}
