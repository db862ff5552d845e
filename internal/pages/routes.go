package pages

import (
	"strings"

	"github.com/spec-kit/creatorhub/internal/session"
)

// Paths the pages redirect to.
const (
	PathHome          = "/"
	PathLogin         = "/login"
	PathRegister      = "/register"
	PathForgot        = "/forgot-password"
	PathDashboard     = "/dashboard"
	PathExplore       = "/explore"
	PathCreateContent = "/create-content"
	PathSubscriptions = "/subscriptions"
)

// ProfilePath links to a user's profile.
func ProfilePath(username string) string {
	return "/profile/" + username
}

// ContentPath links to a content item.
func ContentPath(id string) string {
	return "/content/" + id
}

// Access is the guard in front of a route.
type Access int

const (
	// Public is open to everyone.
	Public Access = iota
	// Protected needs a signed-in user; others go to /login.
	Protected
	// CreatorOnly needs a signed-in creator; others go to /.
	CreatorOnly
)

// Route is one entry of the route table. Pattern segments starting with a
// colon capture a parameter.
type Route struct {
	Name    string
	Pattern string
	Access  Access
}

// Routes is the route table, matched in order.
var Routes = []Route{
	{Name: "home", Pattern: PathHome, Access: Public},
	{Name: "login", Pattern: PathLogin, Access: Public},
	{Name: "register", Pattern: PathRegister, Access: Public},
	{Name: "forgot_password", Pattern: PathForgot, Access: Public},
	{Name: "create_content", Pattern: PathCreateContent, Access: CreatorOnly},
	{Name: "profile", Pattern: "/profile/:username", Access: Protected},
	{Name: "dashboard", Pattern: PathDashboard, Access: CreatorOnly},
	{Name: "content", Pattern: "/content/:contentId", Access: Protected},
	{Name: "subscriptions", Pattern: PathSubscriptions, Access: Protected},
}

// NotFound matches every path the table does not.
var NotFound = Route{Name: "not_found", Pattern: "*", Access: Public}

// Match finds the route for path and its parameters. Query strings and a
// trailing slash are ignored.
func Match(path string) (Route, map[string]string) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	segments := strings.Split(path, "/")

	for _, route := range Routes {
		if params, ok := matchPattern(route.Pattern, segments); ok {
			return route, params
		}
	}
	return NotFound, map[string]string{}
}

func matchPattern(pattern string, segments []string) (map[string]string, bool) {
	parts := strings.Split(pattern, "/")
	if len(parts) != len(segments) {
		return nil, false
	}
	params := map[string]string{}
	for i, part := range parts {
		switch {
		case strings.HasPrefix(part, ":"):
			if segments[i] == "" {
				return nil, false
			}
			params[part[1:]] = segments[i]
		case part != segments[i]:
			return nil, false
		}
	}
	return params, true
}

// Authorize applies the route's guard to the session. It reports false
// while the session is still loading or when the viewer must be sent
// elsewhere; the Result says where.
func (r Route) Authorize(s session.State) (Result, bool) {
	if r.Access == Public {
		return Result{}, true
	}
	if s.Loading {
		return Result{}, false
	}
	switch {
	case r.Access == Protected && s.User == nil:
		return redirect(PathLogin), false
	case r.Access == CreatorOnly && (s.User == nil || !s.User.IsCreator):
		return redirect(PathHome), false
	}
	return Result{}, true
}
