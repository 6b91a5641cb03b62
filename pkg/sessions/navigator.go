// Package sessions orchestrates the authoring and fill flows: each session
// owns a working copy of remote state, applies the client-side gates, and
// talks to the persistence boundary as discrete request/response calls.
package sessions

// Navigator receives route changes when a flow completes or is redirected.
// The CLI front end maps routes onto follow-up commands; a web front end
// would map them onto URLs.
type Navigator interface {
	Navigate(route string)
}

// Routes the sessions navigate to.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
)

// TemplateRoute returns the detail route for a template.
func TemplateRoute(id string) string {
	return "/templates/" + id
}

// TemplateFormsRoute returns the submitted-forms route for a template.
func TemplateFormsRoute(id string) string {
	return "/templates/" + id + "/forms"
}

// FormRoute returns the detail route for a filled form.
func FormRoute(id string) string {
	return "/forms/" + id
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(route string) {
	f(route)
}
