package platforms

// builtin is the default catalog, in selection-menu order.
var builtin = []Platform{
	{ID: "github", Name: "GitHub", Icon: "icon-github.svg", Pattern: URLPattern{Hosts: []string{"github.com"}}},
	{ID: "frontend-mentor", Name: "Frontend Mentor", Icon: "icon-frontend-mentor.svg", Pattern: URLPattern{Hosts: []string{"frontendmentor.io"}, PathPrefix: "/profile/"}},
	{ID: "twitter", Name: "Twitter", Icon: "icon-twitter.svg", Pattern: URLPattern{Hosts: []string{"twitter.com", "x.com"}}},
	{ID: "linkedin", Name: "LinkedIn", Icon: "icon-linkedin.svg", Pattern: URLPattern{Hosts: []string{"linkedin.com"}, PathPrefix: "/in/"}},
	{ID: "youtube", Name: "YouTube", Icon: "icon-youtube.svg", Pattern: URLPattern{Hosts: []string{"youtube.com"}}},
	{ID: "facebook", Name: "Facebook", Icon: "icon-facebook.svg", Pattern: URLPattern{Hosts: []string{"facebook.com"}}},
	{ID: "twitch", Name: "Twitch", Icon: "icon-twitch.svg", Pattern: URLPattern{Hosts: []string{"twitch.tv"}}},
	{ID: "devto", Name: "Dev.to", Icon: "icon-devto.svg", Pattern: URLPattern{Hosts: []string{"dev.to"}}},
	{ID: "codewars", Name: "Codewars", Icon: "icon-codewars.svg", Pattern: URLPattern{Hosts: []string{"codewars.com"}, PathPrefix: "/users/"}},
	{ID: "codepen", Name: "Codepen", Icon: "icon-codepen.svg", Pattern: URLPattern{Hosts: []string{"codepen.io"}}},
	{ID: "freecodecamp", Name: "freeCodeCamp", Icon: "icon-freecodecamp.svg", Pattern: URLPattern{Hosts: []string{"freecodecamp.org"}}},
	{ID: "gitlab", Name: "GitLab", Icon: "icon-gitlab.svg", Pattern: URLPattern{Hosts: []string{"gitlab.com"}}},
	{ID: "hashnode", Name: "Hashnode", Icon: "icon-hashnode.svg", Pattern: URLPattern{Hosts: []string{"hashnode.com"}, PathPrefix: "/@"}},
	{ID: "stack-overflow", Name: "Stack Overflow", Icon: "icon-stack-overflow.svg", Pattern: URLPattern{Hosts: []string{"stackoverflow.com"}, PathPrefix: "/users/"}},
}

// Default returns the built-in catalog.
func Default() *Registry {
	r, err := New(builtin...)
	if err != nil {
		panic("platforms: invalid builtin catalog: " + err.Error())
	}
	return r
}
