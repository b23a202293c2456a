// Package route is the fixed page table of the dashboard: titles, breadcrumbs
// and the login continuation of unauthenticated requests.
package route

import (
	"net/url"
	"path"
	"strings"
)

// LoginPath is the sign-in page.
const LoginPath = "/login"

type Route struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Public bool   `json:"public"`
}

var table = []Route{
	{Path: "/", Title: "Dashboard"},
	{Path: LoginPath, Title: "Sign In", Public: true},
	{Path: "/students", Title: "Students"},
	{Path: "/students/new", Title: "Register Student"},
	{Path: "/students/graduated", Title: "Graduated Students"},
	{Path: "/employees", Title: "Employees"},
	{Path: "/employees/attendance", Title: "Attendance"},
	{Path: "/stock", Title: "Stock"},
	{Path: "/stock/categories", Title: "Stock Categories"},
	{Path: "/investment", Title: "Investment Fund"},
	{Path: "/investment/members", Title: "Fund Members"},
	{Path: "/investment/payments", Title: "Fund Payments"},
}

var index = func() map[string]Route {
	m := make(map[string]Route, len(table))
	for _, r := range table {
		m[r.Path] = r
	}
	return m
}()

// All returns a copy of the route table.
func All() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Clean normalizes p: leading slash, no trailing slash, no query string.
func Clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean("/" + strings.TrimSpace(p))
}

// Resolve returns the route matching p, falling back to the longest registered
// prefix on "/" boundaries; "/" always matches.
func Resolve(p string) Route {
	p = Clean(p)
	for {
		if r, ok := index[p]; ok {
			return r
		}
		p = path.Dir(p)
	}
}

// Breadcrumbs returns the registered routes from "/" down to p.
func Breadcrumbs(p string) []Route {
	p = Clean(p)
	var crumbs []Route
	for {
		if r, ok := index[p]; ok {
			crumbs = append(crumbs, r)
		}
		if p == "/" {
			break
		}
		p = path.Dir(p)
	}
	for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
		crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
	}
	return crumbs
}

// WindowTitle returns "<Title> | <appName>".
func WindowTitle(p, appName string) string {
	return Resolve(p).Title + " | " + appName
}

// IsPublic reports whether p can be served without signing in.
func IsPublic(p string) bool {
	return Resolve(p).Public
}

// LoginRedirect returns the login path carrying p as the return continuation.
func LoginRedirect(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || Clean(p) == LoginPath {
		return LoginPath
	}
	return LoginPath + "?redirect=" + url.QueryEscape(p)
}

// RedirectTarget extracts the continuation of a login URL, defaulting to "/".
// Only local paths are honored.
func RedirectTarget(loginURL string) string {
	u, err := url.Parse(loginURL)
	if err != nil {
		return "/"
	}
	target := u.Query().Get("redirect")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	return target
}
