// Package nav defines the routes pages navigate between.
package nav

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type RouteName int

const (
	RouteList RouteName = iota
	RouteDetail
)

const detailPrefix = "/detail/"

// Route identifies a page and, for the detail page, the habit it shows.
type Route struct {
	Name RouteName
	ID   string
}

func List() Route { return Route{Name: RouteList} }

func Detail(id string) Route { return Route{Name: RouteDetail, ID: id} }

// Path renders the route as "/" or "/detail/<id>".
func (r Route) Path() string {
	if r.Name == RouteDetail {
		return detailPrefix + url.PathEscape(r.ID)
	}
	return "/"
}

// ParseRoute is the inverse of Route.Path.
func ParseRoute(path string) (Route, error) {
	switch {
	case path == "" || path == "/":
		return List(), nil
	case strings.HasPrefix(path, detailPrefix):
		raw := strings.TrimSuffix(strings.TrimPrefix(path, detailPrefix), "/")
		id, err := url.PathUnescape(raw)
		if err != nil || id == "" || strings.Contains(raw, "/") {
			return Route{}, fmt.Errorf("invalid detail route %q", path)
		}
		return Detail(id), nil
	default:
		return Route{}, fmt.Errorf("unknown route %q", path)
	}
}

// NavigateMsg asks the router to switch pages.
type NavigateMsg struct {
	To Route
}

// Navigate returns a command that emits a NavigateMsg.
func Navigate(to Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}
