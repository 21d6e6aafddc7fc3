// Package navigation turns resolved intents into deep links against the
// host application's navigation stack.
package navigation

// Route names a screen in the host application's navigation stack.
type Route string

const (
	// RouteMainChapters shows one chapter. Params: id.
	RouteMainChapters Route = "MainChapters"
	// RouteEvents lists upcoming events. No params.
	RouteEvents Route = "Events"
	// RouteStoryboardDetails shows one storyboard. Params: id, chapterId.
	RouteStoryboardDetails Route = "StoryboardDetails"
)

// Params are the route parameters passed along with a deep link.
type Params map[string]int

// Navigator is the host application's imperative navigation capability.
type Navigator interface {
	Navigate(route Route, params Params)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route Route, params Params)

// Navigate calls f(route, params).
func (f NavigatorFunc) Navigate(route Route, params Params) {
	f(route, params)
}

// Target is a resolved navigation request.
type Target struct {
	Route        Route `json:"route"`
	ChapterID    int   `json:"chapterId,omitempty"`
	StoryboardID int   `json:"storyboardId,omitempty"`
	// Deferred targets are dispatched after the dispatcher's delay.
	Deferred bool `json:"deferred"`
}

// ChapterTarget returns a deferred deep link to a chapter.
func ChapterTarget(chapterID int) Target {
	return Target{Route: RouteMainChapters, ChapterID: chapterID, Deferred: true}
}

// EventsTarget returns a deferred deep link to the events list.
func EventsTarget() Target {
	return Target{Route: RouteEvents, Deferred: true}
}

// StoryboardTarget returns an immediate deep link to a storyboard.
func StoryboardTarget(storyboardID, chapterID int) Target {
	return Target{Route: RouteStoryboardDetails, ChapterID: chapterID, StoryboardID: storyboardID}
}

// Params returns the route parameters for t.
func (t Target) Params() Params {
	switch t.Route {
	case RouteMainChapters:
		return Params{"id": t.ChapterID}
	case RouteStoryboardDetails:
		return Params{"id": t.StoryboardID, "chapterId": t.ChapterID}
	default:
		return nil
	}
}
