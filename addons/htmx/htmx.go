package htmx

import (
	"encoding/json"

	"golang.org/x/net/html"

	"github.com/buildwithgo/radioitems"
	"github.com/buildwithgo/radioitems/host"
)

// Is returns true if the request is an HTMX request.
func Is(c *host.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// Trigger sets the HX-Trigger header to trigger a client-side event.
func Trigger(c *host.Context, event string) {
	c.SetHeader("HX-Trigger", event)
}

// TriggerJSON sets the HX-Trigger header with a JSON object for passing data to events.
func TriggerJSON(c *host.Context, events map[string]any) error {
	b, err := json.Marshal(events)
	if err != nil {
		return err
	}
	c.SetHeader("HX-Trigger", string(b))
	return nil
}

// Retarget sets the HX-Retarget header to update a different element than the one triggering the request.
func Retarget(c *host.Context, target string) {
	c.SetHeader("HX-Retarget", target)
}

// Reswap sets the HX-Reswap header to specify how the response should be swapped in.
func Reswap(c *host.Context, swap string) {
	c.SetHeader("HX-Reswap", swap)
}

// Selection is the body an input built by InputAttrs posts.
type Selection struct {
	Group  string `json:"group"`
	Option int    `json:"option"`
}

// InputAttrs makes every rendered input post its Selection to endpoint when
// it changes and swap the closest element carrying data-radioitems with the
// response.
func InputAttrs(endpoint string) radioitems.InputAttrsFunc {
	return func(key string, index int, _ radioitems.SubOption) []html.Attribute {
		vals, _ := json.Marshal(Selection{Group: key, Option: index})
		return []html.Attribute{
			{Key: "hx-post", Val: endpoint},
			{Key: "hx-trigger", Val: "change"},
			{Key: "hx-vals", Val: string(vals)},
			{Key: "hx-target", Val: "closest [data-radioitems]"},
			{Key: "hx-swap", Val: "outerHTML"},
		}
	}
}
