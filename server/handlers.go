package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/buildwithgo/radioitems"
	"github.com/buildwithgo/radioitems/addons/htmx"
	"github.com/buildwithgo/radioitems/addons/react"
	"github.com/buildwithgo/radioitems/addons/websocket"
	"github.com/buildwithgo/radioitems/host"
)

// ClientProps is the serialisable view of a widget handed to a React client.
type ClientProps struct {
	ID             string             `json:"id,omitempty"`
	Options        radioitems.Options `json:"options"`
	Values         radioitems.Values  `json:"values"`
	Style          radioitems.Style   `json:"style,omitempty"`
	ClassName      string             `json:"className,omitempty"`
	InputStyle     radioitems.Style   `json:"inputStyle"`
	InputClassName string             `json:"inputClassName"`
	LabelStyle     radioitems.Style   `json:"labelStyle"`
	LabelClassName string             `json:"labelClassName"`
}

// Props returns the widget's current client props.
func (w *Widget) Props() ClientProps {
	p := w.RadioGroup.Props()
	return ClientProps{
		ID:             p.ID,
		Options:        p.Options,
		Values:         w.Values(),
		Style:          p.Style,
		ClassName:      p.ClassName,
		InputStyle:     nonNil(p.InputStyle),
		InputClassName: p.InputClassName,
		LabelStyle:     nonNil(p.LabelStyle),
		LabelClassName: p.LabelClassName,
	}
}

func nonNil(s radioitems.Style) radioitems.Style {
	if s == nil {
		return radioitems.Style{}
	}
	return s
}

// Fragment renders the widget wrapped in the element htmx swaps.
func (w *Widget) Fragment() (string, error) {
	root := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
		Attr:     []html.Attribute{{Key: "data-radioitems", Val: w.ID()}},
	}
	for _, n := range w.Render() {
		root.AppendChild(n)
	}

	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		return "", err
	}
	return b.String(), nil
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{ .ID }}</title>
    <script src="https://unpkg.com/htmx.org@2.0.4"></script>
</head>
<body>
    {{ .Fragment }}
</body>
</html>
`))

func (s *Server) show(c *host.Context) error {
	w, err := s.widget(c)
	if err != nil {
		return err
	}

	if s.react != nil && react.Is(c) {
		return s.react.Render(c, ComponentName, w.Props())
	}

	fragment, err := w.Fragment()
	if err != nil {
		return err
	}
	if htmx.Is(c) {
		return c.HTML(http.StatusOK, fragment)
	}

	var b strings.Builder
	err = page.Execute(&b, struct {
		ID       string
		Fragment template.HTML
	}{w.ID(), template.HTML(fragment)})
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, b.String())
}

func (s *Server) selectOption(c *host.Context) error {
	w, err := s.widget(c)
	if err != nil {
		return err
	}

	sel, err := bindSelection(c)
	if err != nil {
		return err
	}

	ctx := context.WithValue(c.Request.Context(), requestKey{}, c)
	switch err := w.Select(ctx, sel.Group, sel.Option); {
	case errors.Is(err, radioitems.ErrUnknownGroup), errors.Is(err, radioitems.ErrUnknownOption):
		return host.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case errors.Is(err, radioitems.ErrDisabled):
		return host.NewHTTPError(http.StatusConflict, err.Error()).SetInternal(err)
	case err != nil:
		return err
	}

	if !htmx.Is(c) {
		return c.JSON(http.StatusOK, radioitems.Update{Value: w.Values()})
	}
	fragment, err := w.Fragment()
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, fragment)
}

func bindSelection(c *host.Context) (htmx.Selection, error) {
	var sel htmx.Selection
	if strings.HasPrefix(c.GetHeader("Content-Type"), "application/json") {
		var body struct {
			Group  string `json:"group"`
			Option *int   `json:"option"`
		}
		if err := c.BindJSON(&body); err != nil {
			return sel, err
		}
		if body.Option == nil {
			return sel, host.NewHTTPError(http.StatusBadRequest, "option is required")
		}
		sel.Group, sel.Option = body.Group, *body.Option
		return sel, nil
	}

	sel.Group = c.FormValue("group")
	option, err := strconv.Atoi(c.FormValue("option"))
	if err != nil {
		return sel, host.NewHTTPError(http.StatusBadRequest, "option must be an integer").SetInternal(err)
	}
	sel.Option = option
	return sel, nil
}

func (s *Server) values(c *host.Context) error {
	w, err := s.widget(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w.Values())
}

func (s *Server) receive(c *host.Context) error {
	var values radioitems.Values
	if err := c.BindJSON(&values); err != nil {
		return err
	}
	err := s.Receive(c.PathParam("id"), values)
	if errors.Is(err, ErrUnknownWidget) {
		return host.NewHTTPError(http.StatusNotFound, "unknown widget").SetInternal(err)
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) stream(c *host.Context) error {
	w, err := s.widget(c)
	if err != nil {
		return err
	}
	return websocket.New(w.hub.Stream())(c)
}
