package radioitems

import (
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render builds one container per option group, in Options order, each
// holding a label wrapped input per sub-option. When the widget has an ID it
// is set on every container, so a widget with several groups yields
// duplicate ids in the document.
func (g *RadioGroup) Render() []*html.Node {
	values := g.Values()
	p := g.props

	nodes := make([]*html.Node, 0, len(p.Options))
	for _, group := range p.Options {
		container := element(atom.Div,
			attr("id", p.ID),
			attr("class", p.ClassName),
			attr("style", p.Style.CSS()),
		)
		for i, option := range group.Options {
			input := element(atom.Input,
				attr("class", p.InputClassName),
				attr("style", p.InputStyle.CSS()),
				html.Attribute{Key: "type", Val: "radio"},
				html.Attribute{Key: "name", Val: group.Key},
				html.Attribute{Key: "value", Val: strconv.Itoa(i)},
			)
			if values.Selected(group.Key, option.Value) {
				input.Attr = append(input.Attr, html.Attribute{Key: "checked"})
			}
			if option.Disabled {
				input.Attr = append(input.Attr, html.Attribute{Key: "disabled"})
			}
			if p.InputAttrs != nil {
				input.Attr = append(input.Attr, p.InputAttrs(group.Key, i, option)...)
			}

			label := element(atom.Label,
				attr("class", p.LabelClassName),
				attr("style", p.LabelStyle.CSS()),
			)
			label.AppendChild(input)
			label.AppendChild(&html.Node{Type: html.TextNode, Data: option.Label})
			container.AppendChild(label)
		}
		nodes = append(nodes, container)
	}
	return nodes
}

// RenderHTML writes the rendered containers to w.
func (g *RadioGroup) RenderHTML(w io.Writer) error {
	for _, n := range g.Render() {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, at := range attrs {
		if at.Key != "" {
			n.Attr = append(n.Attr, at)
		}
	}
	return n
}

// attr returns a zero Attribute for empty values so element skips it.
func attr(key, val string) html.Attribute {
	if val == "" {
		return html.Attribute{}
	}
	return html.Attribute{Key: key, Val: val}
}
