package form

import (
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/log"
)

var ErrNoForm = errors.New("form: page has no <form>")

// Parse reads the quiz form definition out of page markup: the first form
// with class quiz-form, else the first form on the page.
func Parse(r io.Reader) (*Form, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var forms []*html.Node
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "form" {
			forms = append(forms, n)
		}
		return true
	})
	if len(forms) == 0 {
		return nil, ErrNoForm
	}
	node := forms[0]
	for _, n := range forms {
		if hasClass(n, "quiz-form") {
			node = n
			break
		}
	}

	f := &Form{SubmitLabel: DefaultSubmitLabel}
	walk(node, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.Data {
		case "input":
			typ := strings.ToLower(attr(n, "type"))
			if typ == "" {
				typ = TypeText
			}
			switch typ {
			case "submit", "button", "reset", "hidden", "image":
				return false
			}
			f.Fields = append(f.Fields, fieldOf(n, typ))
		case "select", "textarea":
			f.Fields = append(f.Fields, fieldOf(n, n.Data))
			return false
		case "button":
			if typ := attr(n, "type"); typ == "" || typ == "submit" {
				if label := strings.TrimSpace(nodeText(n)); label != "" {
					f.SubmitLabel = label
				}
			}
			return false
		}
		return true
	})
	return f, nil
}

// Load parses the form on the page at path, falling back to Contact.
func Load(path string) *Form {
	file, err := os.Open(path)
	if err != nil {
		log.Warnf("form.page: %s, using built-in contact form", err)
		return Contact()
	}
	defer file.Close()

	f, err := Parse(file)
	if err != nil {
		log.Warnf("form.page.parse: %s, using built-in contact form", err)
		return Contact()
	}
	return f
}

func fieldOf(n *html.Node, typ string) *Field {
	_, required := lookup(n, "required")
	field := &Field{
		ID:       attr(n, "id"),
		Name:     attr(n, "name"),
		Type:     typ,
		Required: required,
	}
	if field.ID == "" {
		field.ID = field.Name
	}
	return field
}

func walk(n *html.Node, visit func(*html.Node) bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if visit(c) {
			walk(c, visit)
		}
	}
}

func lookup(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := lookup(n, key)
	return v
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}
