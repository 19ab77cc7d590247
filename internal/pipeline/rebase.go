package pipeline

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RebaseImages prefixes the relative src of every <img> in an HTML body
// fragment with base, a slash-separated directory. URLs with a scheme or
// host, rooted paths and fragments are left alone. An empty or "." base
// returns fragment unchanged.
func RebaseImages(fragment, base string) (string, error) {
	if base == "" || base == "." {
		return fragment, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range nodes {
		rebase(n, base)
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func rebase(n *html.Node, base string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, a := range n.Attr {
			if a.Namespace == "" && a.Key == "src" && isRelativeRef(a.Val) {
				n.Attr[i].Val = path.Join(base, a.Val)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rebase(c, base)
	}
}

func isRelativeRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "#") {
		return false
	}
	u, err := url.Parse(ref)
	return err == nil && u.Scheme == "" && u.Host == ""
}
