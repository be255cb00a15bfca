package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-while/go-hello/internal/config"
	"golang.org/x/net/html"
)

// RootID is the host element the component mounts into by default
const RootID = config.DefaultMountID

var ErrMountPointNotFound = errors.New("mount point not found")

// Mount parses the host document, replaces the children of the element
// with id rootID by the rendered component and writes the whole document to w.
func Mount(host io.Reader, w io.Writer, rootID string) error {
	doc, err := html.Parse(host)
	if err != nil {
		return fmt.Errorf("parse host document: %w", err)
	}

	root := findByID(doc, rootID)
	if root == nil {
		return fmt.Errorf("%w: #%s", ErrMountPointNotFound, rootID)
	}

	markup, err := Congratulations()
	if err != nil {
		return err
	}
	nodes, err := html.ParseFragment(strings.NewReader(string(markup)), root)
	if err != nil {
		return fmt.Errorf("parse component: %w", err)
	}

	for c := root.FirstChild; c != nil; {
		next := c.NextSibling
		root.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Render mounts the component into the embedded default host page
func Render(w io.Writer) error {
	host, err := EmbeddedStaticFS.Open(IndexFile)
	if err != nil {
		return fmt.Errorf("open embedded %s: %w", IndexFile, err)
	}
	defer host.Close()
	return Mount(host, w, RootID)
}

// findByID walks the tree depth first and returns the first element with the given id
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
