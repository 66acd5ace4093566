// Package htmlutils contains helpers for walking parsed HTML trees.
package htmlutils

import (
	"strings"

	"golang.org/x/net/html"
)

// GetNodeAttr returns the value for an attribute in a node, or "" if no such
// attribute is present.
func GetNodeAttr(node *html.Node, attrName string) string {
	for index := range node.Attr {
		if node.Attr[index].Key == attrName {
			return node.Attr[index].Val
		}
	}

	return ""
}

// NodeHasClass returns true if the given element node has the specified class.
func NodeHasClass(node *html.Node, className string) bool {
	classAttr := GetNodeAttr(node, "class")
	return classAttr != "" && (classAttr == className ||
		strings.HasPrefix(classAttr, className+" ") ||
		strings.HasSuffix(classAttr, " "+className) ||
		strings.Contains(classAttr, " "+className+" "))
}

// WalkNodesPreOrder calls `walker` on each node in pre-order.  If `walker`
// returns false, the given node's children will be skipped.
func WalkNodesPreOrder(node *html.Node, walker func(*html.Node) bool) {
	var f func(*html.Node)
	f = func(node *html.Node) {
		traverseChildren := walker(node)
		if traverseChildren {
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				f(c)
			}
		}
	}
	f(node)
}

// FindNodeByClass searches the tree rooted at "node" for the first element
// with the specified class.  Returns nil if no such node is found.
func FindNodeByClass(node *html.Node, className string) *html.Node {
	var result *html.Node
	WalkNodesPreOrder(node, func(n *html.Node) bool {
		if result != nil {
			return false
		}
		if n.Type == html.ElementNode && NodeHasClass(n, className) {
			result = n
			return false
		}
		return true
	})
	return result
}

// GetNodeTextContent returns the text content of a node.
func GetNodeTextContent(node *html.Node) string {
	result := strings.Builder{}

	WalkNodesPreOrder(node, func(node *html.Node) bool {
		if node.Type == html.TextNode {
			result.WriteString(node.Data)
		}
		return true
	})

	return result.String()
}
