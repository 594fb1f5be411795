// Package htmladapter converts parsed HTML node trees into structural model
// fragments. It is glue for integrators and tests feeding the engine plain
// HTML; framework template syntaxes go through their own external front-end
// parsers instead.
package htmladapter

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"axc-go/packages/engine/model"
	"axc-go/packages/engine/util"
)

// FragmentFromHTML parses an HTML document or snippet and returns it as one
// structural fragment rooted at the document body. The html package does
// not track source offsets, so node spans carry the source id only.
func FragmentFromHTML(sourceID, content string) (*model.Fragment, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("htmladapter: parsing %q: %w", sourceID, err)
	}
	body := findElement(doc, "body")
	if body == nil {
		return nil, fmt.Errorf("htmladapter: %q produced no body element", sourceID)
	}
	return FragmentFromNode(sourceID, body)
}

// FragmentFromNode converts an already parsed element node into a
// structural fragment.
func FragmentFromNode(sourceID string, node *html.Node) (*model.Fragment, error) {
	if node == nil || node.Type != html.ElementNode {
		return nil, fmt.Errorf("htmladapter: %q: root must be an element node", sourceID)
	}
	span := util.SyntheticSpan(sourceID)
	root := convertElement(node, span)
	return model.NewFragment(sourceID, root)
}

func convertElement(node *html.Node, span *util.ParseSourceSpan) *model.Element {
	attrs := make([]*model.Attribute, 0, len(node.Attr))
	for _, attr := range node.Attr {
		attrs = append(attrs, model.NewAttribute(attr.Key, attr.Val, span, span, span))
	}
	var children []model.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			children = append(children, convertElement(child, span))
		case html.TextNode:
			if strings.TrimSpace(child.Data) != "" {
				children = append(children, model.NewText(child.Data, span))
			}
		case html.CommentNode:
			children = append(children, model.NewComment(child.Data, span))
		}
	}
	return model.NewElement(strings.ToLower(node.Data), attrs, children, false, span, span, span)
}

func findElement(node *html.Node, tag string) *html.Node {
	if node.Type == html.ElementNode && node.Data == tag {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}
