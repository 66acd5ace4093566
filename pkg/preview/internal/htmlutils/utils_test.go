package htmlutils

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, source string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(source))
	require.NoError(t, err)
	return doc
}

func TestGetNodeTextContent(t *testing.T) {
	doc := parse(t, `<html><body><div>Hello <span>world</span></div></body></html>`)
	assert.Equal(t, "Hello world", GetNodeTextContent(doc))
}

func TestFindNodeByClass(t *testing.T) {
	doc := parse(t, `<html><body>
		<div class="header big">nope</div>
		<h1 class="pageTitle">Designer X - Runway - Show - Womenswear</h1>
	</body></html>`)

	node := FindNodeByClass(doc, "pageTitle")
	require.NotNil(t, node)
	assert.Equal(t, "Designer X - Runway - Show - Womenswear", GetNodeTextContent(node))

	assert.Nil(t, FindNodeByClass(doc, "missing"))
}

func TestNodeHasClass(t *testing.T) {
	doc := parse(t, `<html><body><div class="a b c">x</div></body></html>`)
	div := FindNodeByClass(doc, "b")
	require.NotNil(t, div)
	assert.True(t, NodeHasClass(div, "a"))
	assert.True(t, NodeHasClass(div, "c"))
	assert.False(t, NodeHasClass(div, "d"))
}
