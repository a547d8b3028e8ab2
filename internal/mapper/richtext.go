package mapper

import (
	"fmt"
	"regexp"
	"strings"

	"zenpeople/internal/domain/entity"
)

var (
	breakTagRe = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|li|ul|ol|h[1-6]|tr|table|blockquote)>`)
	anyTagRe   = regexp.MustCompile(`<[^>]*>`)
)

// entityReplacer decodes the handful of named entities that show up in ad
// descriptions. Ampersand goes last so decoded entities are not re-decoded.
var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&nbsp;", " ",
	"&amp;", "&",
)

// HTMLToBlocks flattens an HTML fragment into rich text paragraph blocks.
// Block-level closing tags and <br> become paragraph breaks, all other tags
// are stripped, and each surviving paragraph becomes one plain block. The
// conversion is lossy on purpose: nested lists, inline formatting, and links
// flatten to text, and malformed HTML never fails.
func HTMLToBlocks(html string) []entity.Block {
	if strings.TrimSpace(html) == "" {
		return nil
	}

	text := breakTagRe.ReplaceAllString(html, "\n")
	text = anyTagRe.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)

	var blocks []entity.Block
	for _, paragraph := range strings.Split(text, "\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		blocks = append(blocks, newBlock(len(blocks), paragraph))
	}

	return blocks
}

// newBlock builds one paragraph block with a deterministic key, so repeated
// conversions of the same input are byte-identical.
func newBlock(index int, text string) entity.Block {
	return entity.Block{
		Key:      fmt.Sprintf("block-%d", index),
		Type:     "block",
		Style:    "normal",
		MarkDefs: []interface{}{},
		Children: []entity.Span{
			{
				Type:  "span",
				Text:  text,
				Marks: []string{},
			},
		},
	}
}
