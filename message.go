package md2img

import "fmt"

// PartKind classifies a host message-chain item.
type PartKind int

const (
	// PartText is a plain-text chain item; the only kind this library
	// expands.
	PartText PartKind = iota
	// PartImage is a rendered-image chain item referenced by file path.
	PartImage
	// PartOther is any other host item, passed through untouched with
	// its payload intact.
	PartOther
)

// MessagePart is one item of the host message chain, as a closed tagged
// variant so the assembler boundary can match exhaustively.
type MessagePart struct {
	Kind      PartKind
	Text      string
	ImagePath string
	// Payload carries the host's opaque item for PartOther.
	Payload any
}

// TextPart builds a plain-text chain item.
func TextPart(s string) MessagePart {
	return MessagePart{Kind: PartText, Text: s}
}

// ImagePart builds an image chain item.
func ImagePart(path string) MessagePart {
	return MessagePart{Kind: PartImage, ImagePath: path}
}

// OtherPart wraps an opaque host item for passthrough.
func OtherPart(payload any) MessagePart {
	return MessagePart{Kind: PartOther, Payload: payload}
}

// partFromItem converts an assembled output item to a chain item.
func partFromItem(item OutputItem) MessagePart {
	if item.Kind == OutputImage {
		return ImagePart(item.ImagePath)
	}
	return TextPart(item.Text)
}

// PromptInstructions returns the fixed instruction block describing the
// tag grammar, for appending to the outbound model prompt. This is the
// human/LLM-facing side of the contract the Splitter parses.
func PromptInstructions(tag string) string {
	if tag == "" {
		tag = DefaultTag
	}
	return fmt.Sprintf(`When your reply contains Markdown formatting, tables, code blocks, or LaTeX math, wrap those parts in <%[1]s> and </%[1]s> tags. The wrapped content is rendered as an image, so use standard Markdown and $...$ / $$...$$ math delimiters inside it. Text outside the tags is sent as plain text. Do not nest the tags.`, tag)
}
