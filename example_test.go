package md2img_test

import (
	"fmt"
	"strings"

	md2img "github.com/seiji-k/go-md2img"
)

// Example demonstrates splitting tagged model output into segments.
// Rendering the segments to images requires Chrome; see Service.Process.
func Example() {
	sp := md2img.NewSplitter("md")

	segments := sp.Split("The derivation: <md>$e^{i\\pi} + 1 = 0$</md> as requested.")
	for _, seg := range segments {
		fmt.Printf("%s: %s\n", seg.Kind, seg.Text)
	}
	// Output:
	// literal: The derivation:
	// renderable: $e^{i\pi} + 1 = 0$
	// literal: as requested.
}

// ExampleNormalizeMath demonstrates escaped-delimiter repair.
func ExampleNormalizeMath() {
	fmt.Println(md2img.NormalizeMath(`the value \$x\$ is known`))
	fmt.Println(md2img.NormalizeMath(`$ \alpha $`))
	// Output:
	// the value $x$ is known
	// $\alpha$
}

// ExampleSanitizeMarkup demonstrates markup stripping for plain-text
// delivery of literal segments.
func ExampleSanitizeMarkup() {
	fmt.Println(md2img.SanitizeMarkup("**bold** and `code` and [a link](https://example.com)"))
	// Output: bold and code and a link
}

// ExamplePromptInstructions demonstrates the instruction block appended
// to the outbound model prompt.
func ExamplePromptInstructions() {
	text := md2img.PromptInstructions("md")
	if strings.Contains(text, "<md>") && strings.Contains(text, "</md>") {
		fmt.Println("instructions reference the tag pair")
	}
	// Output: instructions reference the tag pair
}
