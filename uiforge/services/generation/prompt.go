package generation

import "fmt"

const promptTemplate = `You are an expert React developer. Build a React component for this request:

%s

Rules:
- Write a single function component in JSX. Hooks are allowed.
- Do not write import or export statements; React is already in scope.
- Put all styling in plain CSS using class names, not inline style objects.

Reply in exactly this format and nothing else:
JSX:
<the JSX code>
CSS:
<the CSS code>
Explanation:
<one or two sentences describing the component>`

// BuildPrompt embeds the user's request in the fixed instruction template.
func BuildPrompt(prompt string) string {
	return fmt.Sprintf(promptTemplate, prompt)
}
