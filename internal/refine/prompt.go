package refine

import (
	"fmt"
	"regexp"
	"strings"
)

var variablePattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// render replaces {{variable}} placeholders in the template with values
// from vars. Unknown placeholders are an error so prompt template drift is
// caught early.
func render(template string, vars map[string]string) (string, error) {
	var missing []string
	for _, m := range variablePattern.FindAllStringSubmatch(template, -1) {
		if _, ok := vars[m[1]]; !ok {
			missing = append(missing, m[1])
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing template variables: %s", strings.Join(missing, ", "))
	}

	return variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		return vars[match[2:len(match)-2]]
	}), nil
}

const refineSystemPrompt = `You are an expert prompt engineer. Your task is to refine a user's instruction into an array of 2-3 distinct, high-quality prompt variations. For each variation, you MUST provide a rating from 0 to 10 (inclusive), where 10 signifies an excellent, highly effective prompt and 0 signifies a very poor one. The style and detail of these variations should be guided by the user-selected prompt level.

Based on the prompt level, generate the array of prompt variations as follows:

1. If the level is 'Quick': generate 3 short, actionable prompts. Focus on brevity and immediate usability, with minimal context or formatting hints. Minimum of 25 words per prompt.

2. If the level is 'Balanced': generate 3 moderately detailed prompts. Incorporate relevant context and suggest a desired output format or length. Minimum of 50 words per prompt.

3. If the level is 'Comprehensive': generate 2 highly detailed prompts, rich in context, with explicit instructions on format and style. Add deep context, goals, tone, format expectations, and examples where appropriate. Minimum of 100 words per prompt.

Your output MUST be a JSON object with a single key "refinedPrompts" which is an array of 2-3 objects. Each object must have a "promptText" (string for the prompt itself) and "rating" (a number between 0 and 10 for its quality). For example:
{
  "refinedPrompts": [
    { "promptText": "Prompt variation 1 focusing on brevity...", "rating": 8 },
    { "promptText": "Prompt variation 2 with more context...", "rating": 9 },
    { "promptText": "Prompt variation 3, very detailed...", "rating": 7 }
  ]
}

Do not include any text outside the JSON object. No markdown, no explanation.`

const refineUserTemplate = `Instruction: {{instruction}}
Selected Prompt Level: {{promptLevel}}`

const refineStyleTemplate = `Selected Custom Refinement Styles: {{refinementStyle}}
Please incorporate these characteristics into your prompt suggestions. If multiple styles are listed (comma-separated), try to blend them harmoniously or apply them as relevant to each distinct suggestion you provide.`

// buildRefineUserPrompt renders the user-turn prompt for a resolved request,
// appending the style block only when facets were selected.
func buildRefineUserPrompt(req Request) (string, error) {
	body, err := render(refineUserTemplate, map[string]string{
		"instruction": req.Instruction,
		"promptLevel": string(req.Level),
	})
	if err != nil {
		return "", err
	}

	if req.StyleString == "" {
		return body, nil
	}

	styles, err := render(refineStyleTemplate, map[string]string{
		"refinementStyle": req.StyleString,
	})
	if err != nil {
		return "", err
	}
	return body + "\n" + styles, nil
}
