package recipe

import (
	"fmt"
	"strings"
)

// systemRules 固定的生成規則
const systemRules = "You are a careful dietician and chef. " +
	"Return STRICT JSON ONLY with keys: " +
	"title (string), cuisine (string), ingredients (array of strings), " +
	"instructions (array of strings), macros (object with numbers: calories, protein, carbs, fat). " +
	"No prose, no extra keys, no code blocks, no markdown. " +
	"Write instructions as a SHORT, NUMBERED, STEP-BY-STEP LIST (5–8 steps), " +
	"one action per step (<= 180 chars each), food-safe (no raw eggs). " +
	"Each step MUST start with a verb and include a concrete time OR temperature when applicable. " +
	"Forbidden phrases: 'to taste', 'cook to taste', 'prep ingredients', 'serve'."

const schemaHint = `If generating multiple, return JSON with key "recipes" as an array of those objects. ` +
	`Example (single): ` +
	`{"title":"<title>","cuisine":"<cuisine>",` +
	`"ingredients":["..."],` +
	`"instructions":["1. step","2. step","3. step","4. step","5. step"],` +
	`"macros":{"calories":<num>,"protein":<num>,"carbs":<num>,"fat":<num>}}`

// cuisineRetryNotice 菜系不符時附加在原 prompt 後
const cuisineRetryNotice = "\nYou DID NOT follow the cuisine rule. Regenerate. " +
	"The 'cuisine' field MUST be exactly the requested cuisine, " +
	"and each 'title' MUST include that cuisine keyword."

// BuildPrompt 組出生成 prompt
func BuildPrompt(ingredients []string, cuisine string, calorieCap *int, n int) string {
	cuisineRule := "If a cuisine is not specified, pick an appropriate cuisine and set the cuisine field accordingly."
	if cuisine != "" {
		cuisineRule = fmt.Sprintf(
			"CUISINE HARD RULE: The recipe MUST be %s cuisine. Title MUST include '%s'. Use common %s flavors/techniques.",
			cuisine, cuisine, cuisine,
		)
	}

	calRule := "Set macros to a reasonable estimate."
	if calorieCap != nil && *calorieCap > 0 {
		calRule = fmt.Sprintf("Keep total calories <= %d if possible; otherwise stay close.", *calorieCap)
	}

	var sb strings.Builder
	sb.WriteString(systemRules)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Generate exactly %d recipe(s).\n", n))
	sb.WriteString(cuisineRule)
	sb.WriteString("\n")
	sb.WriteString(calRule)
	sb.WriteString("\n")
	sb.WriteString("Ingredients available: ")
	sb.WriteString(strings.Join(ingredients, ", "))
	sb.WriteString("\n")
	sb.WriteString(schemaHint)
	return sb.String()
}

// BuildRetryPrompt 菜系重試用的 prompt
func BuildRetryPrompt(base string) string {
	return base + cuisineRetryNotice
}
