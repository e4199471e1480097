package agents

import (
	"fmt"
	"strings"

	"drinkingman/internal/models"
)

// InventoryConstraint returns the exclusion instruction for blacklist, or ""
// when nothing is out of stock
func InventoryConstraint(blacklist []string) string {
	names := make([]string, 0, len(blacklist))
	for _, name := range blacklist {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return fmt.Sprintf("IMPORTANT: You represent a specific BAR. The following ingredients are OUT OF STOCK: %s. "+
		"Do NOT suggest a drink that requires these ingredients. "+
		"If a requested drink typically needs them, suggest a creative substitution or a different drink entirely.",
		strings.Join(names, ", "))
}

// RecommendationPrompt builds the DrinkingMan request for a personalised drink
func RecommendationPrompt(prefs models.Preferences, locale models.Locale, blacklist []string) string {
	language := locale.Language()

	exampleIngredients := `["2 oz Spirit", "1 oz Mixer"]`
	if locale.Metric() {
		exampleIngredients = `["60 ml Spirit", "30 ml Mixer"]`
	}

	var b strings.Builder
	b.WriteString(`Act as "DrinkingMan", a sophisticated, witty, and knowledgeable cocktail expert.` + "\n")
	b.WriteString("User preferences:\n")
	fmt.Fprintf(&b, "- Base Spirit: %s\n", prefs.BaseSpirit)
	fmt.Fprintf(&b, "- Flavors: %s\n", strings.Join(prefs.FlavorTags, ", "))
	fmt.Fprintf(&b, "- Occasion: %s\n", prefs.Occasion)
	fmt.Fprintf(&b, "- Mood: %s\n", prefs.Mood)
	fmt.Fprintf(&b, "- Language: %s\n\n", language)

	if constraint := InventoryConstraint(blacklist); constraint != "" {
		b.WriteString(constraint + "\n\n")
	}

	b.WriteString("Create a unique cocktail recipe based on these preferences.\n")
	b.WriteString("Return ONLY a JSON object with this structure:\n")
	b.WriteString("{\n")
	b.WriteString(`  "name": "Cocktail Name (plain text, no markdown)",` + "\n")
	b.WriteString(`  "description": "A sophisticated description of the drink, in the voice of DrinkingMan.",` + "\n")
	fmt.Fprintf(&b, "  \"ingredients\": %s,\n", exampleIngredients)
	b.WriteString(`  "instructions": "Step-by-step mixing instructions.",` + "\n")
	b.WriteString(`  "whyItFits": "Why this drink matches the user's mood and occasion.",` + "\n")
	b.WriteString(`  "history": "A fictional or real historical anecdote about the drink or its ingredients.",` + "\n")
	b.WriteString(`  "funFact": "An interesting fact related to the drink.",` + "\n")
	b.WriteString(`  "visualMatch": "A short search term to find a picture of a similar drink (e.g. 'Blue Lagoon cocktail')"` + "\n")
	b.WriteString("}\n\n")

	b.WriteString("IMPORTANT:\n")
	fmt.Fprintf(&b, "- Write the \"description\", \"whyItFits\", \"history\", \"funFact\" and \"instructions\" content strictly in %s.\n", language)
	fmt.Fprintf(&b, "- The \"ingredients\" list must be in %s.\n", language)
	if locale.Metric() {
		b.WriteString("- ALL measurements in \"ingredients\" MUST be in MILLILITERS (ml). Do not use oz.\n")
		b.WriteString("- The \"name\" may be translated if appropriate, but do NOT add markdown like *bold*.\n")
	}
	b.WriteString("\nDo not include markdown formatting code blocks. Just raw JSON.\n")
	return b.String()
}

// EnrichmentPrompt asks for the creative fields of an existing cocktail.
// Keys stay in English while values use the locale language.
func EnrichmentPrompt(name string, ingredients []string, locale models.Locale) string {
	language := locale.Language()

	var b strings.Builder
	b.WriteString("You are DrinkingMan, the sophisticated robot butler mixologist.\n\n")
	fmt.Fprintf(&b, "Provide your signature entertaining details for the cocktail: %q (Ingredients: %s).\n\n", name, strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "Respond strictly in %s.\n\n", language)
	fmt.Fprintf(&b, "Respond in JSON format with the following structure (keys must stay in English, values in %s):\n", language)
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  \"name\": %q,\n", name)
	b.WriteString(`  "description": "A sensory, inviting description of the taste and experience.",` + "\n")
	b.WriteString(`  "ingredients": [],` + "\n")
	b.WriteString(`  "instructions": "",` + "\n")
	b.WriteString(`  "whyItFits": "Explain why this drink is a classic or a great choice in general.",` + "\n")
	b.WriteString(`  "joke": "A dad joke about this drink. - DrinkingMan",` + "\n")
	b.WriteString(`  "funFact": "An interesting historical fact or trivia about this specific cocktail.",` + "\n")
	b.WriteString(`  "history": "The origin story of this cocktail.",` + "\n")
	b.WriteString(`  "visualMatch": ""` + "\n")
	b.WriteString("}\n\n")
	b.WriteString("Leave ingredients, instructions and visualMatch empty since they are already known. ")
	b.WriteString("Focus on description, whyItFits, joke, funFact and history.\n\n")
	b.WriteString("Do not include markdown formatting. Just raw JSON.\n")
	return b.String()
}

// DescriptionPrompt asks for a short atmospheric passage about a cocktail
func DescriptionPrompt(name string, ingredients []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Describe the cocktail %q (Ingredients: %s) as a mysterious, atmospheric and poetic passage in the style of a horror novelist.\n", name, strings.Join(ingredients, ", "))
	b.WriteString("Focus on the sensory experience: the color, the chill, the bite of the alcohol.\n")
	b.WriteString("Make it captivating and slightly eerie, like a secret whispered in a dimly lit bar.\n")
	b.WriteString("Keep it strictly under 100 words.\n")
	b.WriteString("Do not name any author or say \"Here is a description\". Just write the text.\n")
	return b.String()
}
