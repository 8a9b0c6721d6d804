package engine

import (
	"fmt"
	"strings"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/model"
)

// CombinedSummaryMarker 对比结果中唯一的总结段落标记
const CombinedSummaryMarker = "Combined Summary:"

const analystSystemPrompt = "You are an expert business consultant who never guesses and only works with given data."

const extractorSystemPrompt = "You extract company names from text. Reply with the name only."

func sectionList() string {
	var sb strings.Builder
	for i, title := range model.SectionTitles {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
	}
	return sb.String()
}

func analyzePrompt(chunk string) string {
	return fmt.Sprintf(`You are a strategic business analyst. The following text may be in Hebrew or English.
Regardless of the input language, produce the analysis in English.

Important rules:
- Base your analysis only on the information provided.
- Do not guess or assume.
- If information is missing, write: "%s".

Provide the competitive analysis with exactly these numbered sections, in this order, each on its own heading line:
%s
Text:
%s
`, model.NotSpecified, sectionList(), chunk)
}

func mergePrompt(partials string) string {
	return fmt.Sprintf(`Here are several partial competitive analyses of the same company, separated by "---".

Merge them into one complete competitive analysis with exactly these numbered sections, in this order:
%s
Rules:
- Base the final analysis only on the provided partial analyses.
- Combine facts that describe the same attribute instead of repeating them.
- If a section is missing info, write: "%s".
- Do not guess beyond provided content.

Partial Analyses:
%s
`, sectionList(), model.NotSpecified, partials)
}

func extractPrompt(text string) string {
	return fmt.Sprintf(`Identify the primary company this text is about.

Rules:
- Return only the company name, nothing else.
- Ignore the website or publisher that hosts the article.
- Do not include a location or a legal-entity suffix (Ltd, Inc, LLC, בע"מ).
- If the name is not in English, translate or transliterate it to English.
- Write the name with normal spacing between words.

Text:
%s
`, text)
}

func summaryPrompt(analysis string) string {
	return "Summarize the following competitive analysis into one concise paragraph:\n\n" + analysis
}

func comparePrompt(nameA, analysisA, nameB, analysisB string) string {
	return fmt.Sprintf(`Compare these two companies based only on their analyses:

Company 1 (%s):
%s

Company 2 (%s):
%s

Focus on:
1. Target Market
2. Strengths
3. Weaknesses
4. Main Services or Products

Finish with exactly one paragraph that starts with "%s" and covers both companies together.
Do not write a separate summary for each company.
`, nameA, analysisA, nameB, analysisB, CombinedSummaryMarker)
}
