package pets

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"petstore-catalog/internal/ports/llm"
)

const FilterToolName = "filter_pets"

// FilterTool es la única tool que se le ofrece al modelo.
func FilterTool() llm.ToolSpec {
	sortEnum := make([]any, 0, len(SortKeys))
	for _, k := range SortKeys {
		sortEnum = append(sortEnum, string(k))
	}

	return llm.ToolSpec{
		Name:        FilterToolName,
		Description: "Filter and sort pets based on user criteria",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"type_filter": {
					Type:        "string",
					Description: "Pet type to filter (dog, cat, bird, etc). Empty for all types.",
				},
				"sort_by": {
					Type:        "string",
					Enum:        sortEnum,
					Description: "How to sort results",
				},
				"max_price": {
					Type:        "integer",
					Description: "Maximum price filter",
				},
				"min_price": {
					Type:        "integer",
					Description: "Minimum price filter",
				},
			},
		},
	}
}

func queryPrompt(text string) string {
	return fmt.Sprintf("User query: %s\n\nAnalyze this query and call the %s tool with appropriate parameters.", text, FilterToolName)
}
