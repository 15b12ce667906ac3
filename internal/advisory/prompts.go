package advisory

import (
	"fmt"
	"strings"

	"github.com/Hasan-Creations/MobiSwap/pkg/llm"
)

const (
	valuationPromptName      = "estimateValuePrompt"
	recommendationPromptName = "recommendPhonePrompt"

	notSpecified = "Not specified"
)

const valuationTemplate = `You are an expert mobile phone valuator for MobiSwap in Pakistan. Your task is to provide a fair market value estimate in Pakistani Rupees (PKR) for a used device based on the details provided.

Consider the following factors:
- The phone's model and its typical market depreciation.
- The condition of the device. 'Like New' holds the most value, while 'Needs Repair' significantly lowers it.
- Any specific issues described, such as a cracked screen, battery problems, or other damage. These will lower the value.
- Storage capacity can slightly influence the price.

Provide a realistic low and high-end estimate for the device's value. Also, provide a short, one-sentence explanation for your valuation, mentioning the key factors that influenced the price.

Device Details:
- Model: %s
- Condition: %s
- Storage: %s
- Described Issues: %s

Generate the valuation and explanation.
`

const recommendationTemplate = `You are an expert mobile phone salesman at MobiSwap in Pakistan.
A customer has a request. Your goal is to recommend up to 3 phones from the available list that best fit the customer's needs.
Analyze the user's query and compare it against the provided list of products.
Consider all aspects of the query: price (in PKR), features (like camera quality, battery life, durability), intended use (like gaming, hiking, photography), and brand preferences.
Return only an array of the product IDs for your top recommendations. Do not return more than 3 IDs.

Customer Query: %s

Available Products (JSON format with prices in PKR):
%s
`

func valuationPrompt(req ValuationRequest) llm.Prompt {
	return llm.Prompt{
		Name: valuationPromptName,
		Text: fmt.Sprintf(valuationTemplate,
			req.Model,
			req.Condition,
			optional(req.Storage),
			optional(req.Issues),
		),
		Schema: valuationSchema,
	}
}

func recommendationPrompt(query string, productsJSON []byte) llm.Prompt {
	return llm.Prompt{
		Name:   recommendationPromptName,
		Text:   fmt.Sprintf(recommendationTemplate, query, productsJSON),
		Schema: recommendationSchema,
	}
}

func optional(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return notSpecified
	}
	return strings.TrimSpace(*v)
}

var valuationSchema = &llm.Schema{
	Type:     llm.TypeObject,
	Required: []string{"estimatedValueLow", "estimatedValueHigh", "explanation"},
	Properties: map[string]*llm.Schema{
		"estimatedValueLow": {
			Type:        llm.TypeNumber,
			Description: "The lower end of the estimated value range in PKR.",
		},
		"estimatedValueHigh": {
			Type:        llm.TypeNumber,
			Description: "The higher end of the estimated value range in PKR.",
		},
		"explanation": {
			Type:        llm.TypeString,
			Description: "A brief explanation of the valuation, mentioning factors considered.",
		},
	},
}

var recommendationSchema = &llm.Schema{
	Type:     llm.TypeObject,
	Required: []string{"recommendations"},
	Properties: map[string]*llm.Schema{
		"recommendations": {
			Type:        llm.TypeArray,
			Description: "An array of product IDs that best match the user's query. Should contain at most 3 IDs.",
			Items:       &llm.Schema{Type: llm.TypeString},
			MaxItems:    llm.Int64(maxRecommendations),
		},
	},
}
