package generator

import (
	"fmt"

	"SeoContentEngine/internal/domain"
)

// SystemPrompt instructs the model to emit a single draft JSON object using
// the product's localized field names.
const SystemPrompt = `You are an SEO optimization expert. Follow these steps to generate SEO content:

1. Analyze the target keyword carefully
2. Generate a compelling title (10-70 characters)
3. Create an engaging meta description (50-160 characters)
4. Write the main body with natural keyword usage
5. Format the output as a SINGLE JSON object with fields "标题", "meta描述", "正文"
6. ONLY return the JSON object, no other text

Remember: Do not include any explanations, only output the JSON object.`

const articlePromptTemplate = `Generate an SEO-optimized article for the keyword "%s".

Required format:
{
    "标题": "...",
    "meta描述": "...",
    "正文": "..."
}

Think step by step:
1. What makes a good SEO title for this topic?
2. What meta description would drive clicks?
3. What article body reads naturally while using the keyword?

Now generate ONLY the JSON object.`

const productPromptTemplate = `Generate an SEO-optimized product description for the keyword "%s".

Required format:
{
    "标题": "...",
    "meta描述": "...",
    "正文": "..."
}

Think step by step:
1. What product title converts searchers into buyers?
2. What meta description would drive clicks?
3. What description highlights benefits while using the keyword?

Now generate ONLY the JSON object.`

// UserPrompt renders the per-content-type generation request.
func UserPrompt(keyword string, contentType domain.ContentType) string {
	if contentType == domain.ContentTypeProduct {
		return fmt.Sprintf(productPromptTemplate, keyword)
	}
	return fmt.Sprintf(articlePromptTemplate, keyword)
}
