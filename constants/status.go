package constants

// Strategy selects the record extractor for a whole batch.
type Strategy string

const (
	StrategyRules Strategy = "rules" // keyword + pattern engine
	StrategyLLM   Strategy = "llm"   // generative model fallback
)

// Provider names accepted by LLM_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderVertex = "vertex"
)
