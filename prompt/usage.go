package prompt

// Usage holds token counts reported by the provider. Counts the provider does not
// report are zero; Total falls back to Input+Output.
type Usage struct {
	Input       int
	Output      int
	Total       int
	CachedInput int
	Reasoning   int
}

// Provider key names, in lookup order.
var (
	inputKeys     = []string{"PromptTokens", "InputTokens", "input_tokens"}
	outputKeys    = []string{"CompletionTokens", "OutputTokens", "output_tokens"}
	totalKeys     = []string{"TotalTokens", "total_tokens"}
	cachedKeys    = []string{"PromptCachedTokens", "CacheReadInputTokens", "CachedTokens"}
	reasoningKeys = []string{"ReasoningTokens", "CompletionReasoningTokens", "ThinkingTokens"}
)

func usageOf(info map[string]any) Usage {
	if info == nil {
		return Usage{}
	}
	u := Usage{
		Input:       firstInt(info, inputKeys),
		Output:      firstInt(info, outputKeys),
		CachedInput: firstInt(info, cachedKeys),
		Reasoning:   firstInt(info, reasoningKeys),
	}
	u.Total = firstInt(info, totalKeys)
	if u.Total == 0 {
		u.Total = u.Input + u.Output
	}
	return u
}

// firstInt returns the first positive count among keys.
func firstInt(info map[string]any, keys []string) int {
	for _, key := range keys {
		if v := intValue(info[key]); v > 0 {
			return v
		}
	}
	return 0
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}
