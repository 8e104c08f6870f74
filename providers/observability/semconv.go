package observability

// Attribute keys, span names, event names and metric names shared by the
// agent, the tools and the HTTP layer.

// --- LLM ---

const (
	AttrLLMProvider     = "llm.provider"
	AttrLLMModel        = "llm.model"
	AttrLLMEndpoint     = "llm.endpoint"
	AttrLLMResponseID   = "llm.response.id"
	AttrLLMFinishReason = "llm.finish_reason"
	AttrLLMTemperature  = "llm.temperature"

	AttrLLMTokensPrompt     = "llm.tokens.prompt"     // #nosec G101 -- LLM tokens, not credentials
	AttrLLMTokensCompletion = "llm.tokens.completion" // #nosec G101 -- LLM tokens, not credentials
	AttrLLMTokensTotal      = "llm.tokens.total"      // #nosec G101 -- LLM tokens, not credentials
)

// --- Tools ---

const (
	AttrToolName     = "tool.name"
	AttrToolInput    = "tool.input"
	AttrToolOutput   = "tool.output"
	AttrToolDuration = "tool.duration"
	AttrToolError    = "tool.error"
)

// --- Scraping ---

const (
	// AttrScrapeURL is the URL handed to the fetcher.
	AttrScrapeURL = "scrape.url"
	// AttrScrapeStatusCode is recorded for diagnostics only; it never changes the result.
	AttrScrapeStatusCode = "scrape.status_code"
	AttrScrapeBodySize   = "scrape.body.size"
	AttrScrapeTextSize   = "scrape.text.size"
	AttrScrapeTruncated  = "scrape.truncated"
	AttrScrapeFormat     = "scrape.format"
)

// --- Code search ---

const (
	AttrSearchQuery        = "search.query"
	AttrSearchEngine       = "search.engine"
	AttrSearchResultsCount = "search.results.count"
	AttrCodeCandidates     = "code.candidates"
	AttrCodeSnippetsCount  = "code.snippets.count"
)

// --- Agent ---

const (
	AttrAgentPrompt     = "agent.prompt"
	AttrAgentIteration  = "agent.iteration"
	AttrAgentToolsCount = "agent.tools_count"
	AttrAgentToolCalls  = "agent.tool_calls"
)

// --- HTTP ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPRoute            = "http.route"
	AttrHTTPURL              = "http.url"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPRequestID        = "http.request_id"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- General ---

const (
	AttrComponent         = "component"
	AttrError             = "error"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span names ---

const (
	SpanAgentExecute  = "agent.execute"
	SpanLLMRequest    = "llm.request"
	SpanToolExecution = "tool.execution"
	SpanHTTPRequest   = "http.request"
	SpanSearchRequest = "search.request"
	SpanCodeFind      = "code.find"
)

// --- Event names ---

const (
	EventLLMRequestStart    = "llm.request.start"
	EventLLMRequestEnd      = "llm.request.end"
	EventToolExecutionStart = "tool.execution.start"
	EventToolExecutionEnd   = "tool.execution.end"
	EventPageFetched        = "scrape.page.fetched"
	EventContentExtracted   = "scrape.content.extracted"
	EventSearchCompleted    = "search.completed"
	EventCodeCandidateTried = "code.candidate.tried"
)

// --- Metric names ---

const (
	MetricAgentRequestCount    = "agent.request.count"
	MetricAgentRequestDuration = "agent.request.duration"
	MetricAgentToolCallCount   = "agent.tool_call.count"
	MetricAgentTokensTotal     = "agent.tokens.total"
	MetricHTTPRequestCount     = "http.request.count"
)
