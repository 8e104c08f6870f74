// Package react implements the tool-calling agent loop. The model alternates
// between requesting tools and reasoning over their results until it produces
// a final answer.
//
// The entry point is [New], which binds an [ai.Provider] to a [tool.Registry].
// [Agent.Execute] runs the loop for one prompt. Behavior can be tuned with
// [WithMaxIterations], [WithStopOnError], [WithSystemPrompt] and
// [WithObserver].
//
// The agent is stateless between calls: every Execute starts a fresh
// conversation, so one Agent can serve concurrent requests.
package react
