// Package pipeline runs the content analysis of a dataset.
//
// Each content field is analyzed by its own Pipeline: an ordered list of
// steps (rollup, flat summary, pagetype summary, drilldown, n-grams) that
// each fill one part of a model.AnalysisResult. The Orchestrator runs the
// pipelines of the requested fields concurrently using errgroup, isolates
// their failures and collects everything into a model.RunResult.
//
// The dataset is never modified; steps only read it.
package pipeline
