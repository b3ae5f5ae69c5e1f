// Package binder turns parts of an HTTP request into struct values for
// handler.Wrap. JSON decodes strict JSON bodies and Path reads router path
// parameters through an extractor such as chi.URLParam.
package binder
