// Package form holds the lesson-plan form state and the selection rules that
// guard it. State is owned by a single caller at a time: web handlers rebuild
// it per request, the terminal session keeps one for its lifetime. Nothing in
// this package persists data or talks to a UI directly; blocking notices go
// through the Notifier capability and printing through printdoc.Bridge.
package form
