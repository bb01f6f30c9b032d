// Package presentation renders the interactive page around the form: the
// central controls, the two decorative side columns and the blocking notice
// dialog. The high-contrast flag picks a go-theme variant that repaints the
// whole screen; it never reaches the printed document.
package presentation
