package lite

// Package lite is the lightweight immediate-mode window built on giu.
// It shares the session controller with the Fyne window and redraws from
// a mutex-guarded snapshot of the state the controller pushes to it.
