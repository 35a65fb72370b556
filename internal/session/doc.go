package session

// Package session is the toolkit-independent controller behind both windows
// and the headless get command. It validates the form, runs one download at
// a time and reports status, progress and log lines to a View.
