package ui

// Package ui contains the Fyne-based desktop window. It renders the download
// form, relays user input to the session controller and shows status,
// progress and log output. All UI strings are localized via i18n.
