package model

// Package model defines the small domain structures shared by the frontends,
// the session controller and the youtube-dl boundary: the transient download
// request, format choices, lifecycle status and parsed progress.
