package download

// Package download is the boundary to the external downloader (youtube-dl or
// yt-dlp). It assembles the argument vector from a request, runs the tool as
// a subprocess, classifies its output lines into progress events and turns a
// non-zero exit into an error carrying the tool's stderr.
