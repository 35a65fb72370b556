package platform

// Package platform contains OS integration: the user's Downloads directory,
// revealing finished files in the file manager, and locating the final output file.
