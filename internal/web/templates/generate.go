// Package templates holds the templ sources for the spectator pages.
// Run go generate after editing a .templ file.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ generate -path .
