// Package ui provides terminal formatting, prompting, the banner and clipboard access.
//
// Colour follows fatih/color detection and honours NO_COLOR.
package ui
