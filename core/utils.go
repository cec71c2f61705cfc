package core

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var slugSeparatorRegex = regexp.MustCompile(`[^a-z0-9]+`)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Slugify lowers `s`, collapses every run of non-alphanumeric characters into a single "-"
// and trims leading and trailing dashes: "Intro to Go!" -> "intro-to-go".
func Slugify(s string) string {
	slug := slugSeparatorRegex.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// Getwd tries to find the project root (the directory holding go.mod).
// go-test changes the working directory to the test package being run during tests,
// so walk up until we find it.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if fi, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil && !fi.IsDir() {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd // deployed binary: no sources around
		}
		currDir = newDir
	}
}
