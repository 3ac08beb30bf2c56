// Package changelog derives a Markdown changelog from git history.
//
// Release tags are ordered by semantic version and paired into ranges. For
// every range, newest first, the commits are parsed as conventional commits
// and the "fix" and "feat" commits are listed under a heading that links to
// the range's diff on GitHub.
package changelog
