// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/viktori/matteray/pkg/buildinfo.Release=true \
//	    -X github.com/viktori/matteray/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/viktori/matteray/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Builds without Release=true are snapshots and report "0.1-SNAPSHOT".
package buildinfo

import (
	"fmt"
	"strings"
)

const (
	// Group is the publishing group of the library.
	Group = "org.viktori"

	// Title is the implementation title recorded in the manifest.
	Title = "matteray"

	// BaseVersion is the version without the snapshot suffix.
	BaseVersion = "0.1"
)

var (
	// Release marks a release build. Any value other than "true" is a snapshot.
	// Set via ldflags: -X github.com/viktori/matteray/pkg/buildinfo.Release=true
	Release = "false"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/viktori/matteray/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/viktori/matteray/pkg/buildinfo.Date=...
	Date = "unknown"
)

// IsRelease reports whether this is a release build.
func IsRelease() bool {
	return strings.EqualFold(strings.TrimSpace(Release), "true")
}

// Version returns BaseVersion for releases and BaseVersion-SNAPSHOT otherwise.
func Version() string {
	if IsRelease() {
		return BaseVersion
	}
	return BaseVersion + "-SNAPSHOT"
}

// Attribute is a single manifest entry.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Manifest returns the implementation attributes in their canonical order.
func Manifest() []Attribute {
	return []Attribute{
		{Name: "Implementation-Title", Value: Title},
		{Name: "Implementation-Version", Value: Version()},
	}
}

// License names a distribution license.
type License struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Developer identifies a project maintainer.
type Developer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectInfo is the descriptive metadata published with the library.
type ProjectInfo struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	URL          string      `json:"url"`
	Licenses     []License   `json:"licenses"`
	Developers   []Developer `json:"developers"`
	SCM          string      `json:"scm"`
	IssueTracker string      `json:"issue_tracker"`
}

// Project describes matteray.
var Project = ProjectInfo{
	Name:        Title,
	Description: "A light-weight library for working with safe arrays and matrices",
	URL:         "https://github.com/viktori/matteray",
	Licenses: []License{{
		Name: "The Apache License, Version 2.0",
		URL:  "https://www.apache.org/licenses/LICENSE-2.0.txt",
	}},
	Developers: []Developer{{
		ID:   "viktori",
		Name: "viktori",
	}},
	SCM:          "https://github.com/viktori/matteray.git",
	IssueTracker: "https://github.com/viktori/matteray/issues",
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version(), Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version(), Commit, Date)
}
