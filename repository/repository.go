// Package repository locates the git worktree po2json works in.
package repository

import (
	"os"
	"path/filepath"

	"github.com/jiangxin/goconfig"
	log "github.com/sirupsen/logrus"
)

// Repository holds repository and error.
type Repository struct {
	repository *goconfig.Repository
	error      error
}

var theRepository Repository

// Open will try to find repository in dir.
func (v *Repository) Open(dir string) error {
	v.repository, v.error = goconfig.FindRepository(dir)
	return v.error
}

// OpenRepository will try to find repository in dir. Not being inside a
// repository is fine: paths are then resolved against the current directory.
func OpenRepository(dir string) {
	if err := theRepository.Open(dir); err != nil {
		log.Debugf("not in a git repository: %s", err)
	}
}

// Opened returns true if a repository was successfully opened.
func Opened() bool {
	return theRepository.error == nil && theRepository.repository != nil
}

// Err returns the error from the last OpenRepository call, or nil if open succeeded.
func Err() error {
	return theRepository.error
}

// WorkDirOrCwd returns root dir of the worktree when a repository is opened,
// otherwise the current working directory.
func WorkDirOrCwd() string {
	if Opened() {
		return theRepository.repository.WorkDir()
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Resolve returns path relative to WorkDirOrCwd, unless it is absolute.
func Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(WorkDirOrCwd(), path)
}
