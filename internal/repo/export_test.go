package repo

// SetBeforeRename installs a hook that runs between writing the temporary
// file and renaming it into place. Only available to tests.
func SetBeforeRename(r DocumentRepo, fn func(tmpPath string) error) {
	r.(*fileDocumentRepo).beforeRename = fn
}
