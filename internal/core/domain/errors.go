package domain

import "go.trai.ch/zerr"

var (
	// ErrVersionNotFound is returned when the runtime registry does not know the requested version id.
	ErrVersionNotFound = zerr.New("runtime version not found")

	// ErrLoaderIncompatible is returned when no loader version satisfies the requested runtime version.
	ErrLoaderIncompatible = zerr.New("loader version incompatible with runtime version")

	// ErrManifestParse is returned when a remote registry document cannot be decoded.
	ErrManifestParse = zerr.New("failed to parse registry manifest")

	// ErrRegistryUnavailable is returned when a registry cannot be reached after retries.
	ErrRegistryUnavailable = zerr.New("registry unavailable")

	// ErrModNotFound is returned when the mod registry has no project for the requested slug.
	ErrModNotFound = zerr.New("mod not found in registry")

	// ErrNoCompatibleVersion is returned when a mod exists but no version satisfies the active runtime and loader.
	ErrNoCompatibleVersion = zerr.New("no mod version compatible with runtime and loader")

	// ErrDependencyConflict is returned when two resolution paths demand incompatible versions of the same mod.
	ErrDependencyConflict = zerr.New("conflicting version requirements for mod")

	// ErrDependencyCycle is returned when the mod dependency graph contains a cycle.
	ErrDependencyCycle = zerr.New("dependency cycle detected")

	// ErrDuplicateModDeclared is returned when a manifest declares the same mod twice.
	ErrDuplicateModDeclared = zerr.New("mod declared more than once in manifest")

	// ErrModAlreadyDeclared is returned when adding a mod that the manifest already declares.
	ErrModAlreadyDeclared = zerr.New("mod already declared in manifest")

	// ErrModNotDeclared is returned when removing a mod that the manifest does not declare.
	ErrModNotDeclared = zerr.New("mod not declared in manifest")

	// ErrUnknownMirror is returned when the manifest names a mirror that is not configured.
	ErrUnknownMirror = zerr.New("unknown download mirror")

	// ErrDownloadFailed is returned when an artifact cannot be fetched from any of its sources.
	ErrDownloadFailed = zerr.New("download failed on all sources")

	// ErrIntegrity is returned when downloaded bytes do not match the expected content hash.
	ErrIntegrity = zerr.New("content hash mismatch")

	// ErrTransientNetwork marks a fetch failure that is safe to retry (timeout, 5xx, reset).
	ErrTransientNetwork = zerr.New("transient network failure")

	// ErrUnexpectedLocalModification is returned when an on-disk file no longer matches its locked hash.
	ErrUnexpectedLocalModification = zerr.New("file modified outside of mcpack")

	// ErrFilesystem is returned when an instance file operation fails.
	ErrFilesystem = zerr.New("filesystem operation failed")

	// ErrStaleLock is returned when the lock fingerprint no longer matches the manifest.
	ErrStaleLock = zerr.New("lock is stale, re-resolution required")

	// ErrCorruptLock is returned when the lock file cannot be decoded or fails validation.
	ErrCorruptLock = zerr.New("lock file is corrupt")

	// ErrManifestNotFound is returned when the instance has no declared manifest file.
	ErrManifestNotFound = zerr.New("could not find mcpack manifest")

	// ErrLockNotFound is returned when an operation requires a committed lock and none exists.
	ErrLockNotFound = zerr.New("no committed lock for instance")

	// ErrCacheMiss is returned when a blob is not present in the content store.
	ErrCacheMiss = zerr.New("blob not found in content store")

	// ErrMaterializeIncomplete is returned when a reconciliation pass could not apply every file change.
	ErrMaterializeIncomplete = zerr.New("materialization incomplete")
)
