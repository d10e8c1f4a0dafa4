// Package workspaceindex implements component I, the Workspace Index: a
// background enumeration of *.R/*.r files under workspace roots so that
// files which are not currently open in the editor still have metadata
// and artifacts available to the scope resolver.
//
// An Index enumerates the filesystem, filters entries through a gitignore-
// style Matcher and a configurable exclude list, and computes metadata
// plus artifacts for each surviving file through a bounded, deduplicating
// queue. It exposes a monotonically increasing Version that advances
// whenever a file enters or leaves the index, and it implements
// scope.ArtifactsLoader directly so a Resolver can be handed an Index for
// files outside the open-document set.
package workspaceindex
