package jjx

import (
	"encoding/json"
	"strings"
	"unicode"
)

// ChangeTemplate is the jj template expression producing one JSON object per
// change. The tool's native per-change JSON lands under a "base" key with the
// fields json(self) omits appended alongside it.
const ChangeTemplate = `surround("{", "}", ` +
	`"\"base\":" ++ json(self)` +
	` ++ ",\"bookmarks\":" ++ json(bookmarks)` +
	` ++ ",\"local_bookmarks\":" ++ json(local_bookmarks)` +
	` ++ ",\"tags\":" ++ json(tags)` +
	` ++ ",\"empty\":" ++ json(empty)` +
	` ++ ",\"conflict\":" ++ json(conflict)` +
	` ++ ",\"hidden\":" ++ json(hidden)` +
	`)`

// Separator terminates each entry in multi-change template output.
const Separator = "<<JJ_SEP>>"

// ChangeListTemplate appends the separator after every emitted change.
const ChangeListTemplate = ChangeTemplate + ` ++ "` + Separator + `"`

const (
	bookmarkDeletedMarkerConstant  = "(deleted)"
	lineFieldSeparatorConstant     = ":"
	operationArgsPrefixConstant    = "args: "
	renameSeparatorConstant        = " => "
	renameBraceCutsetConstant      = "{}"
	descriptionJoinSeparatorConstant = "\n"
)

// ParseChanges parses jj log output produced with ChangeListTemplate. Empty
// or whitespace-only output yields an empty slice; a trailing separator
// produces no spurious entry.
func ParseChanges(commandOutput string) ([]Change, error) {
	trimmedOutput := strings.TrimSpace(commandOutput)
	if len(trimmedOutput) == 0 {
		return []Change{}, nil
	}

	var changes []Change
	for _, outputSegment := range strings.Split(trimmedOutput, Separator) {
		trimmedSegment := strings.TrimSpace(outputSegment)
		if len(trimmedSegment) == 0 {
			continue
		}
		change, parseError := ParseChange(trimmedSegment)
		if parseError != nil {
			return nil, parseError
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// ParseChange parses a single change emitted with ChangeTemplate.
func ParseChange(commandOutput string) (Change, error) {
	var payload map[string]any
	if decodeError := json.Unmarshal([]byte(strings.TrimSpace(commandOutput)), &payload); decodeError != nil {
		return Change{}, ParseError{Kind: changePayloadKindConstant, Cause: decodeError}
	}
	return DecodeChange(payload)
}

// ParseDiffSummary parses jj diff --summary output. Each non-blank line is a
// one-character status code followed by a path; a rename status carries a
// "{from => to}" path segment decomposed into both halves. Entry order
// matches the tool's emission order.
func ParseDiffSummary(commandOutput string) DiffSummary {
	var entries []DiffEntry
	for _, outputLine := range strings.Split(commandOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}

		entryStatus := DiffStatus(trimmedLine[:1])
		pathText := strings.TrimSpace(trimmedLine[1:])

		if entryStatus == DiffStatusRename && strings.Contains(pathText, renameSeparatorConstant) {
			strippedPathText := strings.Trim(pathText, renameBraceCutsetConstant)
			fromPath, toPath, _ := strings.Cut(strippedPathText, renameSeparatorConstant)
			entries = append(entries, DiffEntry{
				Status:   entryStatus,
				Path:     strings.TrimSpace(toPath),
				FromPath: strings.TrimSpace(fromPath),
			})
			continue
		}

		entries = append(entries, DiffEntry{Status: entryStatus, Path: pathText})
	}
	return DiffSummary{Entries: entries}
}

// ParseBookmarkList parses jj bookmark list output. The text before the
// first colon is the bookmark name; a "(deleted)" marker anywhere on the line
// clears Present; a name of the form name@remote records the remote as the
// tracking target.
func ParseBookmarkList(commandOutput string) []Bookmark {
	var bookmarks []Bookmark
	for _, outputLine := range strings.Split(commandOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}

		bookmarkName, _, _ := strings.Cut(trimmedLine, lineFieldSeparatorConstant)
		bookmarkName = strings.TrimSpace(bookmarkName)
		bookmarkPresent := !strings.Contains(trimmedLine, bookmarkDeletedMarkerConstant)

		trackingRemote := ""
		if strings.Contains(bookmarkName, remoteBookmarkSeparatorConstant) {
			bookmarkName, trackingRemote, _ = strings.Cut(bookmarkName, remoteBookmarkSeparatorConstant)
		}

		bookmarks = append(bookmarks, Bookmark{Name: bookmarkName, Present: bookmarkPresent, Tracking: trackingRemote})
	}
	return bookmarks
}

// ParseWorkspaceList parses jj workspace list output into workspace names.
func ParseWorkspaceList(commandOutput string) []string {
	var workspaceNames []string
	for _, outputLine := range strings.Split(commandOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}
		workspaceName, _, _ := strings.Cut(trimmedLine, lineFieldSeparatorConstant)
		workspaceNames = append(workspaceNames, strings.TrimSpace(workspaceName))
	}
	return workspaceNames
}

// ParseRemoteList parses jj git remote list output into a name-to-URL
// mapping. Lines with a single token map the name to an empty URL.
func ParseRemoteList(commandOutput string) map[string]string {
	remotes := map[string]string{}
	for _, outputLine := range strings.Split(commandOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}
		remoteName, remoteURL := nextToken(trimmedLine)
		remotes[remoteName] = remoteURL
	}
	return remotes
}

// ParseOperationLog parses jj operation log --no-graph output. Entries are
// blank-line-separated blocks; the first line of a block splits into
// identifier, user, and a time description that keeps its embedded spaces.
// Body lines join into the description, except a line with the literal
// "args: " prefix is diverted into Tags even when it reads as prose. Entry
// order matches the tool's emission order.
func ParseOperationLog(commandOutput string) []Operation {
	var operations []Operation
	for _, operationBlock := range splitBlocks(commandOutput) {
		operationIdentifier, userHost, timeDescription := splitOperationHeader(operationBlock[0])

		var descriptionLines []string
		operationTags := ""
		for _, bodyLine := range operationBlock[1:] {
			if strings.HasPrefix(bodyLine, operationArgsPrefixConstant) {
				operationTags = strings.TrimPrefix(bodyLine, operationArgsPrefixConstant)
				continue
			}
			descriptionLines = append(descriptionLines, bodyLine)
		}

		operations = append(operations, Operation{
			ID:          operationIdentifier,
			Description: strings.Join(descriptionLines, descriptionJoinSeparatorConstant),
			Time:        timeDescription,
			User:        userHost,
			Tags:        operationTags,
		})
	}
	return operations
}

// splitBlocks groups consecutive non-blank lines into blocks.
func splitBlocks(commandOutput string) [][]string {
	var blocks [][]string
	var currentBlock []string
	for _, outputLine := range strings.Split(commandOutput, "\n") {
		if len(strings.TrimSpace(outputLine)) == 0 {
			if len(currentBlock) > 0 {
				blocks = append(blocks, currentBlock)
				currentBlock = nil
			}
			continue
		}
		currentBlock = append(currentBlock, outputLine)
	}
	if len(currentBlock) > 0 {
		blocks = append(blocks, currentBlock)
	}
	return blocks
}

// splitOperationHeader splits a header line into at most three tokens; the
// third keeps whatever whitespace it contains internally.
func splitOperationHeader(headerLine string) (string, string, string) {
	operationIdentifier, remainderText := nextToken(headerLine)
	userHost, timeDescription := nextToken(remainderText)
	return operationIdentifier, userHost, timeDescription
}

func nextToken(text string) (string, string) {
	trimmedText := strings.TrimFunc(text, unicode.IsSpace)
	tokenBoundary := strings.IndexFunc(trimmedText, unicode.IsSpace)
	if tokenBoundary < 0 {
		return trimmedText, ""
	}
	return trimmedText[:tokenBoundary], strings.TrimLeftFunc(trimmedText[tokenBoundary:], unicode.IsSpace)
}
