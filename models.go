package jjx

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

const (
	basePayloadKeyConstant           = "base"
	namedEntityNameKeyConstant       = "name"
	changePayloadKindConstant        = "change"
	timestampParseFailureTemplate    = "unrecognized timestamp %q"
	naiveTimestampLayoutConstant     = "2006-01-02T15:04:05.999999999"
	spacedNaiveTimestampLayout       = "2006-01-02 15:04:05.999999999"
)

// Signature identifies the author or committer of a change.
type Signature struct {
	Name      string    `mapstructure:"name"`
	Email     string    `mapstructure:"email"`
	Timestamp time.Time `mapstructure:"timestamp"`
}

// Change is one jj change (commit) with its metadata. Instances are built
// fresh on every query and never mutated; two instances with the same
// ChangeID may reflect different historical states of the repository.
type Change struct {
	ChangeID       string
	CommitID       string
	Parents        []string
	Description    string
	Author         Signature
	Committer      Signature
	Bookmarks      []string
	LocalBookmarks []string
	Tags           []string
	Empty          bool
	Conflict       bool
	Hidden         bool
}

// DiffStatus is the single-character status code of a diff entry.
type DiffStatus string

// Diff entry status codes as emitted by jj diff --summary.
const (
	DiffStatusModify DiffStatus = DiffStatus("M")
	DiffStatusAdd    DiffStatus = DiffStatus("A")
	DiffStatusDelete DiffStatus = DiffStatus("D")
	DiffStatusRename DiffStatus = DiffStatus("R")
)

// DiffEntry is a single file entry in a diff summary. FromPath is populated
// only for renames.
type DiffEntry struct {
	Status   DiffStatus
	Path     string
	FromPath string
}

// DiffSummary holds diff entries in the tool's emission order.
type DiffSummary struct {
	Entries []DiffEntry
}

// Bookmark is a named movable pointer to a change. Present is false when jj
// reports the bookmark as deleted but not yet fully removed. Tracking names
// the remote for remote-tracking entries, empty otherwise.
type Bookmark struct {
	Name     string
	Present  bool
	Tracking string
}

// Operation is one jj operation log entry. Tags holds the invoking command's
// argument string when the log reports one.
type Operation struct {
	ID          string
	Description string
	Time        string
	User        string
	Tags        string
}

// Status combines the working copy change and its diff summary. The two
// halves come from independent queries with no transactional guarantee
// between them; concurrent repository mutation can make them inconsistent.
type Status struct {
	WorkingCopy Change
	Diff        DiffSummary
}

type changeCorePayload struct {
	ChangeID    string    `mapstructure:"change_id"`
	CommitID    string    `mapstructure:"commit_id"`
	Parents     []string  `mapstructure:"parents"`
	Description string    `mapstructure:"description"`
	Author      Signature `mapstructure:"author"`
	Committer   Signature `mapstructure:"committer"`
}

type changeExtrasPayload struct {
	Bookmarks      []string `mapstructure:"bookmarks"`
	LocalBookmarks []string `mapstructure:"local_bookmarks"`
	Tags           []string `mapstructure:"tags"`
	Empty          bool     `mapstructure:"empty"`
	Conflict       bool     `mapstructure:"conflict"`
	Hidden         bool     `mapstructure:"hidden"`
}

// DecodeChange maps one change payload onto a Change. The payload may carry
// the tool's native representation under a "base" key or flattened at the top
// level; bookmark and tag entries may be bare name strings or objects with a
// "name" field. Both shapes decode to identical records.
func DecodeChange(payload map[string]any) (Change, error) {
	basePayload := payload
	if wrappedPayload, hasWrapper := payload[basePayloadKeyConstant].(map[string]any); hasWrapper {
		basePayload = wrappedPayload
	}

	var corePayload changeCorePayload
	if decodeError := decodePayload(basePayload, &corePayload); decodeError != nil {
		return Change{}, ParseError{Kind: changePayloadKindConstant, Cause: decodeError}
	}

	var extrasPayload changeExtrasPayload
	if decodeError := decodePayload(payload, &extrasPayload); decodeError != nil {
		return Change{}, ParseError{Kind: changePayloadKindConstant, Cause: decodeError}
	}

	return Change{
		ChangeID:       corePayload.ChangeID,
		CommitID:       corePayload.CommitID,
		Parents:        corePayload.Parents,
		Description:    corePayload.Description,
		Author:         corePayload.Author,
		Committer:      corePayload.Committer,
		Bookmarks:      extrasPayload.Bookmarks,
		LocalBookmarks: extrasPayload.LocalBookmarks,
		Tags:           extrasPayload.Tags,
		Empty:          extrasPayload.Empty,
		Conflict:       extrasPayload.Conflict,
		Hidden:         extrasPayload.Hidden,
	}, nil
}

func decodePayload(payload map[string]any, result any) error {
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(timestampDecodeHook(), namedEntityDecodeHook()),
		Result:     result,
	})
	if decoderError != nil {
		return decoderError
	}
	return decoder.Decode(payload)
}

// timestampDecodeHook parses ISO-8601 timestamps, offset-aware or naive, into
// time.Time fields.
func timestampDecodeHook() mapstructure.DecodeHookFuncType {
	timestampType := reflect.TypeOf(time.Time{})
	return func(fromType reflect.Type, toType reflect.Type, value any) (any, error) {
		if fromType.Kind() != reflect.String || toType != timestampType {
			return value, nil
		}
		return parseTimestamp(value.(string))
	}
}

var timestampLayouts = []string{
	time.RFC3339,
	naiveTimestampLayoutConstant,
	spacedNaiveTimestampLayout,
}

func parseTimestamp(timestampText string) (time.Time, error) {
	for _, timestampLayout := range timestampLayouts {
		parsedTimestamp, parseError := time.Parse(timestampLayout, timestampText)
		if parseError == nil {
			return parsedTimestamp, nil
		}
	}
	return time.Time{}, fmt.Errorf(timestampParseFailureTemplate, timestampText)
}

// namedEntityDecodeHook extracts the "name" field when the tool emits
// bookmark or tag entries as objects rather than bare strings.
func namedEntityDecodeHook() mapstructure.DecodeHookFuncType {
	return func(fromType reflect.Type, toType reflect.Type, value any) (any, error) {
		if fromType.Kind() != reflect.Map || toType.Kind() != reflect.String {
			return value, nil
		}
		entityPayload, isPayloadMap := value.(map[string]any)
		if !isPayloadMap {
			return value, nil
		}
		if entityName, hasName := entityPayload[namedEntityNameKeyConstant].(string); hasName {
			return entityName, nil
		}
		return value, nil
	}
}
