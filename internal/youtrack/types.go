package youtrack

import "encoding/json"

// Issue is the YouTrack issue projection requested by the client.
type Issue struct {
	ID           string        `json:"idReadable"`
	Summary      string        `json:"summary,omitempty"`
	Description  string        `json:"description,omitempty"`
	CustomFields []CustomField `json:"customFields,omitempty"`
	Links        []IssueLink   `json:"links,omitempty"`
	Resolved     *int64        `json:"resolved,omitempty"` // epoch millis
	Created      *int64        `json:"created,omitempty"`
	Updated      *int64        `json:"updated,omitempty"`
	Tags         []IssueTag    `json:"tags,omitempty"`
}

// CustomField carries a field name and its opaque value. The value is
// either a scalar or an object with "presentation"/"name" sub-values;
// extraction lives in fields.go.
type CustomField struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value,omitempty"`
}

// IssueTag is a tag attached to an issue.
type IssueTag struct {
	Name string `json:"name"`
}

// IssueLink is a typed, directional link to other issues. The nested
// issues are lightweight projections; a full fetch by id is needed for
// their links and tags.
type IssueLink struct {
	Direction string        `json:"direction"` // "OUTWARD", "INWARD" or "BOTH"
	LinkType  IssueLinkType `json:"linkType"`
	Issues    []LinkedIssue `json:"issues,omitempty"`
}

// IssueLinkType names a link relation, e.g. "Subtask" or "Depend".
type IssueLinkType struct {
	Name           string `json:"name"`
	SourceToTarget string `json:"sourceToTarget,omitempty"`
	TargetToSource string `json:"targetToSource,omitempty"`
}

// LinkedIssue is the lightweight projection nested inside a link.
type LinkedIssue struct {
	ID           string        `json:"idReadable"`
	Summary      string        `json:"summary,omitempty"`
	Description  string        `json:"description,omitempty"`
	CustomFields []CustomField `json:"customFields,omitempty"`
	Resolved     *int64        `json:"resolved,omitempty"`
	Created      *int64        `json:"created,omitempty"`
}
