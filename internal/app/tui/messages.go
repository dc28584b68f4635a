package tui

// ConnectedMsg is emitted when the user connects to a valid form id.
type ConnectedMsg struct {
	FormID string
}

// FieldsChangedMsg is emitted after every edit of the form definition.
type FieldsChangedMsg struct{}
